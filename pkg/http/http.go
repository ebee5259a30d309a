package http

import (
	"context"

	http_router "github.com/lintang-b-s/wayfinder/pkg/http/router"
	"github.com/lintang-b-s/wayfinder/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/wayfinder/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger

	runErr chan error
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	navigationService controllers.NavigationService,

) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("WEBSOCKET_PORT", 6666)

	viper.SetDefault("API_TIMEOUT", "1000s")

	config := http_server.Config{
		Port:          viper.GetInt("API_PORT"),
		WebsocketPort: viper.GetInt("WEBSOCKET_PORT"),
		Timeout:       viper.GetDuration("API_TIMEOUT"),
	}

	server := http_router.NewAPI(log)

	g := errgroup.Group{}

	g.Go(func() error {
		return server.Run(
			ctx, config, log,
			useRateLimit, navigationService,
		)
	})

	s.runErr = make(chan error, 1)
	go func() {
		s.runErr <- g.Wait()
	}()

	return s, nil
}

// Err. delivers the Run result once the server stops: nil after a graceful
// shutdown, the listen/serve error otherwise.
func (s *Server) Err() <-chan error {
	return s.runErr
}

// GracefulShutdown. channel delivering SIGINT/SIGTERM.
var GracefulShutdown = http_server.GracefulShutdown
