package router

import (
	"context"
	"net/http"

	"github.com/gobwas/ws"
	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/wayfinder/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/wayfinder/pkg/http/server"
	"go.uber.org/zap"
)

/*
handleWebsocket. position-feed ingest endpoint on its own port.

each connected client pushes JSON position samples at whatever cadence its
location source produces; the hub broadcasts session state-change events back
over the same connection. one goroutine per connection, per-site client counts
are small.
*/
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	navigationService controllers.NavigationService, errChan chan error,
) {
	api.hub = controllers.NewHub(navigationService, api.log)

	// forward session transitions to every connected client
	events := navigationService.SubscribeSession(16)
	go func() {
		for event := range events {
			api.hub.Broadcast(event)
		}
	}()

	wsRouter := httprouter.New()
	wsRouter.GET("/ws", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			api.log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := api.hub.Register(conn)
		api.log.Info("position feed connected", zap.String("remote", conn.RemoteAddr().String()))

		go func() {
			defer api.hub.Remove(client)
			for {
				if err := client.Receive(); err != nil {
					api.log.Info("position feed closed", zap.Error(err))
					return
				}
			}
		}()
	})

	srv := http_server.New(ctx, wsRouter, config, true)
	api.log.Info("position feed websocket run", zap.Int("port", config.WebsocketPort))

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		errChan <- err
	}
}
