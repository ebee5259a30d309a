package util

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ReadConfig. load the wayfinder config file. the search path defaults to the
// working directory and ./config/, overridable with WAYFINDER_CONFIG_DIR.
func ReadConfig() error {
	viper.SetConfigName("wayfinder")
	if dir := os.Getenv("WAYFINDER_CONFIG_DIR"); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config/")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read wayfinder config: %w", err)
	}
	return nil
}
