package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/d60-Lab/friendgraph/config"
	"github.com/d60-Lab/friendgraph/pkg/logger"
)

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "friendgraph",
	Short: "friendgraph - friends, posts and reactions over HTTP",
	Long: `friendgraph serves accounts, a directed friend graph, posts and like/dislike
reactions. Private authors are visible only to the users they added.

Configuration comes from config/config.yaml (or --config), a .env file and
APP_* environment variables, e.g. APP_JWT_SECRET.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional
		_ = godotenv.Load(envFile)
		if configPath != "" {
			return os.Setenv("CONFIG_PATH", configPath)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before the config")
}

// loadConfig reads the config and installs the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Log); err != nil {
		return nil, err
	}
	return cfg, nil
}
