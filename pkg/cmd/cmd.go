// Package cmd contains the command line applications for the project.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/digesto-dev/digesto/pkg/configs"
	"github.com/digesto-dev/digesto/pkg/internal/api"
	"github.com/digesto-dev/digesto/pkg/internal/storage/kv"
	"github.com/digesto-dev/digesto/pkg/log"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "digesto",
		Short: "A command line browser for the municipal document portal",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := configs.InitConfig(configPath); err != nil {
				return fmt.Errorf("init config: %w", err)
			}

			if debug {
				configs.GetConfig().Client.Debug = true
			}

			log.Init()

			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./", "config file or directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	registerConfigsCommands()
	registerFoldersCommands()
	registerFilesCommands()
	registerTagsCommands()
	registerKVCommands()
	registerBrowseCommand()
}

// newCatalog 按配置组装带缓存的后端客户端.
func newCatalog() (*api.Catalog, error) {
	cfg := configs.GetConfig()
	client := api.NewClient(api.OptionsFromConfig(cfg))

	var store kv.KVStore

	if cfg.Cache.Enabled {
		kvClient, err := kv.NewKVClient(context.Background())
		if err != nil {
			return nil, fmt.Errorf("init kv store: %w", err)
		}

		store = kvClient
	}

	return api.NewCatalog(client, store, cfg.Cache.GetTTL()), nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
