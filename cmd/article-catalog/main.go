// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the article-catalog CLI: serving
// the catalog API, ad-hoc search, schema initialization, and export.
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/article-catalog/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the article-catalog CLI.
var rootCmd = &cobra.Command{
	Use:   "article-catalog",
	Short: "Scholarly article catalog with search and recommendations",
	Long: `article-catalog serves a catalog of scholarly articles: keyword search
with relevance ranking, usage-event logging, and related-article
recommendations computed from precomputed similarity matrices.

Run "serve" to start the HTTP API, "search" for ad-hoc queries,
"initdb" to create or seed the database, and "export" to dump the
catalog as YAML.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./article-catalog.yaml or ~/.config/article-catalog/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("article-catalog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "article-catalog"))
		}
	}

	viper.SetEnvPrefix("ARTICLE_CATALOG")
	viper.AutomaticEnv()

	viper.ReadInConfig()
}

// catalogConfig assembles the service configuration from viper with
// defaults applied.
func catalogConfig() types.CatalogConfig {
	cfg := types.CatalogConfig{
		Store: types.StoreConfig{
			Path:         viper.GetString("store.path"),
			QueryTimeout: viper.GetDuration("store.query_timeout"),
			MaxOpenConns: viper.GetInt("store.max_open_conns"),
		},
		Similarity: types.SimilarityConfig{
			TitleMatrixPath:    viper.GetString("similarity.title_matrix_path"),
			OverviewMatrixPath: viper.GetString("similarity.overview_matrix_path"),
		},
		Server: types.ServerConfig{
			Addr:            viper.GetString("server.addr"),
			AllowedOrigins:  viper.GetStringSlice("server.allowed_origins"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
		Logging: types.LoggingConfig{
			Level:  viper.GetString("logging.level"),
			Format: viper.GetString("logging.format"),
		},
	}
	return cfg.WithDefaults()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
