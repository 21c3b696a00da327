// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-catalog/internal/store"
)

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the catalog database schema",
	Long: `Initdb creates the catalog database and its schema if they do not
exist. With --seed it also loads journals, articles, contributors, and
file attachments from a YAML file.`,
	RunE: runInitdb,
}

func init() {
	initdbCmd.Flags().String("seed", "", "YAML seed file to load")

	rootCmd.AddCommand(initdbCmd)
}

func runInitdb(cmd *cobra.Command, args []string) error {
	cfg := catalogConfig()

	s, err := store.New(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	seedPath, _ := cmd.Flags().GetString("seed")
	if seedPath != "" {
		seed, err := store.LoadSeed(seedPath)
		if err != nil {
			return err
		}
		if err := s.Seed(context.Background(), seed); err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
		fmt.Printf("seeded %d journals, %d articles, %d contributors\n",
			len(seed.Journals), len(seed.Articles), len(seed.Contributors))
	}

	fmt.Println("catalog database ready:", cfg.Store.Path)
	return nil
}
