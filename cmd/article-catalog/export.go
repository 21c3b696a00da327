// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-catalog/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the published catalog as YAML",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().String("out", "catalog.yaml", "output file path")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := catalogConfig()

	s, err := store.New(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	out, _ := cmd.Flags().GetString("out")
	if err := s.ExportYAML(context.Background(), out); err != nil {
		return err
	}

	fmt.Println("catalog exported to", out)
	return nil
}
