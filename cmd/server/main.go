// Package main is the entry point for the rpg-sheets gRPC server and tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-sheets/cmd/server/client"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "rpg-sheets",
	Short: "RPG character sheets and initiative tracker",
	Long: `rpg-sheets stores player, NPC and enemy character sheets and runs
initiative-ordered battles over them through a gRPC interface.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
