package main

import (
	"github.com/spf13/cobra"
)

var (
	serverURL string
	outputFmt string
)

var rootCmd = &cobra.Command{
	Use:   "massactionctl",
	Short: "CLI for the mass-action configuration server",
	Long: `massactionctl drives the mass-action configuration server HTTP API.

It browses capability discovery results and bulk data sources, and saves or
inspects mass-action configurations.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Configuration server URL")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "table", "Output format: table, json, yaml")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(datasourcesCmd)
	rootCmd.AddCommand(endpointsCmd)
	rootCmd.AddCommand(configurationsCmd)
}
