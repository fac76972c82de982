package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List the named capability service endpoints",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var endpoints []option
		if err := newClient().getJSON("/api/v1/endpoints", &endpoints); err != nil {
			return fmt.Errorf("failed to list endpoints: %w", err)
		}
		return printOptions(endpoints)
	},
}
