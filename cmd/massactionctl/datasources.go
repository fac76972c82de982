package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

var datasourcesCmd = &cobra.Command{
	Use:   "datasources",
	Short: "Browse bulk data sources (reports and list views)",
}

var reportFoldersCmd = &cobra.Command{
	Use:   "report-folders",
	Short: "List report folders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var folders []option
		if err := newClient().getJSON("/api/v1/datasources/report-folders", &folders); err != nil {
			return fmt.Errorf("failed to list report folders: %w", err)
		}
		return printOptions(folders)
	},
}

var reportsCmd = &cobra.Command{
	Use:   "reports <folderId>",
	Short: "List tabular reports in a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var reports []option
		path := "/api/v1/datasources/report-folders/" + url.PathEscape(args[0]) + "/reports"
		if err := newClient().getJSON(path, &reports); err != nil {
			return fmt.Errorf("failed to list reports: %w", err)
		}
		return printOptions(reports)
	},
}

var reportColumnsCmd = &cobra.Command{
	Use:   "report-columns <reportId>",
	Short: "Describe the output columns of a report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/api/v1/datasources/reports/" + url.PathEscape(args[0]) + "/columns"
		return printColumns(path)
	},
}

var listViewsCmd = &cobra.Command{
	Use:   "listviews <objectName>",
	Short: "List query-compatible list views of an object",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var views []option
		path := "/api/v1/datasources/objects/" + url.PathEscape(args[0]) + "/listviews"
		if err := newClient().getJSON(path, &views); err != nil {
			return fmt.Errorf("failed to list views: %w", err)
		}
		return printOptions(views)
	},
}

var listViewColumnsEndpoint string

var listViewColumnsCmd = &cobra.Command{
	Use:   "listview-columns <listViewId>",
	Short: "Describe the output columns of a list view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := fmt.Sprintf("/api/v1/datasources/listviews/%s/columns?endpoint=%s",
			url.PathEscape(args[0]), url.QueryEscape(listViewColumnsEndpoint))
		return printColumns(path)
	},
}

func init() {
	listViewColumnsCmd.Flags().StringVar(&listViewColumnsEndpoint, "endpoint", "", "Named endpoint of the capability service (required)")

	datasourcesCmd.AddCommand(reportFoldersCmd)
	datasourcesCmd.AddCommand(reportsCmd)
	datasourcesCmd.AddCommand(reportColumnsCmd)
	datasourcesCmd.AddCommand(listViewsCmd)
	datasourcesCmd.AddCommand(listViewColumnsCmd)
}

func printColumns(path string) error {
	var columns []struct {
		Label    string `json:"label"`
		Value    string `json:"value"`
		DataType string `json:"dataType"`
	}
	if err := newClient().getJSON(path, &columns); err != nil {
		return fmt.Errorf("failed to describe columns: %w", err)
	}

	if outputFmt == "json" || outputFmt == "yaml" {
		return printOutput(columns)
	}
	rows := make([][]string, len(columns))
	for i, c := range columns {
		rows[i] = []string{c.Label, c.Value, c.DataType}
	}
	printTable([]string{"Label", "Value", "Type"}, rows)
	return nil
}
