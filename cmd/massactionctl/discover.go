package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

var discoverEndpoint string

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Browse the remote capability discovery service",
}

var discoverObjectsCmd = &cobra.Command{
	Use:   "objects <category>",
	Short: "List object types with configured operations of a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runDiscoverObjects,
}

var discoverOperationsCmd = &cobra.Command{
	Use:   "operations <category> <objectName>",
	Short: "List operations available for a category/object pair",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiscoverOperations,
}

var discoverInputsCmd = &cobra.Command{
	Use:   "inputs <category> <operationName>",
	Short: "Describe the typed inputs of an operation",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiscoverInputs,
}

var discoverObjectName string

func init() {
	discoverCmd.PersistentFlags().StringVar(&discoverEndpoint, "endpoint", "", "Named endpoint of the capability service (required)")
	discoverInputsCmd.Flags().StringVar(&discoverObjectName, "object", "", "Object name scoping the operation, when applicable")

	discoverCmd.AddCommand(discoverObjectsCmd)
	discoverCmd.AddCommand(discoverOperationsCmd)
	discoverCmd.AddCommand(discoverInputsCmd)
}

func runDiscoverObjects(cmd *cobra.Command, args []string) error {
	var objects []option
	path := fmt.Sprintf("/api/v1/discovery/%s/objects?endpoint=%s",
		url.PathEscape(args[0]), url.QueryEscape(discoverEndpoint))
	if err := newClient().getJSON(path, &objects); err != nil {
		return fmt.Errorf("failed to list capable objects: %w", err)
	}
	return printOptions(objects)
}

func runDiscoverOperations(cmd *cobra.Command, args []string) error {
	var operations []struct {
		Label string `json:"label"`
		Name  string `json:"name"`
	}
	path := fmt.Sprintf("/api/v1/discovery/%s/objects/%s/operations?endpoint=%s",
		url.PathEscape(args[0]), url.PathEscape(args[1]), url.QueryEscape(discoverEndpoint))
	if err := newClient().getJSON(path, &operations); err != nil {
		return fmt.Errorf("failed to list operations: %w", err)
	}

	if outputFmt == "json" || outputFmt == "yaml" {
		return printOutput(operations)
	}
	rows := make([][]string, len(operations))
	for i, op := range operations {
		rows[i] = []string{op.Label, op.Name}
	}
	printTable([]string{"Label", "Name"}, rows)
	return nil
}

func runDiscoverInputs(cmd *cobra.Command, args []string) error {
	var inputs []struct {
		Label       string `json:"label"`
		Name        string `json:"name"`
		DataType    string `json:"dataType"`
		Required    bool   `json:"required"`
		Description string `json:"description"`
	}
	path := fmt.Sprintf("/api/v1/discovery/%s/operations/%s/inputs?endpoint=%s&objectName=%s",
		url.PathEscape(args[0]), url.PathEscape(args[1]),
		url.QueryEscape(discoverEndpoint), url.QueryEscape(discoverObjectName))
	if err := newClient().getJSON(path, &inputs); err != nil {
		return fmt.Errorf("failed to describe operation inputs: %w", err)
	}

	if outputFmt == "json" || outputFmt == "yaml" {
		return printOutput(inputs)
	}
	rows := make([][]string, len(inputs))
	for i, in := range inputs {
		required := "no"
		if in.Required {
			required = "yes"
		}
		rows[i] = []string{in.Label, in.Name, in.DataType, required}
	}
	printTable([]string{"Label", "Name", "Type", "Required"}, rows)
	return nil
}
