package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

var configurationsCmd = &cobra.Command{
	Use:   "configurations",
	Short: "Inspect and save mass-action configurations",
}

var getConfigurationCmd = &cobra.Command{
	Use:   "get <configurationId>",
	Short: "Load a configuration and its field mappings",
	Args:  cobra.ExactArgs(1),
	RunE:  runGetConfiguration,
}

var (
	saveConfigFile   string
	saveMappingsFile string
)

var saveConfigurationCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a configuration and its field mappings from JSON files",
	Args:  cobra.NoArgs,
	RunE:  runSaveConfiguration,
}

func init() {
	saveConfigurationCmd.Flags().StringVar(&saveConfigFile, "config-file", "", "Path to the configuration JSON payload (required)")
	saveConfigurationCmd.Flags().StringVar(&saveMappingsFile, "mappings-file", "", "Path to the field mappings JSON payload")
	_ = saveConfigurationCmd.MarkFlagRequired("config-file")

	configurationsCmd.AddCommand(getConfigurationCmd)
	configurationsCmd.AddCommand(saveConfigurationCmd)
}

func runGetConfiguration(cmd *cobra.Command, args []string) error {
	var detail json.RawMessage
	path := "/api/v1/configurations/" + url.PathEscape(args[0])
	if err := newClient().getJSON(path, &detail); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if string(detail) == "null" {
		fmt.Println("configuration not found")
		return nil
	}

	var v any
	if err := json.Unmarshal(detail, &v); err != nil {
		return err
	}
	if outputFmt == "table" {
		return printJSON(v)
	}
	return printOutput(v)
}

func runSaveConfiguration(cmd *cobra.Command, args []string) error {
	configPayload, err := os.ReadFile(saveConfigFile)
	if err != nil {
		return fmt.Errorf("read configuration payload: %w", err)
	}

	mappingsPayload := json.RawMessage("{}")
	if saveMappingsFile != "" {
		data, err := os.ReadFile(saveMappingsFile)
		if err != nil {
			return fmt.Errorf("read mappings payload: %w", err)
		}
		mappingsPayload = data
	}

	body := map[string]json.RawMessage{
		"configuration": configPayload,
		"fieldMappings": mappingsPayload,
	}

	var result struct {
		Success  bool   `json:"success"`
		RecordID string `json:"recordId"`
	}
	if err := newClient().postJSON("/api/v1/configurations", body, &result); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Printf("saved configuration %s\n", result.RecordID)
	return nil
}
