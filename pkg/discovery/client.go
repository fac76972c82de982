package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/massaction/configserver/pkg/endpoint"
	"github.com/massaction/configserver/pkg/schema"
)

// ObjectOption is a display-ready object choice for the picker UI.
type ObjectOption struct {
	Label      string `json:"label"`
	ObjectName string `json:"value"`
}

// Operation is one target operation available for a category/object pair.
type Operation struct {
	Label string `json:"label"`
	Name  string `json:"name"`
}

// OperationInput is one typed input parameter of a target operation.
type OperationInput struct {
	Label       string `json:"label"`
	Name        string `json:"name"`
	DataType    string `json:"dataType"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// ColumnDescribe is one column of a remotely described data source.
type ColumnDescribe struct {
	Label    string `json:"label"`
	Name     string `json:"name"`
	DataType string `json:"dataType"`
}

// Client queries the remote capability discovery service. Calls are
// stateless and all-or-nothing: any transport or service error propagates
// to the caller with no retry and no partial result.
type Client struct {
	httpClient *http.Client
	endpoints  *endpoint.Store
	schema     *schema.Registry
	logger     *slog.Logger
}

// NewClient creates a new capability discovery client.
func NewClient(endpoints *endpoint.Store, registry *schema.Registry, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		endpoints: endpoints,
		schema:    registry,
		logger:    logger,
	}
}

// ListCapableObjects returns the object types that currently have at least
// one configured operation of the given category, as display-ready pairs
// sorted by label (object name breaks ties, ordinal compare). Objects the
// remote service reports but that do not resolve in the local schema are
// dropped; schemas drift between environments.
func (c *Client) ListCapableObjects(ctx context.Context, endpointName string, category Category) ([]ObjectOption, error) {
	var payload struct {
		Objects []struct {
			ObjectName string `json:"objectName"`
		} `json:"objects"`
	}
	path := fmt.Sprintf("/api/v1/capabilities/%s/objects", url.PathEscape(string(category)))
	if err := c.getJSON(ctx, endpointName, path, &payload); err != nil {
		return nil, err
	}

	options := make([]ObjectOption, 0, len(payload.Objects))
	for _, o := range payload.Objects {
		obj, err := c.schema.GetObject(o.ObjectName)
		if err != nil {
			return nil, err
		}
		if obj == nil {
			c.logger.Debug("skipping object absent from local schema", "object", o.ObjectName)
			continue
		}
		options = append(options, ObjectOption{Label: obj.Label, ObjectName: obj.Name})
	}

	sort.Slice(options, func(i, j int) bool {
		if options[i].Label != options[j].Label {
			return options[i].Label < options[j].Label
		}
		return options[i].ObjectName < options[j].ObjectName
	})

	return options, nil
}

// ListOperations returns the operations available for a category/object
// pair in the order the remote service defines; no local re-sort.
func (c *Client) ListOperations(ctx context.Context, endpointName string, category Category, objectName string) ([]Operation, error) {
	var payload struct {
		Operations []Operation `json:"operations"`
	}
	path := fmt.Sprintf("/api/v1/capabilities/%s/objects/%s/operations",
		url.PathEscape(string(category)), url.PathEscape(objectName))
	if err := c.getJSON(ctx, endpointName, path, &payload); err != nil {
		return nil, err
	}
	return payload.Operations, nil
}

// ListOperationInputs returns the typed input schema of an operation. The
// describe strategy is selected per category; data types come back
// upper-cased so the mapping UI can compare them uniformly.
func (c *Client) ListOperationInputs(ctx context.Context, endpointName string, category Category, operationName, objectName string) ([]OperationInput, error) {
	source, ok := inputSources[category]
	if !ok {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	inputs, err := source.Inputs(ctx, c, endpointName, category, operationName, objectName)
	if err != nil {
		return nil, err
	}
	for i := range inputs {
		inputs[i].DataType = strings.ToUpper(inputs[i].DataType)
	}
	return inputs, nil
}

// DescribeListViewColumns fetches the column metadata of a list view from
// the capability service; list view columns are not locally introspectable.
func (c *Client) DescribeListViewColumns(ctx context.Context, endpointName, listViewID string) ([]ColumnDescribe, error) {
	var payload struct {
		Columns []ColumnDescribe `json:"columns"`
	}
	path := fmt.Sprintf("/api/v1/listviews/%s/columns", url.PathEscape(listViewID))
	if err := c.getJSON(ctx, endpointName, path, &payload); err != nil {
		return nil, err
	}
	return payload.Columns, nil
}

func (c *Client) fetchOperationInputs(ctx context.Context, endpointName string, category Category, operationName, objectName string) ([]OperationInput, error) {
	var payload struct {
		Inputs []OperationInput `json:"inputs"`
	}
	path := fmt.Sprintf("/api/v1/capabilities/%s/operations/%s/describe?objectName=%s",
		url.PathEscape(string(category)), url.PathEscape(operationName), url.QueryEscape(objectName))
	if err := c.getJSON(ctx, endpointName, path, &payload); err != nil {
		return nil, err
	}
	return payload.Inputs, nil
}

// getJSON resolves the named endpoint, performs a GET and decodes the
// response body into v.
func (c *Client) getJSON(ctx context.Context, endpointName, path string, v any) error {
	ep, err := c.endpoints.GetByName(endpointName)
	if err != nil {
		return err
	}
	if ep == nil {
		return fmt.Errorf("endpoint %q is not configured", endpointName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(ep.BaseURL, "/")+path, nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discovery request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("capability service returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode discovery response: %w", err)
	}
	return nil
}
