package discovery

import (
	"context"
	"fmt"
)

// Category identifies the kind of target operation a configuration invokes.
// The set is closed; each category carries its own input describe strategy.
type Category string

const (
	CategoryGuidedProcess         Category = "guided-process"
	CategoryScheduledNotification Category = "scheduled-notification"
	CategoryWorkflowTrigger       Category = "lightweight-workflow-trigger"
	CategoryGenericInvocable      Category = "generic-invocable"
)

// ParseCategory validates a raw category string against the closed set.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryGuidedProcess, CategoryScheduledNotification,
		CategoryWorkflowTrigger, CategoryGenericInvocable:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// inputSource is the per-category strategy for describing the typed inputs
// of an operation. It is the single dispatch point between remote-described
// and synthetic input schemas.
type inputSource interface {
	Inputs(ctx context.Context, c *Client, endpointName string, category Category, operationName, objectName string) ([]OperationInput, error)
}

// remoteInputs fetches the input schema from the capability service.
type remoteInputs struct{}

func (remoteInputs) Inputs(ctx context.Context, c *Client, endpointName string, category Category, operationName, objectName string) ([]OperationInput, error) {
	return c.fetchOperationInputs(ctx, endpointName, category, operationName, objectName)
}

// contextIDInputs returns the fixed invocation contract of workflow-trigger
// operations: a single required record ID. This is not a describe fallback;
// every operation of that kind shares the same single input.
type contextIDInputs struct{}

func (contextIDInputs) Inputs(context.Context, *Client, string, Category, string, string) ([]OperationInput, error) {
	return []OperationInput{{
		Label:    "Record ID",
		Name:     "ContextId",
		DataType: "ID",
		Required: true,
	}}, nil
}

var inputSources = map[Category]inputSource{
	CategoryGuidedProcess:         remoteInputs{},
	CategoryScheduledNotification: remoteInputs{},
	CategoryWorkflowTrigger:       contextIDInputs{},
	CategoryGenericInvocable:      remoteInputs{},
}
