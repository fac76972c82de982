package massaction

import "context"

// Executor runs a saved configuration against its bulk data source,
// applying the target operation to every record with the persisted field
// mappings. Implemented by the batch scheduler, outside this service;
// record-level retry behavior is the implementer's concern.
type Executor interface {
	Execute(ctx context.Context, cfg *Configuration, mappings []FieldMapping) error
}
