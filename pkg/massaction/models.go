package massaction

import (
	"encoding/json"
	"time"
)

// SourceType identifies the kind of bulk data source a configuration reads.
type SourceType string

const (
	SourceTypeReport   SourceType = "tabular-report"
	SourceTypeListView SourceType = "filtered-list-view"
)

// Configuration is the GORM model for one mass-action definition: which
// target operation to invoke, which bulk data source supplies the records,
// and an opaque scheduling descriptor consumed by the batch executor.
type Configuration struct {
	ID               string          `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Name             string          `gorm:"column:name;not null" json:"name"`
	Description      string          `gorm:"column:description" json:"description,omitempty"`
	Active           bool            `gorm:"column:active;default:false" json:"active"`
	TargetCategory   string          `gorm:"column:target_category;not null" json:"targetCategory"`
	TargetAction     string          `gorm:"column:target_action;not null" json:"targetAction"`
	TargetObject     string          `gorm:"column:target_object" json:"targetObject,omitempty"`
	SourceType       SourceType      `gorm:"column:source_type;not null" json:"sourceType"`
	SourceReportID   string          `gorm:"column:source_report_id;type:varchar(18)" json:"sourceReportId,omitempty"`
	SourceListViewID string          `gorm:"column:source_list_view_id;type:varchar(18)" json:"sourceListViewId,omitempty"`
	Schedule         json.RawMessage `gorm:"column:schedule;type:text" json:"schedule,omitempty"`
	CreatedAt        time.Time       `json:"createdAt,omitempty"`
	UpdatedAt        time.Time       `json:"updatedAt,omitempty"`
}

// TableName returns the GORM table name.
func (Configuration) TableName() string { return "mass_action_configurations" }

// FieldMapping binds one source column of the bulk data source to one typed
// input of the target operation. Rows are exclusively owned by their parent
// configuration and fully replaced on every save.
type FieldMapping struct {
	ID              uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ConfigurationID string `gorm:"column:configuration_id;type:varchar(36);uniqueIndex:idx_mapping_config_target,priority:1;not null" json:"configurationId"`
	TargetFieldName string `gorm:"column:target_field_name;uniqueIndex:idx_mapping_config_target,priority:2;not null" json:"targetFieldName"`
	SourceFieldName string `gorm:"column:source_field_name;not null" json:"sourceFieldName"`
}

// TableName returns the GORM table name.
func (FieldMapping) TableName() string { return "mass_action_field_mappings" }

// ConfigurationDetail is a configuration together with its mapping set,
// keyed by target input name.
type ConfigurationDetail struct {
	Configuration
	FieldMappings map[string]string `json:"fieldMappings"`
}

// SaveResult reports the outcome of a successful save.
type SaveResult struct {
	Success  bool   `json:"success"`
	RecordID string `json:"recordId"`
}
