package datasource

import "gorm.io/gorm"

// FolderTypeReport marks folders that hold reports; other folder types are
// never valid bulk data source containers.
const FolderTypeReport = "Report"

// FormatTabular is the only report format accepted as a bulk data source.
const FormatTabular = "Tabular"

// ReportFolder is the GORM model for a report folder.
// Folders without a developer-assigned name are system/internal and never
// offered as data source containers.
type ReportFolder struct {
	ID            string `gorm:"primaryKey;column:id;type:varchar(18)"`
	DeveloperName string `gorm:"column:developer_name"`
	Label         string `gorm:"column:label;not null"`
	Type          string `gorm:"column:type;not null"`
}

// TableName returns the GORM table name.
func (ReportFolder) TableName() string { return "report_folders" }

// BeforeSave canonicalizes the identifier so lookups by canonical key match
// whichever identifier variant the upstream store supplied.
func (f *ReportFolder) BeforeSave(*gorm.DB) error {
	f.ID = CanonicalID(f.ID)
	return nil
}

// Report is the GORM model for a report. ColumnMetadata holds the report's
// extended structural metadata as JSON, produced by the report describe API.
type Report struct {
	ID             string `gorm:"primaryKey;column:id;type:varchar(18)"`
	FolderID       string `gorm:"column:folder_id;index:idx_report_folder;not null"`
	Name           string `gorm:"column:name;not null"`
	Format         string `gorm:"column:format;not null"`
	ColumnMetadata string `gorm:"column:column_metadata;type:text"`
}

// TableName returns the GORM table name.
func (Report) TableName() string { return "reports" }

// BeforeSave canonicalizes the report and parent folder identifiers.
func (r *Report) BeforeSave(*gorm.DB) error {
	r.ID = CanonicalID(r.ID)
	r.FolderID = CanonicalID(r.FolderID)
	return nil
}

// ListView is the GORM model for a filtered list view of an object.
// QueryCompatible marks views whose criteria translate to a structured
// query; incompatible views cannot feed a bulk execution and are hidden.
type ListView struct {
	ID              string `gorm:"primaryKey;column:id;type:varchar(18)"`
	ObjectName      string `gorm:"column:object_name;index:idx_listview_object;not null"`
	Name            string `gorm:"column:name;not null"`
	Label           string `gorm:"column:label"`
	QueryCompatible bool   `gorm:"column:query_compatible;default:false"`
}

// TableName returns the GORM table name.
func (ListView) TableName() string { return "list_views" }

// BeforeSave canonicalizes the identifier.
func (v *ListView) BeforeSave(*gorm.DB) error {
	v.ID = CanonicalID(v.ID)
	return nil
}

// Option is the {label, value} pair consumed by picker UIs.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Column describes one output column of a bulk data source.
type Column struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	DataType string `json:"dataType"`
}

// CanonicalID normalizes a record identifier to its fixed-length 15
// character form so persisted source keys stay stable regardless of which
// identifier variant the underlying store returned.
func CanonicalID(id string) string {
	if len(id) > 15 {
		return id[:15]
	}
	return id
}
