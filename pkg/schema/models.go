package schema

// ObjectDef is the GORM model for a locally registered object type.
// Name is the fully qualified API name, including any package namespace
// prefix (e.g. "mas__Mass_Action_Configuration__c").
type ObjectDef struct {
	Name        string `gorm:"primaryKey;column:name;type:varchar(120)"`
	Label       string `gorm:"column:label;not null"`
	LabelPlural string `gorm:"column:label_plural"`
	KeyPrefix   string `gorm:"column:key_prefix;type:varchar(3)"`
}

// TableName returns the GORM table name.
func (ObjectDef) TableName() string { return "object_defs" }

// FieldDef is the GORM model for a field of a registered object.
type FieldDef struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	ObjectName string          `gorm:"column:object_name;index:idx_field_object;not null"`
	Name       string          `gorm:"column:name;not null"`
	Label      string          `gorm:"column:label;not null"`
	HelpText   string          `gorm:"column:help_text"`
	DataType   string          `gorm:"column:data_type"`
	Picklist   []PicklistValue `gorm:"foreignKey:FieldID"`
}

// TableName returns the GORM table name.
func (FieldDef) TableName() string { return "field_defs" }

// PicklistValue is one option of a picklist field, in defined display order.
type PicklistValue struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	FieldID  uint   `gorm:"column:field_id;index:idx_picklist_field;not null"`
	Label    string `gorm:"column:label;not null"`
	Value    string `gorm:"column:value;not null"`
	Active   bool   `gorm:"column:active;default:true"`
	Position int    `gorm:"column:position;default:0"`
}

// TableName returns the GORM table name.
func (PicklistValue) TableName() string { return "picklist_values" }
