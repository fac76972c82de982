package endpoint

// Endpoint is the GORM model for a named endpoint credential pointing at a
// capability discovery service deployment.
type Endpoint struct {
	Name     string `gorm:"primaryKey;column:name;type:varchar(80)" json:"name"`
	Label    string `gorm:"column:label;not null" json:"label"`
	BaseURL  string `gorm:"column:base_url;not null" json:"-"`
	TestOnly bool   `gorm:"column:test_only;default:false" json:"testOnly"`
}

// TableName returns the GORM table name.
func (Endpoint) TableName() string { return "endpoints" }
