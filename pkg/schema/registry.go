package schema

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Registry provides read access to the locally registered object schema.
type Registry struct {
	db *gorm.DB
}

// NewRegistry creates a new Registry.
func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// AutoMigrate creates or updates the schema tables.
func (r *Registry) AutoMigrate() error {
	return r.db.AutoMigrate(&ObjectDef{}, &FieldDef{}, &PicklistValue{})
}

// GetObject retrieves an object definition by its fully qualified name.
// Returns nil when the object is not registered locally.
func (r *Registry) GetObject(name string) (*ObjectDef, error) {
	var obj ObjectDef
	if err := r.db.First(&obj, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get object %q: %w", name, err)
	}
	return &obj, nil
}

// ListFields returns the field definitions of an object with their picklist
// values preloaded in defined display order.
func (r *Registry) ListFields(objectName string) ([]FieldDef, error) {
	var fields []FieldDef
	err := r.db.
		Preload("Picklist", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("object_name = ?", objectName).
		Order("name ASC").
		Find(&fields).Error
	if err != nil {
		return nil, fmt.Errorf("list fields of %q: %w", objectName, err)
	}
	return fields, nil
}
