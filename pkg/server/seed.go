package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/massaction/configserver/pkg/datasource"
	"github.com/massaction/configserver/pkg/endpoint"
	"github.com/massaction/configserver/pkg/schema"
)

// SeedFile is the YAML metadata file loaded at startup: the local object
// schema, the named endpoints and the browsable data sources.
type SeedFile struct {
	Objects   []ObjectSeed   `yaml:"objects"`
	Endpoints []EndpointSeed `yaml:"endpoints"`
	Folders   []FolderSeed   `yaml:"reportFolders"`
	Reports   []ReportSeed   `yaml:"reports"`
	ListViews []ListViewSeed `yaml:"listViews"`
}

// ObjectSeed declares one object and its fields.
type ObjectSeed struct {
	Name        string      `yaml:"name"`
	Label       string      `yaml:"label"`
	LabelPlural string      `yaml:"labelPlural"`
	KeyPrefix   string      `yaml:"keyPrefix"`
	Fields      []FieldSeed `yaml:"fields"`
}

// FieldSeed declares one field of a seeded object.
type FieldSeed struct {
	Name     string         `yaml:"name"`
	Label    string         `yaml:"label"`
	HelpText string         `yaml:"helpText"`
	DataType string         `yaml:"dataType"`
	Picklist []PicklistSeed `yaml:"picklist"`
}

// PicklistSeed declares one picklist option in display order.
type PicklistSeed struct {
	Label  string `yaml:"label"`
	Value  string `yaml:"value"`
	Active bool   `yaml:"active"`
}

// EndpointSeed declares one named endpoint credential.
type EndpointSeed struct {
	Name     string `yaml:"name"`
	Label    string `yaml:"label"`
	BaseURL  string `yaml:"baseUrl"`
	TestOnly bool   `yaml:"testOnly"`
}

// FolderSeed declares one report folder.
type FolderSeed struct {
	ID            string `yaml:"id"`
	DeveloperName string `yaml:"developerName"`
	Label         string `yaml:"label"`
	Type          string `yaml:"type"`
}

// ReportSeed declares one report and its extended column metadata JSON.
type ReportSeed struct {
	ID             string `yaml:"id"`
	FolderID       string `yaml:"folderId"`
	Name           string `yaml:"name"`
	Format         string `yaml:"format"`
	ColumnMetadata string `yaml:"columnMetadata"`
}

// ListViewSeed declares one list view.
type ListViewSeed struct {
	ID              string `yaml:"id"`
	ObjectName      string `yaml:"objectName"`
	Name            string `yaml:"name"`
	Label           string `yaml:"label"`
	QueryCompatible bool   `yaml:"queryCompatible"`
}

// LoadSeed reads and parses a seed file.
func LoadSeed(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file %q: %w", path, err)
	}
	return &seed, nil
}

// Apply writes the seed contents into the database, replacing prior field
// and picklist definitions of re-seeded objects so repeated startups stay
// idempotent.
func (sf *SeedFile) Apply(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, objSeed := range sf.Objects {
			if err := applyObjectSeed(tx, objSeed); err != nil {
				return err
			}
		}

		for _, ep := range sf.Endpoints {
			row := endpoint.Endpoint{
				Name:     ep.Name,
				Label:    ep.Label,
				BaseURL:  ep.BaseURL,
				TestOnly: ep.TestOnly,
			}
			if err := tx.Save(&row).Error; err != nil {
				return fmt.Errorf("seed endpoint %q: %w", ep.Name, err)
			}
		}

		for _, fs := range sf.Folders {
			row := datasource.ReportFolder{
				ID:            fs.ID,
				DeveloperName: fs.DeveloperName,
				Label:         fs.Label,
				Type:          fs.Type,
			}
			if err := tx.Save(&row).Error; err != nil {
				return fmt.Errorf("seed report folder %q: %w", fs.ID, err)
			}
		}

		for _, rs := range sf.Reports {
			row := datasource.Report{
				ID:             rs.ID,
				FolderID:       rs.FolderID,
				Name:           rs.Name,
				Format:         rs.Format,
				ColumnMetadata: rs.ColumnMetadata,
			}
			if err := tx.Save(&row).Error; err != nil {
				return fmt.Errorf("seed report %q: %w", rs.ID, err)
			}
		}

		for _, vs := range sf.ListViews {
			row := datasource.ListView{
				ID:              vs.ID,
				ObjectName:      vs.ObjectName,
				Name:            vs.Name,
				Label:           vs.Label,
				QueryCompatible: vs.QueryCompatible,
			}
			if err := tx.Save(&row).Error; err != nil {
				return fmt.Errorf("seed list view %q: %w", vs.ID, err)
			}
		}
		return nil
	})
}

func applyObjectSeed(tx *gorm.DB, objSeed ObjectSeed) error {
	obj := schema.ObjectDef{
		Name:        objSeed.Name,
		Label:       objSeed.Label,
		LabelPlural: objSeed.LabelPlural,
		KeyPrefix:   objSeed.KeyPrefix,
	}
	if err := tx.Save(&obj).Error; err != nil {
		return fmt.Errorf("seed object %q: %w", objSeed.Name, err)
	}

	// Field IDs churn across seeds, so picklists are cleared through the
	// stale field rows before those rows are dropped.
	var staleFields []schema.FieldDef
	if err := tx.Where("object_name = ?", objSeed.Name).Find(&staleFields).Error; err != nil {
		return fmt.Errorf("load stale fields of %q: %w", objSeed.Name, err)
	}
	for _, f := range staleFields {
		if err := tx.Where("field_id = ?", f.ID).Delete(&schema.PicklistValue{}).Error; err != nil {
			return fmt.Errorf("clear picklists of %q: %w", f.Name, err)
		}
	}
	if err := tx.Where("object_name = ?", objSeed.Name).Delete(&schema.FieldDef{}).Error; err != nil {
		return fmt.Errorf("clear fields of %q: %w", objSeed.Name, err)
	}

	for _, fs := range objSeed.Fields {
		field := schema.FieldDef{
			ObjectName: objSeed.Name,
			Name:       fs.Name,
			Label:      fs.Label,
			HelpText:   fs.HelpText,
			DataType:   fs.DataType,
		}
		if err := tx.Create(&field).Error; err != nil {
			return fmt.Errorf("seed field %q: %w", fs.Name, err)
		}
		for i, ps := range fs.Picklist {
			pv := schema.PicklistValue{
				FieldID:  field.ID,
				Label:    ps.Label,
				Value:    ps.Value,
				Active:   ps.Active,
				Position: i,
			}
			if err := tx.Create(&pv).Error; err != nil {
				return fmt.Errorf("seed picklist value %q: %w", ps.Value, err)
			}
		}
	}
	return nil
}
