package schema

import "fmt"

// ConfigurationObjectName is the fully qualified name of the mass-action
// configuration object whose describe payload drives the picker UI.
const ConfigurationObjectName = "Mass_Action_Configuration__c"

// PicklistEntry is one active picklist option in a describe payload.
type PicklistEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FieldDescribe is the describe payload for a single field. LocalName is
// the namespace-stripped form so the payload shape is stable regardless of
// which namespace the package is deployed under.
type FieldDescribe struct {
	Name           string          `json:"name"`
	LocalName      string          `json:"localName"`
	Label          string          `json:"label"`
	HelpText       string          `json:"helpText,omitempty"`
	PicklistValues []PicklistEntry `json:"picklistValues,omitempty"`
}

// ObjectDescribe is the describe payload for an object, with fields keyed
// by their local (namespace-stripped) name.
type ObjectDescribe struct {
	Name        string                   `json:"name"`
	LocalName   string                   `json:"localName"`
	Label       string                   `json:"label"`
	LabelPlural string                   `json:"labelPlural"`
	KeyPrefix   string                   `json:"keyPrefix"`
	Fields      map[string]FieldDescribe `json:"fields"`
}

// DescribeObject builds the namespace-independent describe payload for the
// named object. Returns nil when the object is not registered locally.
func (r *Registry) DescribeObject(name string) (*ObjectDescribe, error) {
	obj, err := r.GetObject(name)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}

	fields, err := r.ListFields(obj.Name)
	if err != nil {
		return nil, err
	}

	describe := &ObjectDescribe{
		Name:        obj.Name,
		LocalName:   StripNamespace(obj.Name),
		Label:       obj.Label,
		LabelPlural: obj.LabelPlural,
		KeyPrefix:   obj.KeyPrefix,
		Fields:      make(map[string]FieldDescribe, len(fields)),
	}

	for _, f := range fields {
		fd := FieldDescribe{
			Name:      f.Name,
			LocalName: StripNamespace(f.Name),
			Label:     f.Label,
			HelpText:  f.HelpText,
		}
		for _, pv := range f.Picklist {
			if !pv.Active {
				continue
			}
			fd.PicklistValues = append(fd.PicklistValues, PicklistEntry{
				Label: pv.Label,
				Value: pv.Value,
			})
		}
		describe.Fields[fd.LocalName] = fd
	}

	return describe, nil
}

// DescribeConfigurationObject builds the describe payload for the
// mass-action configuration object itself. The object is resolved by its
// local name, so the payload comes out the same whether the package is
// deployed with or without a namespace prefix.
func (r *Registry) DescribeConfigurationObject() (*ObjectDescribe, error) {
	describe, err := r.DescribeObject(ConfigurationObjectName)
	if err != nil || describe != nil {
		return describe, err
	}

	var candidates []ObjectDef
	if err := r.db.Where("name LIKE ?", "%__"+ConfigurationObjectName).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("resolve configuration object: %w", err)
	}
	for _, obj := range candidates {
		if StripNamespace(obj.Name) == ConfigurationObjectName {
			return r.DescribeObject(obj.Name)
		}
	}
	return nil, nil
}
