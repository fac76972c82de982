package schema

import "strings"

// StripNamespace removes a leading package namespace prefix from an API name.
// A namespaced name has the shape "ns__Local_Name__c"; the first "__" chunk
// is the namespace only if another "__" separator follows it. Plain custom
// names like "Mass_Action_Configuration__c" are returned unchanged.
func StripNamespace(name string) string {
	if i := strings.Index(name, "__"); i >= 0 && strings.Contains(name[i+2:], "__") {
		return name[i+2:]
	}
	return name
}
