package types

import (
	"slices"
	"sort"
)

// VariableSpec is one entry of a provider descriptor's variable schema. Default may carry
// {{PLACEHOLDER}} tokens that are substituted during resolution.
type VariableSpec struct {
	Name        string `json:"name" yaml:"name" validate:"required"`
	Default     string `json:"default" yaml:"default"`
	Description string `json:"description" yaml:"description"`
}

// ProviderDescriptor is the declarative description of one hosting provider, loaded from a
// catalog file. ID is always the catalog file's base name.
type ProviderDescriptor struct {
	ID          string                    `json:"id" yaml:"id" validate:"required"`
	Name        string                    `json:"name" yaml:"name" validate:"required"`
	Description string                    `json:"description" yaml:"description"`
	Category    string                    `json:"category" yaml:"category"`
	Variables   []VariableSpec            `json:"variables" yaml:"variables" validate:"dive"`
	Backend     map[string]map[string]any `json:"backend" yaml:"backend"`
	Features    map[string]bool           `json:"features" yaml:"features"`
}

func (p *ProviderDescriptor) Variable(name string) (VariableSpec, bool) {
	idx := slices.IndexFunc(p.Variables, func(v VariableSpec) bool { return v.Name == name })
	if idx < 0 {
		return VariableSpec{}, false
	}
	return p.Variables[idx], true
}

// RemoteBackendTypes returns the backend types that carry at least one setting, sorted by name.
// A descriptor without any is only ever generated with the local backend.
func (p *ProviderDescriptor) RemoteBackendTypes() []string {
	var backendTypes []string
	for backendType, settings := range p.Backend {
		if len(settings) > 0 {
			backendTypes = append(backendTypes, backendType)
		}
	}
	sort.Strings(backendTypes)
	return backendTypes
}

func (p *ProviderDescriptor) HasRemoteBackend() bool {
	return len(p.RemoteBackendTypes()) > 0
}

// DefaultCategory groups descriptors that do not name a category.
const DefaultCategory = "Major Cloud"

func (p *ProviderDescriptor) DisplayCategory() string {
	if p.Category == "" {
		return DefaultCategory
	}
	return p.Category
}
