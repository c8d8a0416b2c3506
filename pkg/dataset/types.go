package dataset

import (
	"slices"
	"strings"
)

// Role classifies a system in the system-level view.
type Role string

const (
	// RolePrimary marks the warehouse's central systems (drawn large).
	RolePrimary Role = "primary"
	// RoleOther is every non-primary system.
	RoleOther Role = "other"
)

// ParseRole maps a source_role cell to a Role. Anything other than
// "primary" (case-insensitive) is RoleOther.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RolePrimary)) {
		return RolePrimary
	}
	return RoleOther
}

// DefaultTableFlowDirection is used when a table flow has no flow_direction.
const DefaultTableFlowDirection = "Bidirectional"

// UnknownTransformation is displayed for table flows without a transformation.
const UnknownTransformation = "Unknown"

// System is one row of the systems table.
type System struct {
	Name       string `json:"name"`
	SourceType string `json:"source_type"`
	SourceRole Role   `json:"source_role"`
}

// SystemFlow is one row of the system flows table.
type SystemFlow struct {
	SourceSystem string  `json:"source_system"`
	TargetSystem string  `json:"target_system"`
	Weight       float64 `json:"flow_weight"`
	Direction    string  `json:"flow_direction"`
}

// TableFlow is one row of the table flows table.
type TableFlow struct {
	SourceTable    string  `json:"source_table"`
	TargetTable    string  `json:"target_table"`
	SourceSystem   string  `json:"source_system"`
	TargetSystem   string  `json:"target_system"`
	Weight         float64 `json:"table_flow_weight"`
	Transformation string  `json:"transformation,omitempty"`
	Direction      string  `json:"flow_direction"`
}

// TransformationLabel returns the transformation or "Unknown" when absent.
func (f TableFlow) TransformationLabel() string {
	if f.Transformation == "" {
		return UnknownTransformation
	}
	return f.Transformation
}

// Touches reports whether the flow starts or ends in the given system.
func (f TableFlow) Touches(system string) bool {
	return f.SourceSystem == system || f.TargetSystem == system
}

// Dataset holds all loaded records. It is built once by [Load] and never
// mutated afterwards.
type Dataset struct {
	Systems     []System
	SystemFlows []SystemFlow
	TableFlows  []TableFlow
	Images      ImageSet
}

// SystemNames returns system names in table order.
func (d *Dataset) SystemNames() []string {
	names := make([]string, 0, len(d.Systems))
	seen := make(map[string]bool, len(d.Systems))
	for _, s := range d.Systems {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		names = append(names, s.Name)
	}
	return names
}

// HasSystem reports whether the systems table defines name.
func (d *Dataset) HasSystem(name string) bool {
	return slices.ContainsFunc(d.Systems, func(s System) bool { return s.Name == name })
}

// TableFlowsFor returns the table flows whose source or target system is
// system, in file order. Returns nil when nothing matches.
func (d *Dataset) TableFlowsFor(system string) []TableFlow {
	var out []TableFlow
	for _, f := range d.TableFlows {
		if f.Touches(system) {
			out = append(out, f)
		}
	}
	return out
}
