package dataset

import (
	werrors "github.com/matzehuels/warehousemap/pkg/errors"
)

// ValidateReferences checks that every flow names systems defined in the
// systems table. It returns a *errors.ReferentialIntegrityError listing all
// violations, or nil.
//
// Undefined references are tolerated by the graph builder (they become
// attribute-less nodes); callers decide whether to fail or only warn.
func ValidateReferences(d *Dataset) error {
	known := make(map[string]bool, len(d.Systems))
	for _, s := range d.Systems {
		known[s.Name] = true
	}

	var vs []werrors.Violation
	check := func(kind string, row int, names ...string) {
		for _, n := range names {
			if !known[n] {
				vs = append(vs, werrors.Violation{Kind: kind, Row: row, Name: n})
			}
		}
	}
	for i, f := range d.SystemFlows {
		check("system_flow", i+1, f.SourceSystem, f.TargetSystem)
	}
	for i, f := range d.TableFlows {
		check("table_flow", i+1, f.SourceSystem, f.TargetSystem)
	}

	if len(vs) == 0 {
		return nil
	}
	return &werrors.ReferentialIntegrityError{Violations: vs}
}

// DuplicateSystems returns system names that appear more than once in the
// systems table, in first-duplicate order.
func DuplicateSystems(d *Dataset) []string {
	seen := make(map[string]int, len(d.Systems))
	var dups []string
	for _, s := range d.Systems {
		seen[s.Name]++
		if seen[s.Name] == 2 {
			dups = append(dups, s.Name)
		}
	}
	return dups
}
