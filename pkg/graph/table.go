package graph

import (
	"errors"
	"fmt"

	"github.com/matzehuels/warehousemap/pkg/dataset"
)

// TableNode holds the attributes of a table in the table graph.
type TableNode struct {
	Name   string
	System string // owning system as attributed by BuildTableGraph
}

// TableFlowEdge holds the attributes of one table flow record.
type TableFlowEdge struct {
	Weight         float64
	Transformation string
	Direction      string
	SourceSystem   string
	TargetSystem   string
}

// FlowWeight implements [Weighted].
func (e TableFlowEdge) FlowWeight() float64 { return e.Weight }

// TableGraph is the table-level lineage around one system.
type TableGraph = Digraph[TableNode, TableFlowEdge]

// BuildTableGraph keeps the flows whose source or target system equals
// selected and builds one node per distinct table, in order of first
// appearance, and one edge per kept record. No matching flow yields an
// empty graph.
//
// Every table is attributed to selected; tables whose true system differs
// are not detected. Kept records with an empty table name are left out and
// reported in the returned error, one entry per record.
func BuildTableGraph(flows []dataset.TableFlow, selected string) (*TableGraph, error) {
	g := NewDigraph[TableNode, TableFlowEdge]()
	var errs []error

	for i, f := range flows {
		if !f.Touches(selected) {
			continue
		}
		err := checkEndpoints(f.SourceTable, f.TargetTable)
		if err == nil {
			err = errors.Join(
				ensureTable(g, f.SourceTable, selected),
				ensureTable(g, f.TargetTable, selected),
			)
		}
		if err == nil {
			err = g.AddEdge(f.SourceTable, f.TargetTable, TableFlowEdge{
				Weight:         f.Weight,
				Transformation: f.TransformationLabel(),
				Direction:      f.Direction,
				SourceSystem:   f.SourceSystem,
				TargetSystem:   f.TargetSystem,
			})
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("table flow %d: %w", i+1, err))
		}
	}
	return g, errors.Join(errs...)
}

func ensureTable(g *TableGraph, name, owner string) error {
	if g.HasNode(name) {
		return nil
	}
	return g.AddNode(name, TableNode{Name: name, System: owner})
}
