package graph

import (
	"errors"
	"fmt"

	"github.com/matzehuels/warehousemap/pkg/dataset"
)

// SystemNode holds the attributes of a system in the system graph.
type SystemNode struct {
	Name     string
	Category string
	Role     dataset.Role
	Color    string
	// Known is false for nodes that exist only because a flow referenced an
	// undefined system. Such nodes have no category and use FallbackColor.
	Known bool
}

// SystemFlowEdge holds the attributes of one system flow record.
type SystemFlowEdge struct {
	Weight    float64
	Direction string
}

// FlowWeight implements [Weighted].
func (e SystemFlowEdge) FlowWeight() float64 { return e.Weight }

// SystemGraph is the system-level topology.
type SystemGraph = Digraph[SystemNode, SystemFlowEdge]

// BuildSystemGraph creates one node per system record and one edge per flow
// record. When a name appears more than once in systems the first record
// wins. Flows that reference an undefined system add an unknown node for it.
//
// Records that cannot be added (an empty system name) are left out of the
// graph and reported in the returned error, one entry per record. The graph
// holds every other record either way.
func BuildSystemGraph(systems []dataset.System, flows []dataset.SystemFlow) (*SystemGraph, ColorAssignment, error) {
	colors := AssignColors(systems)
	g := NewDigraph[SystemNode, SystemFlowEdge]()
	var errs []error

	for i, s := range systems {
		if g.HasNode(s.Name) {
			continue
		}
		err := g.AddNode(s.Name, SystemNode{
			Name:     s.Name,
			Category: s.SourceType,
			Role:     s.SourceRole,
			Color:    colors.Color(s.SourceType),
			Known:    true,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("system %d: %w", i+1, err))
		}
	}

	for i, f := range flows {
		err := checkEndpoints(f.SourceSystem, f.TargetSystem)
		if err == nil {
			err = errors.Join(
				ensureUnknownSystem(g, f.SourceSystem),
				ensureUnknownSystem(g, f.TargetSystem),
			)
		}
		if err == nil {
			err = g.AddEdge(f.SourceSystem, f.TargetSystem, SystemFlowEdge{
				Weight:    f.Weight,
				Direction: f.Direction,
			})
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("system flow %d: %w", i+1, err))
		}
	}
	return g, colors, errors.Join(errs...)
}

func ensureUnknownSystem(g *SystemGraph, name string) error {
	if g.HasNode(name) {
		return nil
	}
	return g.AddNode(name, SystemNode{Name: name, Role: dataset.RoleOther, Color: FallbackColor})
}

// checkEndpoints rejects a record before any of its nodes are added, so a
// bad record leaves no orphan node behind.
func checkEndpoints(from, to string) error {
	if from == "" || to == "" {
		return ErrInvalidNodeID
	}
	return nil
}
