package layout

import (
	"math"

	werrors "github.com/matzehuels/warehousemap/pkg/errors"
	"github.com/matzehuels/warehousemap/pkg/graph"
)

// Engine names accepted by [ByName].
const (
	EngineSpring   = "spring"
	EngineCircular = "circular"
)

// Point is a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Positions maps node IDs to coordinates.
type Positions map[string]Point

// Pair is a directed edge between two node IDs.
type Pair struct {
	From string
	To   string
}

// Engine computes node positions.
type Engine interface {
	Layout(ids []string, edges []Pair) Positions
}

// Compute runs e over the nodes and edges of g.
func Compute[N, E any](e Engine, g *graph.Digraph[N, E]) Positions {
	edges := g.Edges()
	pairs := make([]Pair, len(edges))
	for i, ed := range edges {
		pairs[i] = Pair{From: ed.From, To: ed.To}
	}
	return e.Layout(g.NodeIDs(), pairs)
}

// ByName returns the engine registered under name. A zero seed gives a
// spring engine seeded from the clock.
func ByName(name string, seed uint64) (Engine, error) {
	switch name {
	case "", EngineSpring:
		if seed == 0 {
			return NewSpring(), nil
		}
		return Spring{Seed: seed}, nil
	case EngineCircular:
		return Circular{}, nil
	default:
		return nil, werrors.New(werrors.ErrCodeInvalidInput,
			"unknown layout %q (want %s or %s)", name, EngineSpring, EngineCircular)
	}
}

// Name returns the registry name of e. Static engines report "static"; other
// implementations report "custom".
func Name(e Engine) string {
	switch e.(type) {
	case Spring, *Spring:
		return EngineSpring
	case Circular, *Circular:
		return EngineCircular
	case Static:
		return "static"
	default:
		return "custom"
	}
}

// Circular places nodes on the unit circle in input order, starting at
// angle 0 and proceeding counter-clockwise. A single node sits at the origin.
type Circular struct{}

// Layout implements [Engine].
func (Circular) Layout(ids []string, _ []Pair) Positions {
	pos := make(Positions, len(ids))
	if len(ids) == 1 {
		pos[ids[0]] = Point{}
		return pos
	}
	for i, id := range ids {
		theta := 2 * math.Pi * float64(i) / float64(len(ids))
		pos[id] = Point{X: math.Cos(theta), Y: math.Sin(theta)}
	}
	return pos
}

// Static returns fixed positions. IDs absent from the map are placed at the
// origin.
type Static map[string]Point

// Layout implements [Engine].
func (s Static) Layout(ids []string, _ []Pair) Positions {
	pos := make(Positions, len(ids))
	for _, id := range ids {
		pos[id] = s[id]
	}
	return pos
}

var (
	_ Engine = Spring{}
	_ Engine = Circular{}
	_ Engine = Static(nil)
)
