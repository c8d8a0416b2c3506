package layout

import (
	"math"
	"reflect"
	"testing"

	werrors "github.com/matzehuels/warehousemap/pkg/errors"
	"github.com/matzehuels/warehousemap/pkg/graph"
)

func TestSpringDeterministic(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	edges := []Pair{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"c", "d"}}

	p1 := Spring{Seed: 42}.Layout(ids, edges)
	p2 := Spring{Seed: 42}.Layout(ids, edges)
	if !reflect.DeepEqual(p1, p2) {
		t.Error("same seed should give the same layout")
	}
	p3 := Spring{Seed: 7}.Layout(ids, edges)
	if reflect.DeepEqual(p1, p3) {
		t.Error("different seeds should give different layouts")
	}
}

func TestSpringBounds(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e", "f"}
	edges := []Pair{{"a", "b"}, {"a", "c"}, {"d", "e"}, {"e", "e"}, {"a", "b"}, {"x", "a"}}

	pos := Spring{Seed: 1}.Layout(ids, edges)
	if len(pos) != len(ids) {
		t.Fatalf("got %d positions, want %d", len(pos), len(ids))
	}

	var maxAbs, sumX, sumY float64
	for _, id := range ids {
		p, ok := pos[id]
		if !ok {
			t.Fatalf("missing position for %s", id)
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Fatalf("position for %s is NaN", id)
		}
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(p.X), math.Abs(p.Y)))
		sumX += p.X
		sumY += p.Y
	}
	if math.Abs(maxAbs-1) > 1e-9 {
		t.Errorf("largest coordinate = %v, want 1", maxAbs)
	}
	if math.Abs(sumX) > 1e-9 || math.Abs(sumY) > 1e-9 {
		t.Errorf("layout not centered: mean = (%v, %v)", sumX/6, sumY/6)
	}
}

func TestSpringSmallGraphs(t *testing.T) {
	if got := (Spring{Seed: 1}).Layout(nil, nil); len(got) != 0 {
		t.Errorf("empty layout = %v", got)
	}
	if got := (Spring{Seed: 1}).Layout([]string{"only"}, nil); got["only"] != (Point{}) {
		t.Errorf("single node at %v, want origin", got["only"])
	}
}

func TestSpringTwoNodes(t *testing.T) {
	pos := Spring{Seed: 11}.Layout([]string{"a", "b"}, []Pair{{"a", "b"}})
	a, b := pos["a"], pos["b"]
	if math.Abs(a.X+b.X) > 1e-9 || math.Abs(a.Y+b.Y) > 1e-9 {
		t.Errorf("two nodes should be symmetric about the origin: %v %v", a, b)
	}
	if d := dist(a, b); d < 2-1e-9 {
		t.Errorf("distance = %v, want at least 2 after rescaling", d)
	}
}

func TestCircular(t *testing.T) {
	pos := Circular{}.Layout([]string{"a", "b", "c", "d"}, nil)
	want := map[string]Point{"a": {1, 0}, "b": {0, 1}, "c": {-1, 0}, "d": {0, -1}}
	for id, w := range want {
		if dist(pos[id], w) > 1e-9 {
			t.Errorf("%s at %v, want %v", id, pos[id], w)
		}
	}
	if got := (Circular{}).Layout([]string{"x"}, nil); got["x"] != (Point{}) {
		t.Errorf("single node at %v, want origin", got["x"])
	}
}

func TestStatic(t *testing.T) {
	s := Static{"a": {0, 0}, "b": {1, 1}}
	pos := s.Layout([]string{"a", "b", "c"}, nil)
	if pos["b"] != (Point{1, 1}) {
		t.Errorf("b at %v", pos["b"])
	}
	if pos["c"] != (Point{}) {
		t.Errorf("c at %v, want origin", pos["c"])
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name    string
		seed    uint64
		want    Engine
		wantErr bool
	}{
		{name: "spring", seed: 3, want: Spring{Seed: 3}},
		{name: "", seed: 9, want: Spring{Seed: 9}},
		{name: "circular", want: Circular{}},
		{name: "kamada", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ByName(tt.name, tt.seed)
			if tt.wantErr {
				if !werrors.Is(err, werrors.ErrCodeInvalidInput) {
					t.Errorf("err = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ByName(%q) = %#v, want %#v", tt.name, got, tt.want)
			}
		})
	}

	if e, _ := ByName("spring", 0); e.(Spring).Seed == 0 {
		t.Error("zero seed should be replaced with a clock seed")
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		e    Engine
		want string
	}{
		{Spring{}, "spring"},
		{&Spring{}, "spring"},
		{Circular{}, "circular"},
		{Static{}, "static"},
	}
	for _, tt := range tests {
		if got := Name(tt.e); got != tt.want {
			t.Errorf("Name(%T) = %q, want %q", tt.e, got, tt.want)
		}
	}
}

func TestCompute(t *testing.T) {
	g := graph.NewDigraph[string, int]()
	_ = g.AddNode("a", "")
	_ = g.AddNode("b", "")
	_ = g.AddEdge("a", "b", 0)

	pos := Compute(Circular{}, g)
	if len(pos) != 2 || dist(pos["a"], Point{1, 0}) > 1e-9 {
		t.Errorf("Compute = %v", pos)
	}
}

func dist(a, b Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }
