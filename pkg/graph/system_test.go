package graph

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/warehousemap/pkg/dataset"
)

func testSystems() []dataset.System {
	return []dataset.System{
		{Name: "A", SourceType: "TypeX", SourceRole: dataset.RolePrimary},
		{Name: "B", SourceType: "TypeY", SourceRole: dataset.RoleOther},
		{Name: "C", SourceType: "TypeX", SourceRole: dataset.RoleOther},
	}
}

func TestAssignColors(t *testing.T) {
	var systems []dataset.System
	for i := range 10 {
		systems = append(systems, dataset.System{
			Name:       string(rune('a' + i)),
			SourceType: string(rune('A' + i)),
		})
	}
	systems = append(systems, dataset.System{Name: "again", SourceType: "A"})

	ca := AssignColors(systems)
	if got := len(ca.Categories()); got != 10 {
		t.Fatalf("len(Categories) = %d, want 10", got)
	}
	if ca.Color("A") != "red" || ca.Color("B") != "blue" || ca.Color("H") != "olive" {
		t.Errorf("unexpected first-cycle colors: A=%s B=%s H=%s", ca.Color("A"), ca.Color("B"), ca.Color("H"))
	}
	if ca.Color("I") != "red" || ca.Color("J") != "blue" {
		t.Errorf("palette should wrap: I=%s J=%s", ca.Color("I"), ca.Color("J"))
	}
	if ca.Color("unseen") != FallbackColor {
		t.Errorf("Color(unseen) = %s, want %s", ca.Color("unseen"), FallbackColor)
	}

	distinct := make(map[string]bool)
	for _, e := range ca.Legend() {
		distinct[e.Color] = true
	}
	if len(distinct) > len(Palette) {
		t.Errorf("%d distinct colors, want at most %d", len(distinct), len(Palette))
	}
}

func TestBuildSystemGraph(t *testing.T) {
	flows := []dataset.SystemFlow{
		{SourceSystem: "A", TargetSystem: "B", Weight: 10, Direction: "push"},
		{SourceSystem: "A", TargetSystem: "B", Weight: 4, Direction: "push"},
		{SourceSystem: "C", TargetSystem: "C", Weight: 1, Direction: "loop"},
	}
	g, colors, err := BuildSystemGraph(testSystems(), flows)
	if err != nil {
		t.Fatal(err)
	}

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount = %d, want 3 (parallel edges and self-loops kept)", g.EdgeCount())
	}

	a, _ := g.Node("A")
	c, _ := g.Node("C")
	if a.Color != c.Color {
		t.Errorf("same category got colors %s and %s", a.Color, c.Color)
	}
	if a.Color != colors.Color("TypeX") {
		t.Errorf("A.Color = %s, want %s", a.Color, colors.Color("TypeX"))
	}
	if a.Role != dataset.RolePrimary || !a.Known {
		t.Errorf("A = %+v", a)
	}
	if got := colors.Categories(); !reflect.DeepEqual(got, []string{"TypeX", "TypeY"}) {
		t.Errorf("Categories = %v", got)
	}
}

func TestBuildSystemGraphUnknownReference(t *testing.T) {
	flows := []dataset.SystemFlow{{SourceSystem: "A", TargetSystem: "Ghost", Weight: 2}}
	g, _, err := BuildSystemGraph(testSystems(), flows)
	if err != nil {
		t.Fatal(err)
	}

	ghost, ok := g.Node("Ghost")
	if !ok {
		t.Fatal("undefined target should become a node")
	}
	if ghost.Known || ghost.Category != "" || ghost.Color != FallbackColor {
		t.Errorf("Ghost = %+v, want unknown node with fallback color", ghost)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
}

func TestBuildSystemGraphDuplicateNames(t *testing.T) {
	systems := append(testSystems(), dataset.System{Name: "A", SourceType: "TypeZ", SourceRole: dataset.RoleOther})
	g, _, err := BuildSystemGraph(systems, nil)
	if err != nil {
		t.Fatal(err)
	}

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
	if a, _ := g.Node("A"); a.Category != "TypeX" {
		t.Errorf("A.Category = %s, want first record's TypeX", a.Category)
	}
}

func TestBuildSystemGraphDeterministic(t *testing.T) {
	flows := []dataset.SystemFlow{
		{SourceSystem: "A", TargetSystem: "B", Weight: 10, Direction: "push"},
		{SourceSystem: "B", TargetSystem: "C", Weight: 3, Direction: "pull"},
	}
	g1, c1, _ := BuildSystemGraph(testSystems(), flows)
	g2, c2, _ := BuildSystemGraph(testSystems(), flows)
	if !reflect.DeepEqual(g1, g2) || !reflect.DeepEqual(c1, c2) {
		t.Error("building from the same records twice should give identical graphs")
	}
}

func TestBuildSystemGraphEmptyNames(t *testing.T) {
	systems := append(testSystems(), dataset.System{Name: "", SourceType: "TypeZ"})
	flows := []dataset.SystemFlow{
		{SourceSystem: "A", TargetSystem: "B", Weight: 10, Direction: "push"},
		{SourceSystem: "", TargetSystem: "B", Weight: 3, Direction: "push"},
		{SourceSystem: "B", TargetSystem: "C", Weight: 2, Direction: "pull"},
	}
	g, _, err := BuildSystemGraph(systems, flows)

	if !errors.Is(err, ErrInvalidNodeID) {
		t.Fatalf("err = %v, want ErrInvalidNodeID", err)
	}
	for _, want := range []string{"system 4", "system flow 2"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("err = %q, want mention of %q", err, want)
		}
	}
	if strings.Contains(err.Error(), "system flow 1") || strings.Contains(err.Error(), "system flow 3") {
		t.Errorf("err = %q, valid records should not be reported", err)
	}
	if g.NodeCount() != 3 || g.EdgeCount() != 2 {
		t.Errorf("got %d nodes, %d edges; want the 3 named systems and 2 valid flows", g.NodeCount(), g.EdgeCount())
	}
}
