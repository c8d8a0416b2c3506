package pipeline

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/warehousemap/pkg/dataset"
	werrors "github.com/matzehuels/warehousemap/pkg/errors"
	"github.com/matzehuels/warehousemap/pkg/layout"
	"github.com/matzehuels/warehousemap/pkg/observability"
)

func testDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Systems: []dataset.System{
			{Name: "A", SourceType: "TypeX", SourceRole: dataset.RolePrimary},
			{Name: "B", SourceType: "TypeY", SourceRole: dataset.RoleOther},
			{Name: "Z", SourceType: "TypeY", SourceRole: dataset.RoleOther},
		},
		SystemFlows: []dataset.SystemFlow{
			{SourceSystem: "A", TargetSystem: "B", Weight: 10, Direction: "push"},
		},
		TableFlows: []dataset.TableFlow{
			{SourceTable: "t1", TargetTable: "t2", SourceSystem: "A", TargetSystem: "B", Weight: 5, Transformation: "X", Direction: "Y"},
			{SourceTable: "t2", TargetTable: "t3", SourceSystem: "B", TargetSystem: "B", Weight: 1, Direction: dataset.DefaultTableFlowDirection},
		},
	}
}

func newTestRunner() *Runner {
	return NewRunner(testDataset(), layout.Spring{Seed: 1}, nil, Options{})
}

func TestSystemView(t *testing.T) {
	view, err := newTestRunner().SystemView(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if view.Figure.Layout.Title.Text != "Nexus Data Warehouse - System Network" {
		t.Errorf("title = %q", view.Figure.Layout.Title.Text)
	}
	// edge line, nodes, one arrow
	if len(view.Figure.Data) != 3 {
		t.Errorf("got %d traces, want 3", len(view.Figure.Data))
	}
	if got := view.Figure.Data[2].Line.Width; got != 10 {
		t.Errorf("arrow width = %v, want 10", got)
	}
	if !reflect.DeepEqual(view.Systems, []string{"A", "B", "Z"}) {
		t.Errorf("Systems = %v", view.Systems)
	}
	if len(view.Legend) != 2 || view.Legend[0].Category != "TypeX" {
		t.Errorf("Legend = %+v", view.Legend)
	}
}

func TestSystemViewCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestRunner().SystemView(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestSystemViewTitle(t *testing.T) {
	r := NewRunner(testDataset(), layout.Circular{}, nil, Options{Title: "Lakehouse"})
	view, err := r.SystemView(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if view.Figure.Layout.Title.Text != "Lakehouse - System Network" {
		t.Errorf("title = %q", view.Figure.Layout.Title.Text)
	}
}

func TestRecompute(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		title     string
		message   string
		heading   string
		rows      int
		traces    int
	}{
		{
			name:    "empty selection",
			message: "Select a system to view table details",
		},
		{
			name:      "system without table flows",
			selection: "Z",
			title:     "No Table Network for Z",
			message:   "No details available for Z",
		},
		{
			name:      "unknown system",
			selection: "Nope",
			title:     "No Table Network for Nope",
			message:   "No details available for Nope",
		},
		{
			name:      "system with flows",
			selection: "A",
			title:     "Table Network for A",
			heading:   "Flow Details for A",
			rows:      1,
			traces:    3,
		},
		{
			name:      "system on both ends",
			selection: "B",
			title:     "Table Network for B",
			heading:   "Flow Details for B",
			rows:      2,
			traces:    4,
		},
	}

	r := newTestRunner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, details := r.Recompute(context.Background(), tt.selection)
			if fig.Layout.Title.Text != tt.title {
				t.Errorf("title = %q, want %q", fig.Layout.Title.Text, tt.title)
			}
			if len(fig.Data) != tt.traces {
				t.Errorf("got %d traces, want %d", len(fig.Data), tt.traces)
			}
			if details.Message != tt.message {
				t.Errorf("Message = %q, want %q", details.Message, tt.message)
			}
			if details.Heading != tt.heading {
				t.Errorf("Heading = %q, want %q", details.Heading, tt.heading)
			}
			if len(details.Rows) != tt.rows {
				t.Errorf("got %d rows, want %d", len(details.Rows), tt.rows)
			}
		})
	}
}

func TestRecomputePlaceholder(t *testing.T) {
	fig, _ := newTestRunner().Recompute(context.Background(), "Z")
	if len(fig.Layout.Annotations) != 1 || fig.Layout.Annotations[0].Text != "No table connections found" {
		t.Errorf("annotations = %+v", fig.Layout.Annotations)
	}
}

func TestDetails(t *testing.T) {
	rows := newTestRunner().Details("B")
	want := []DetailRow{
		{SourceTable: "t1", TargetTable: "t2", SourceSystem: "A", TargetSystem: "B", Weight: 5, Transformation: "X", Direction: "Y"},
		{SourceTable: "t2", TargetTable: "t3", SourceSystem: "B", TargetSystem: "B", Weight: 1, Transformation: "Unknown", Direction: "Bidirectional"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Details(B) = %+v, want %+v", rows, want)
	}
	if got := len(Columns()); got != 7 {
		t.Errorf("len(Columns) = %d, want 7", got)
	}
}

func TestRecomputeConcurrent(t *testing.T) {
	r := newTestRunner()
	var wg sync.WaitGroup
	for _, sel := range []string{"A", "B", "Z", "", "A", "B"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Recompute(context.Background(), sel)
		}()
	}
	wg.Wait()
}

func TestHooksEmitted(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetPipelineHooks(rec)
	defer observability.Reset()

	r := newTestRunner()
	r.Recompute(context.Background(), "")
	r.Recompute(context.Background(), "Z")
	r.Recompute(context.Background(), "A")

	want := []string{observability.OutcomeBlank, observability.OutcomeEmpty, observability.OutcomeOK}
	if !reflect.DeepEqual(rec.outcomes, want) {
		t.Errorf("outcomes = %v, want %v", rec.outcomes, want)
	}
	if rec.layouts != 1 {
		t.Errorf("layouts = %d, want 1", rec.layouts)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu        sync.Mutex
	outcomes  []string
	layouts   int
	buildErrs map[string]int
}

func (h *recordingHooks) OnBuildComplete(_ context.Context, scope string, _, _ int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err == nil {
		return
	}
	if h.buildErrs == nil {
		h.buildErrs = make(map[string]int)
	}
	h.buildErrs[scope]++
}

func (h *recordingHooks) OnRecompute(_ context.Context, _, outcome string, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.outcomes = append(h.outcomes, outcome)
}

func (h *recordingHooks) OnLayoutComplete(context.Context, string, time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.layouts++
}

func TestBuildErrors(t *testing.T) {
	rec := &recordingHooks{}
	observability.SetPipelineHooks(rec)
	defer observability.Reset()

	data := testDataset()
	data.SystemFlows = append(data.SystemFlows, dataset.SystemFlow{SourceSystem: "", TargetSystem: "B", Weight: 1})
	data.TableFlows = append(data.TableFlows, dataset.TableFlow{SourceTable: "", TargetTable: "t9", SourceSystem: "A", TargetSystem: "B", Weight: 1})
	var logs bytes.Buffer
	r := NewRunner(data, layout.Spring{Seed: 1}, log.New(&logs), Options{})
	ctx := context.Background()

	if _, err := r.SystemView(ctx); !werrors.Is(err, werrors.ErrCodeInvalidInput) {
		t.Errorf("SystemView err = %v, want %s", err, werrors.ErrCodeInvalidInput)
	}
	if _, err := r.Export(ctx, ExportOptions{Scope: ScopeTable, System: "A", Format: FormatJSON}); !werrors.Is(err, werrors.ErrCodeInvalidInput) {
		t.Errorf("Export err = %v, want %s", err, werrors.ErrCodeInvalidInput)
	}

	fig, details := r.Recompute(ctx, "A")
	if fig.Layout.Title.Text != "Table Network for A" || len(details.Rows) != 2 {
		t.Errorf("Recompute should render the valid records: title %q, %d rows", fig.Layout.Title.Text, len(details.Rows))
	}
	if !strings.Contains(logs.String(), "incomplete table graph") {
		t.Errorf("expected a warning, got %q", logs.String())
	}

	want := map[string]int{observability.ScopeSystem: 1, observability.ScopeTable: 2}
	if !reflect.DeepEqual(rec.buildErrs, want) {
		t.Errorf("build errors = %v, want %v", rec.buildErrs, want)
	}
}

func TestExport(t *testing.T) {
	r := newTestRunner()
	ctx := context.Background()

	dot, err := r.Export(ctx, ExportOptions{Format: FormatDOT})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(dot), `"A" -> "B"`) {
		t.Errorf("system DOT = %s", dot)
	}

	js, err := r.Export(ctx, ExportOptions{Scope: ScopeTable, System: "A", Format: FormatJSON})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(js), `"id": "t1"`) {
		t.Errorf("table JSON = %s", js)
	}
}

func TestExportErrors(t *testing.T) {
	tests := []struct {
		name string
		opts ExportOptions
		code werrors.Code
	}{
		{"bad scope", ExportOptions{Scope: "galaxy", Format: FormatDOT}, werrors.ErrCodeInvalidScope},
		{"bad format", ExportOptions{Format: "gif"}, werrors.ErrCodeInvalidFormat},
		{"table without system", ExportOptions{Scope: ScopeTable, Format: FormatDOT}, werrors.ErrCodeInvalidInput},
		{"unknown system", ExportOptions{Scope: ScopeTable, System: "Nope", Format: FormatDOT}, werrors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestRunner().Export(context.Background(), tt.opts)
			if !werrors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	for _, f := range []string{"dot", "svg", "json"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	for _, f := range []string{"", "SVG", "png"} {
		if err := ValidateFormat(f); err == nil {
			t.Errorf("ValidateFormat(%q) should fail", f)
		}
	}
	if err := ValidateScope("table"); err != nil {
		t.Errorf("ValidateScope(table) = %v", err)
	}
	if err := ValidateScope("tables"); err == nil {
		t.Error("ValidateScope(tables) should fail")
	}
}
