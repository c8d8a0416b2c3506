package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	werrors "github.com/matzehuels/warehousemap/pkg/errors"
)

// Column names of the input tables.
const (
	ColSystemName      = "system_name"
	ColSourceType      = "source_type"
	ColSourceRole      = "source_role"
	ColSourceSystem    = "source_system"
	ColTargetSystem    = "target_system"
	ColFlowWeight      = "flow_weight"
	ColFlowDirection   = "flow_direction"
	ColSourceTable     = "source_table"
	ColTargetTable     = "target_table"
	ColTableFlowWeight = "table_flow_weight"
	ColTransformation  = "transformation"
	ColImagePath       = "image_path"
)

// table is a parsed CSV file with its header index. lines[i] is the line
// in the file where rows[i] starts.
type table struct {
	name   string
	header map[string]int
	rows   [][]string
	lines  []int
}

// readTable parses a CSV stream and checks that every required column is
// present in the header. Header names are trimmed and lowercased.
func readTable(r io.Reader, name string, required ...string) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, werrors.New(werrors.ErrCodeInvalidHeader, "%s: missing header row", name)
	}
	if err != nil {
		return nil, werrors.Wrap(werrors.ErrCodeInvalidInput, err, "%s: read header", name)
	}

	t := &table{name: name, header: make(map[string]int, len(head))}
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := t.header[h]; !dup {
			t.header[h] = i
		}
	}
	for _, col := range required {
		if _, ok := t.header[col]; !ok {
			return nil, werrors.New(werrors.ErrCodeInvalidHeader, "%s: missing column %q", name, col)
		}
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, werrors.Wrap(werrors.ErrCodeInvalidInput, err, "%s: read rows", name)
		}
		if isBlank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		t.rows = append(t.rows, rec)
		t.lines = append(t.lines, line)
	}
	return t, nil
}

// cell returns the trimmed value of col in row i, or "" when the column is
// absent or the row is short.
func (t *table) cell(i int, col string) string {
	idx, ok := t.header[col]
	if !ok || idx >= len(t.rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.rows[i][idx])
}

func (t *table) requiredName(i int, col string) (string, error) {
	v := t.cell(i, col)
	if err := werrors.ValidateName(col, v); err != nil {
		return "", werrors.New(werrors.ErrCodeInvalidInput, "%s: line %d: %s", t.name, t.lines[i], werrors.UserMessage(err))
	}
	return v, nil
}

func (t *table) weight(i int, col string) (float64, error) {
	raw := t.cell(i, col)
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, werrors.New(werrors.ErrCodeInvalidInput, "%s: line %d: %s %q is not a number", t.name, t.lines[i], col, raw)
	}
	if err := werrors.ValidateWeight(col, w); err != nil {
		return 0, werrors.New(werrors.ErrCodeInvalidInput, "%s: line %d: %s", t.name, t.lines[i], werrors.UserMessage(err))
	}
	return w, nil
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// Readers
// =============================================================================

// ReadSystems parses the systems table.
func ReadSystems(r io.Reader) ([]System, error) {
	t, err := readTable(r, "systems", ColSystemName, ColSourceType, ColSourceRole)
	if err != nil {
		return nil, err
	}
	out := make([]System, 0, len(t.rows))
	for i := range t.rows {
		name, err := t.requiredName(i, ColSystemName)
		if err != nil {
			return nil, err
		}
		out = append(out, System{
			Name:       name,
			SourceType: t.cell(i, ColSourceType),
			SourceRole: ParseRole(t.cell(i, ColSourceRole)),
		})
	}
	return out, nil
}

// ReadSystemFlows parses the system flows table.
func ReadSystemFlows(r io.Reader) ([]SystemFlow, error) {
	t, err := readTable(r, "system_flows", ColSourceSystem, ColTargetSystem, ColFlowWeight, ColFlowDirection)
	if err != nil {
		return nil, err
	}
	out := make([]SystemFlow, 0, len(t.rows))
	for i := range t.rows {
		src, err := t.requiredName(i, ColSourceSystem)
		if err != nil {
			return nil, err
		}
		dst, err := t.requiredName(i, ColTargetSystem)
		if err != nil {
			return nil, err
		}
		w, err := t.weight(i, ColFlowWeight)
		if err != nil {
			return nil, err
		}
		out = append(out, SystemFlow{
			SourceSystem: src,
			TargetSystem: dst,
			Weight:       w,
			Direction:    t.cell(i, ColFlowDirection),
		})
	}
	return out, nil
}

// ReadTableFlows parses the table flows table. The transformation and
// flow_direction columns are optional; a missing direction defaults to
// [DefaultTableFlowDirection].
func ReadTableFlows(r io.Reader) ([]TableFlow, error) {
	t, err := readTable(r, "table_flows",
		ColSourceTable, ColTargetTable, ColSourceSystem, ColTargetSystem, ColTableFlowWeight)
	if err != nil {
		return nil, err
	}
	out := make([]TableFlow, 0, len(t.rows))
	for i := range t.rows {
		f := TableFlow{
			Transformation: t.cell(i, ColTransformation),
			Direction:      t.cell(i, ColFlowDirection),
		}
		if f.SourceTable, err = t.requiredName(i, ColSourceTable); err != nil {
			return nil, err
		}
		if f.TargetTable, err = t.requiredName(i, ColTargetTable); err != nil {
			return nil, err
		}
		if f.SourceSystem, err = t.requiredName(i, ColSourceSystem); err != nil {
			return nil, err
		}
		if f.TargetSystem, err = t.requiredName(i, ColTargetSystem); err != nil {
			return nil, err
		}
		if f.Weight, err = t.weight(i, ColTableFlowWeight); err != nil {
			return nil, err
		}
		if f.Direction == "" {
			f.Direction = DefaultTableFlowDirection
		}
		out = append(out, f)
	}
	return out, nil
}

// =============================================================================
// File Helpers
// =============================================================================

// ReadSystemsFile reads the systems table from path.
func ReadSystemsFile(path string) ([]System, error) {
	return readFile(path, ReadSystems)
}

// ReadSystemFlowsFile reads the system flows table from path.
func ReadSystemFlowsFile(path string) ([]SystemFlow, error) {
	return readFile(path, ReadSystemFlows)
}

// ReadTableFlowsFile reads the table flows table from path.
func ReadTableFlowsFile(path string) ([]TableFlow, error) {
	return readFile(path, ReadTableFlows)
}

func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		// The path error already reads "open <path>"; keep only its cause.
		var pe *fs.PathError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return zero, werrors.Wrap(werrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return zero, err
	}
	defer f.Close()

	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
