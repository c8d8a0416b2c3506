package dataset

import (
	"errors"
	"reflect"
	"testing"

	werrors "github.com/matzehuels/warehousemap/pkg/errors"
)

func TestValidateReferences(t *testing.T) {
	ds := &Dataset{
		Systems: []System{{Name: "A"}, {Name: "B"}},
		SystemFlows: []SystemFlow{
			{SourceSystem: "A", TargetSystem: "B"},
			{SourceSystem: "A", TargetSystem: "Ghost"},
		},
		TableFlows: []TableFlow{
			{SourceTable: "t1", TargetTable: "t2", SourceSystem: "Phantom", TargetSystem: "A"},
		},
	}

	err := ValidateReferences(ds)
	var ref *werrors.ReferentialIntegrityError
	if !errors.As(err, &ref) {
		t.Fatalf("err = %v, want ReferentialIntegrityError", err)
	}
	want := []werrors.Violation{
		{Kind: "system_flow", Row: 2, Name: "Ghost"},
		{Kind: "table_flow", Row: 1, Name: "Phantom"},
	}
	if !reflect.DeepEqual(ref.Violations, want) {
		t.Errorf("Violations = %+v, want %+v", ref.Violations, want)
	}
}

func TestValidateReferencesClean(t *testing.T) {
	ds := &Dataset{
		Systems:     []System{{Name: "A"}, {Name: "B"}},
		SystemFlows: []SystemFlow{{SourceSystem: "A", TargetSystem: "B"}},
	}
	if err := ValidateReferences(ds); err != nil {
		t.Errorf("ValidateReferences = %v, want nil", err)
	}
}

func TestDuplicateSystems(t *testing.T) {
	ds := &Dataset{Systems: []System{{Name: "A"}, {Name: "B"}, {Name: "A"}, {Name: "A"}, {Name: "B"}}}
	if got := DuplicateSystems(ds); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("DuplicateSystems = %v, want [A B]", got)
	}
}
