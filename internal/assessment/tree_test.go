package assessment

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func leaf(took, passed *int, status Status) SectionLeaf {
	return SectionLeaf{
		SectionID:      uuid.New(),
		Status:         status,
		StudentsTook:   took,
		StudentsPassed: passed,
	}
}

func TestAggregateEndToEnd(t *testing.T) {
	// One PLO mapped to two CLOs: 18/20 and 5/10 -> PLO total 23/30 -> 77%,
	// Satisfactory but mid severity.
	tree := []ProgramNode{{
		ProgramID:   uuid.New(),
		Name:        "Computer Science BS",
		DisplayMode: DisplayBoth,
		PLOs: []PLONode{{
			PLOID: uuid.New(),
			CLOs: []CLONode{
				{CLOID: uuid.New(), Sections: []SectionLeaf{leaf(intp(20), intp(18), StatusApproved)}},
				{CLOID: uuid.New(), Sections: []SectionLeaf{leaf(intp(10), intp(5), StatusApproved)}},
			},
		}},
	}}

	out := Aggregate(tree)
	plo := out[0].PLOs[0]
	if plo.Aggregate != (Totals{StudentsTook: 30, StudentsPassed: 23}) {
		t.Fatalf("plo aggregate: got=%+v", plo.Aggregate)
	}
	if plo.Badge.Text != "S (77%)" || plo.Badge.CSSClass != "mid" {
		t.Fatalf("plo badge: got=%+v", plo.Badge)
	}
	if out[0].Aggregate != (Totals{StudentsTook: 30, StudentsPassed: 23}) {
		t.Fatalf("program aggregate: got=%+v", out[0].Aggregate)
	}
	if out[0].Status != AggregateApproved {
		t.Fatalf("program status: got=%q", out[0].Status)
	}
}

func TestAggregateAllNilLeavesRenderNA(t *testing.T) {
	tree := []ProgramNode{{
		DisplayMode: DisplayPercentage,
		PLOs: []PLONode{{
			CLOs: []CLONode{{
				Sections: []SectionLeaf{
					leaf(nil, nil, StatusAssigned),
					leaf(nil, nil, StatusAssigned),
				},
			}},
		}},
	}}

	out := Aggregate(tree)
	if out[0].Aggregate != (Totals{}) {
		t.Fatalf("program aggregate: got=%+v", out[0].Aggregate)
	}
	na := Result{Text: "N/A", CSSClass: "no-data"}
	if out[0].Badge != na {
		t.Fatalf("program badge: got=%+v", out[0].Badge)
	}
	if out[0].PLOs[0].Badge != na || out[0].PLOs[0].CLOs[0].Badge != na {
		t.Fatalf("inner badges should be N/A")
	}
	for _, s := range out[0].PLOs[0].CLOs[0].Sections {
		if s.Badge != na {
			t.Fatalf("leaf badge: got=%+v", s.Badge)
		}
	}
}

func TestAggregateEmptyChildrenContributeZero(t *testing.T) {
	tree := []ProgramNode{{
		DisplayMode: DisplayBoth,
		PLOs: []PLONode{
			{CLOs: []CLONode{{Sections: nil}}},
			{CLOs: nil},
		},
	}}
	out := Aggregate(tree)
	if out[0].Aggregate != (Totals{}) {
		t.Fatalf("zero-child subtree should sum to zero: got=%+v", out[0].Aggregate)
	}
	if out[0].Status != AggregateNotStarted {
		t.Fatalf("no leaves means not started: got=%q", out[0].Status)
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	build := func() []ProgramNode {
		return []ProgramNode{{
			DisplayMode: DisplayBinary,
			PLOs: []PLONode{{
				CLOs: []CLONode{{
					Sections: []SectionLeaf{
						leaf(intp(12), intp(9), StatusAwaitingApproval),
						leaf(intp(8), intp(8), StatusAwaitingApproval),
					},
				}},
			}},
		}}
	}
	once := Aggregate(build())
	twice := Aggregate(Aggregate(build()))
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("re-aggregation changed the tree")
	}
}

func TestAggregateInvalidDisplayModeFallsBack(t *testing.T) {
	tree := []ProgramNode{{
		DisplayMode: DisplayMode(""),
		PLOs: []PLONode{{
			CLOs: []CLONode{{Sections: []SectionLeaf{leaf(intp(4), intp(2), StatusApproved)}}},
		}},
	}}
	out := Aggregate(tree)
	if out[0].Badge.Text != "50%" {
		t.Fatalf("missing mode should render percentage: got=%q", out[0].Badge.Text)
	}
}
