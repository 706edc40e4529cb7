package assessment

import (
	"github.com/google/uuid"
)

// Totals is the elementwise {took, passed} sum attached to every tree node.
type Totals struct {
	StudentsTook   int `json:"students_took"`
	StudentsPassed int `json:"students_passed"`
}

func (t *Totals) add(o Totals) {
	t.StudentsTook += o.StudentsTook
	t.StudentsPassed += o.StudentsPassed
}

// SectionLeaf is the leaf of the dashboard tree: one section's recorded
// numbers for one CLO.
type SectionLeaf struct {
	SectionID      uuid.UUID `json:"section_id"`
	SectionLabel   string    `json:"section_label"`
	Status         Status    `json:"status"`
	StudentsTook   *int      `json:"students_took"`
	StudentsPassed *int      `json:"students_passed"`
	Badge          Result    `json:"badge"`
}

// CLONode is a course outcome with the section leaves that assessed it.
type CLONode struct {
	CLOID     uuid.UUID     `json:"clo_id"`
	Title     string        `json:"title"`
	Sections  []SectionLeaf `json:"sections"`
	Aggregate Totals        `json:"aggregate"`
	Badge     Result        `json:"badge"`
}

// PLONode is a program outcome with its mapped CLOs.
type PLONode struct {
	PLOID     uuid.UUID `json:"plo_id"`
	Title     string    `json:"title"`
	CLOs      []CLONode `json:"clos"`
	Aggregate Totals    `json:"aggregate"`
	Badge     Result    `json:"badge"`
}

// ProgramNode roots one program's drill-down subtree.
type ProgramNode struct {
	ProgramID   uuid.UUID       `json:"program_id"`
	Name        string          `json:"name"`
	DisplayMode DisplayMode     `json:"display_mode"`
	PLOs        []PLONode       `json:"plos"`
	Aggregate   Totals          `json:"aggregate"`
	Badge       Result          `json:"badge"`
	Status      AggregateStatus `json:"status"`
}

// Aggregate walks each Program -> PLO -> CLO -> Section subtree and sums
// students_took/students_passed bottom-up, post-order: a parent's aggregate
// is computed only after all of its children are. Every node gets a badge
// from its program's display mode. A node with no children (a CLO with no
// sections, a PLO with no mapped CLOs, or a missing child slice in a
// partially populated payload) contributes {0, 0} upward and renders as
// N/A rather than erroring. The input is mutated in place and returned for
// convenience; calling it again on the result is a no-op on the numbers
// because leaf values are re-read each pass.
func Aggregate(programs []ProgramNode) []ProgramNode {
	for i := range programs {
		aggregateProgram(&programs[i])
	}
	return programs
}

func aggregateProgram(p *ProgramNode) {
	mode := p.DisplayMode
	if !ValidDisplayMode(mode) {
		mode = DisplayPercentage
	}
	p.Aggregate = Totals{}
	records := make([]Record, 0)
	for i := range p.PLOs {
		aggregatePLO(&p.PLOs[i], mode)
		p.Aggregate.add(p.PLOs[i].Aggregate)
	}
	for i := range p.PLOs {
		for j := range p.PLOs[i].CLOs {
			for _, leaf := range p.PLOs[i].CLOs[j].Sections {
				records = append(records, Record{
					Status:         leaf.Status,
					StudentsTook:   leaf.StudentsTook,
					StudentsPassed: leaf.StudentsPassed,
				})
			}
		}
	}
	p.Badge = badgeFor(p.Aggregate, mode)
	p.Status = ResolveStatus(records)
}

func aggregatePLO(plo *PLONode, mode DisplayMode) {
	plo.Aggregate = Totals{}
	for i := range plo.CLOs {
		aggregateCLO(&plo.CLOs[i], mode)
		plo.Aggregate.add(plo.CLOs[i].Aggregate)
	}
	plo.Badge = badgeFor(plo.Aggregate, mode)
}

func aggregateCLO(clo *CLONode, mode DisplayMode) {
	clo.Aggregate = Totals{}
	for i := range clo.Sections {
		leaf := &clo.Sections[i]
		if leaf.StudentsTook != nil {
			clo.Aggregate.StudentsTook += *leaf.StudentsTook
		}
		if leaf.StudentsPassed != nil {
			clo.Aggregate.StudentsPassed += *leaf.StudentsPassed
		}
		leaf.Badge = FormatAssessment(leaf.StudentsTook, leaf.StudentsPassed, mode)
	}
	clo.Badge = badgeFor(clo.Aggregate, mode)
}

// badgeFor formats a summed aggregate. A zero took is the no-data case,
// matching the leaf-level sentinel.
func badgeFor(t Totals, mode DisplayMode) Result {
	took := t.StudentsTook
	passed := t.StudentsPassed
	return FormatAssessment(&took, &passed, mode)
}
