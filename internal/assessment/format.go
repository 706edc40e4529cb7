package assessment

import (
	"fmt"
	"math"
)

// DisplayMode selects how a pass rate is rendered. It is a program-wide
// setting, never per-node.
type DisplayMode string

const (
	DisplayPercentage DisplayMode = "percentage"
	DisplayBinary     DisplayMode = "binary"
	DisplayBoth       DisplayMode = "both"
)

// ValidDisplayMode reports whether m is one of the three render modes.
func ValidDisplayMode(m DisplayMode) bool {
	return m == DisplayPercentage || m == DisplayBinary || m == DisplayBoth
}

// Binary pass threshold for the S/U letter. Deliberately distinct from the
// severity bands below; the two scales are separate policies and must not
// be unified.
const satisfactoryThreshold = 70

// Severity band cutoffs for the badge CSS class.
const (
	severityHighCutoff = 80
	severityMidCutoff  = 60
)

// Result is a displayable pass-rate badge.
type Result struct {
	Text     string `json:"text"`
	CSSClass string `json:"css_class"`
}

// FormatAssessment turns raw took/passed counts into a badge. A nil or zero
// took means no assessment occurred and yields the N/A sentinel; a nil
// passed is treated as zero. The percentage is rounded half away from zero
// (math.Round), so 62.5% renders as 63%. Inputs are not range-checked;
// the HTTP write path validates before anything reaches storage.
func FormatAssessment(took, passed *int, mode DisplayMode) Result {
	if took == nil || *took == 0 {
		return Result{Text: "N/A", CSSClass: "no-data"}
	}
	p := 0
	if passed != nil {
		p = *passed
	}
	pct := int(math.Round(100 * float64(p) / float64(*took)))

	letter := "U"
	if pct >= satisfactoryThreshold {
		letter = "S"
	}

	class := "low"
	switch {
	case pct >= severityHighCutoff:
		class = "high"
	case pct >= severityMidCutoff:
		class = "mid"
	}

	var text string
	switch mode {
	case DisplayBinary:
		text = letter
	case DisplayBoth:
		text = fmt.Sprintf("%s (%d%%)", letter, pct)
	default:
		text = fmt.Sprintf("%d%%", pct)
	}
	return Result{Text: text, CSSClass: class}
}
