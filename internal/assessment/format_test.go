package assessment

import (
	"testing"
)

func TestFormatAssessmentNoData(t *testing.T) {
	want := Result{Text: "N/A", CSSClass: "no-data"}
	if got := FormatAssessment(nil, nil, DisplayBoth); got != want {
		t.Fatalf("nil took: got=%+v want=%+v", got, want)
	}
	if got := FormatAssessment(intp(0), intp(0), DisplayPercentage); got != want {
		t.Fatalf("zero took: got=%+v want=%+v", got, want)
	}
}

func TestFormatAssessmentNilPassedIsZero(t *testing.T) {
	got := FormatAssessment(intp(10), nil, DisplayPercentage)
	if got.Text != "0%" || got.CSSClass != "low" {
		t.Fatalf("nil passed: got=%+v", got)
	}
}

func TestFormatAssessmentThresholdDivergence(t *testing.T) {
	// 70% is Satisfactory on the binary scale but only mid severity; the
	// two thresholds are separate policies.
	got := FormatAssessment(intp(10), intp(7), DisplayBoth)
	if got.Text != "S (70%)" {
		t.Fatalf("text: got=%q want=%q", got.Text, "S (70%)")
	}
	if got.CSSClass != "mid" {
		t.Fatalf("class: got=%q want=%q", got.CSSClass, "mid")
	}
}

func TestFormatAssessmentBinaryBelowThreshold(t *testing.T) {
	got := FormatAssessment(intp(10), intp(6), DisplayBinary)
	if got.Text != "U" {
		t.Fatalf("60%% is below the S cutoff: got=%q", got.Text)
	}
	if got.CSSClass != "mid" {
		t.Fatalf("60%% sits in the mid band: got=%q", got.CSSClass)
	}
}

func TestFormatAssessmentRoundsHalfAwayFromZero(t *testing.T) {
	// 5/8 = 62.5% -> 63%, math.Round semantics.
	got := FormatAssessment(intp(8), intp(5), DisplayPercentage)
	if got.Text != "63%" {
		t.Fatalf("62.5 should round up: got=%q", got.Text)
	}
}

func TestFormatAssessmentSeverityBands(t *testing.T) {
	cases := []struct {
		took, passed int
		class        string
	}{
		{10, 8, "high"},
		{10, 10, "high"},
		{10, 7, "mid"},
		{10, 6, "mid"},
		{10, 5, "low"},
		{10, 0, "low"},
	}
	for _, tc := range cases {
		got := FormatAssessment(intp(tc.took), intp(tc.passed), DisplayPercentage)
		if got.CSSClass != tc.class {
			t.Fatalf("%d/%d: got=%q want=%q", tc.passed, tc.took, got.CSSClass, tc.class)
		}
	}
}

func TestFormatAssessmentModes(t *testing.T) {
	took, passed := intp(20), intp(18)
	if got := FormatAssessment(took, passed, DisplayPercentage); got.Text != "90%" {
		t.Fatalf("percentage: got=%q", got.Text)
	}
	if got := FormatAssessment(took, passed, DisplayBinary); got.Text != "S" {
		t.Fatalf("binary: got=%q", got.Text)
	}
	if got := FormatAssessment(took, passed, DisplayBoth); got.Text != "S (90%)" {
		t.Fatalf("both: got=%q", got.Text)
	}
	// Unknown modes render as percentage.
	if got := FormatAssessment(took, passed, DisplayMode("fancy")); got.Text != "90%" {
		t.Fatalf("fallback mode: got=%q", got.Text)
	}
}
