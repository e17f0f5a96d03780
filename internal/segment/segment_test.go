package segment_test

import (
	"errors"
	"testing"

	"partsplit/internal/labeling"
	"partsplit/internal/segment"
	"partsplit/internal/services"
)

func labelsFor(instruments ...string) []labeling.ResolvedLabel {
	labels := make([]labeling.ResolvedLabel, 0, len(instruments))
	for i, instrument := range instruments {
		labels = append(labels, labeling.ResolvedLabel{
			PageIndex:  i + 1,
			Instrument: instrument,
			Matched:    instrument != "",
		})
	}
	return labels
}

func TestSegmentEmptyInput(t *testing.T) {
	if got := segment.Segment(nil); got != nil {
		t.Fatalf("Segment(nil) = %v, want nil", got)
	}
}

func TestSegmentSingleRun(t *testing.T) {
	splits := segment.Segment(labelsFor("Cornet", "Cornet", "Cornet"))
	if len(splits) != 1 {
		t.Fatalf("len = %d, want 1", len(splits))
	}
	if splits[0].StartPage != 1 || splits[0].EndPage != 3 {
		t.Fatalf("bounds = [%d,%d], want [1,3]", splits[0].StartPage, splits[0].EndPage)
	}
}

func TestSegmentBoundaries(t *testing.T) {
	splits := segment.Segment(labelsFor("Cornet", "Cornet", "Trombone", "Cornet"))
	if len(splits) != 3 {
		t.Fatalf("len = %d, want 3 (runs, not unique names)", len(splits))
	}
	wantInstruments := []string{"Cornet", "Trombone", "Cornet"}
	for i, want := range wantInstruments {
		if splits[i].Instrument != want {
			t.Fatalf("splits[%d].Instrument = %q, want %q", i, splits[i].Instrument, want)
		}
	}
}

func TestSegmentCaseSensitiveBoundaries(t *testing.T) {
	splits := segment.Segment(labelsFor("Cornet", "cornet"))
	if len(splits) != 2 {
		t.Fatalf("len = %d, want 2: comparison is case-sensitive", len(splits))
	}
}

func TestSegmentContinuationScenario(t *testing.T) {
	// Labels as produced by the resolver for ["Cornet", none, none, "Trombone"].
	labels := labelsFor("Cornet", "Cornet", "Cornet", "Trombone")
	splits := segment.Segment(labels)
	if len(splits) != 2 {
		t.Fatalf("len = %d, want 2", len(splits))
	}
	if got := splits[0].Pages; len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("splits[0].Pages = %v, want [1 2 3]", got)
	}
	if got := splits[1].Pages; len(got) != 1 || got[0] != 4 {
		t.Fatalf("splits[1].Pages = %v, want [4]", got)
	}
}

func TestSegmentAllUnlabeledCollapses(t *testing.T) {
	splits := segment.Segment(labelsFor("", "", ""))
	if len(splits) != 1 {
		t.Fatalf("len = %d, want 1", len(splits))
	}
	if splits[0].Matched {
		t.Fatal("expected unmatched split")
	}
}

func TestSegmentMatchedFollowsFirstPage(t *testing.T) {
	labels := []labeling.ResolvedLabel{
		{PageIndex: 1, Instrument: "Cornet", Matched: true},
		{PageIndex: 2, Instrument: "Cornet", Matched: false},
	}
	splits := segment.Segment(labels)
	if len(splits) != 1 || !splits[0].Matched {
		t.Fatalf("splits = %+v, want one matched split", splits)
	}
}

func TestSegmentCoverageInvariant(t *testing.T) {
	sequences := [][]string{
		{"A"},
		{"A", "A", "B"},
		{"A", "B", "A", "B", "B"},
		{"", "A", "", "B", "B", "C", "A"},
		{"solo cornet", "solo cornet", "2nd cornet", "trombone", "trombone", "trombone"},
	}
	for _, instruments := range sequences {
		splits := segment.Segment(labelsFor(instruments...))
		if err := segment.ValidateCoverage(splits, len(instruments)); err != nil {
			t.Fatalf("coverage broken for %v: %v", instruments, err)
		}
	}
}

func TestValidateCoverageRejectsGaps(t *testing.T) {
	splits := []segment.Split{
		segment.NewSplit("A", true, 1, 2),
		segment.NewSplit("B", true, 4, 5),
	}
	err := segment.ValidateCoverage(splits, 5)
	if !errors.Is(err, services.ErrStructure) {
		t.Fatalf("err = %v, want ErrStructure", err)
	}
}

func TestValidateCoverageRejectsOverlap(t *testing.T) {
	splits := []segment.Split{
		segment.NewSplit("A", true, 1, 3),
		segment.NewSplit("B", true, 3, 4),
	}
	if err := segment.ValidateCoverage(splits, 4); !errors.Is(err, services.ErrStructure) {
		t.Fatalf("err = %v, want ErrStructure", err)
	}
}

func TestValidateCoverageRejectsStaleBounds(t *testing.T) {
	split := segment.NewSplit("A", true, 1, 3)
	split.EndPage = 9
	if err := segment.ValidateCoverage([]segment.Split{split}, 3); !errors.Is(err, services.ErrStructure) {
		t.Fatalf("err = %v, want ErrStructure", err)
	}
}

func TestValidateCoverageRejectsShortDocument(t *testing.T) {
	splits := []segment.Split{segment.NewSplit("A", true, 1, 2)}
	if err := segment.ValidateCoverage(splits, 3); !errors.Is(err, services.ErrStructure) {
		t.Fatalf("err = %v, want ErrStructure", err)
	}
}

func TestCloneDoesNotSharePages(t *testing.T) {
	original := segment.NewSplit("A", true, 1, 3)
	clone := original.Clone()
	clone.Pages[0] = 99
	if original.Pages[0] != 1 {
		t.Fatal("Clone shares the Pages slice")
	}
}
