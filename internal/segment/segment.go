package segment

import (
	"fmt"

	"partsplit/internal/labeling"
	"partsplit/internal/services"
)

// Split is a contiguous run of pages assigned to one instrument.
type Split struct {
	// Instrument is the label shared by every page in the run.
	Instrument string
	// Matched mirrors the resolver verdict of the run's first page; false
	// flags the split for operator review.
	Matched bool
	// StartPage and EndPage are the 1-based inclusive bounds of Pages.
	StartPage int
	EndPage   int
	// Pages is strictly increasing and contiguous.
	Pages []int
}

// NewSplit builds a split covering the inclusive page range [start, end].
func NewSplit(instrument string, matched bool, start, end int) Split {
	pages := make([]int, 0, end-start+1)
	for page := start; page <= end; page++ {
		pages = append(pages, page)
	}
	return Split{
		Instrument: instrument,
		Matched:    matched,
		StartPage:  start,
		EndPage:    end,
		Pages:      pages,
	}
}

// PageCount returns the number of pages in the split.
func (s Split) PageCount() int {
	return len(s.Pages)
}

// Clone returns a deep copy so callers can hand splits across boundaries
// without sharing the Pages slice.
func (s Split) Clone() Split {
	cp := s
	cp.Pages = make([]int, len(s.Pages))
	copy(cp.Pages, s.Pages)
	return cp
}

// Segment runs a single left-to-right pass over resolved labels and returns
// the initial split list. A new split opens whenever the instrument string
// changes (exact, case-sensitive comparison of post-normalization labels);
// otherwise the page joins the open split. Empty input yields nil; any
// non-empty input yields at least one split.
func Segment(labels []labeling.ResolvedLabel) []Split {
	if len(labels) == 0 {
		return nil
	}

	splits := make([]Split, 0, 4)
	open := Split{
		Instrument: labels[0].Instrument,
		Matched:    labels[0].Matched,
		StartPage:  labels[0].PageIndex,
		EndPage:    labels[0].PageIndex,
		Pages:      []int{labels[0].PageIndex},
	}

	for _, label := range labels[1:] {
		if label.Instrument == open.Instrument {
			open.Pages = append(open.Pages, label.PageIndex)
			open.EndPage = label.PageIndex
			continue
		}
		splits = append(splits, open)
		open = Split{
			Instrument: label.Instrument,
			Matched:    label.Matched,
			StartPage:  label.PageIndex,
			EndPage:    label.PageIndex,
			Pages:      []int{label.PageIndex},
		}
	}
	return append(splits, open)
}

// ValidateCoverage checks the structural invariant: concatenated in order,
// the splits' page lists must reconstruct exactly 1..pageCount with every
// split internally contiguous and its Start/End fields consistent. A
// violation is a programming defect, reported as services.ErrStructure.
func ValidateCoverage(splits []Split, pageCount int) error {
	expected := 1
	for i, split := range splits {
		if len(split.Pages) == 0 {
			return structureError(fmt.Sprintf("split %d has no pages", i))
		}
		if split.StartPage != split.Pages[0] || split.EndPage != split.Pages[len(split.Pages)-1] {
			return structureError(fmt.Sprintf("split %d bounds [%d,%d] disagree with pages %v",
				i, split.StartPage, split.EndPage, split.Pages))
		}
		for _, page := range split.Pages {
			if page != expected {
				return structureError(fmt.Sprintf("split %d: page %d where %d expected", i, page, expected))
			}
			expected++
		}
	}
	if expected != pageCount+1 {
		return structureError(fmt.Sprintf("splits cover %d pages, document has %d", expected-1, pageCount))
	}
	return nil
}

func structureError(message string) error {
	return services.Wrap(services.ErrStructure, "segment", "validate", message, nil)
}
