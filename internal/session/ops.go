package session

import (
	"fmt"
	"strings"
	"time"

	"partsplit/internal/segment"
	"partsplit/internal/services"
)

// Rename sets the instrument name of the split at index. The name must be
// non-empty after trimming; otherwise the edit is rejected and the previous
// name retained. A successful rename marks the split matched: the operator
// has confirmed the label.
func (s *Session) Rename(index int, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.splits) {
		return s.rejectLocked("rename", fmt.Sprintf("index %d out of range [0,%d]", index, len(s.splits)-1))
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return s.rejectLocked("rename", "new name is empty")
	}

	s.splits[index].Instrument = trimmed
	s.splits[index].Matched = true
	return s.commitLocked("rename")
}

// MergeWithPrevious merges the split at index into the one above it. The
// previous split's instrument name and matched flag win; pages concatenate
// and the bounds are re-derived from the merged page list. Rejected when
// index is 0 or out of range.
func (s *Session) MergeWithPrevious(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index <= 0 || index >= len(s.splits) {
		return s.rejectLocked("merge-up", fmt.Sprintf("index %d has no previous split", index))
	}

	merged := mergePair(s.splits[index-1], s.splits[index])
	s.splits[index-1] = merged
	s.splits = append(s.splits[:index], s.splits[index+1:]...)
	return s.commitLocked("merge-up")
}

// MergeWithNext merges the split below index into it. The next split's
// instrument name and matched flag win. Rejected when index is the last
// split or out of range.
func (s *Session) MergeWithNext(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.splits)-1 {
		return s.rejectLocked("merge-down", fmt.Sprintf("index %d has no next split", index))
	}

	merged := mergePair(s.splits[index+1], s.splits[index])
	// Page order follows document order regardless of which name won.
	s.splits[index] = merged
	s.splits = append(s.splits[:index+1], s.splits[index+2:]...)
	return s.commitLocked("merge-down")
}

// mergePair combines the upper and lower halves of two adjacent splits,
// taking the instrument identity from winner. Bounds are re-derived from the
// concatenated page list rather than trusting the stale fields.
func mergePair(winner segment.Split, other segment.Split) segment.Split {
	upper, lower := winner, other
	if upper.StartPage > lower.StartPage {
		upper, lower = lower, upper
	}
	pages := make([]int, 0, len(upper.Pages)+len(lower.Pages))
	pages = append(pages, upper.Pages...)
	pages = append(pages, lower.Pages...)
	return segment.Split{
		Instrument: winner.Instrument,
		Matched:    winner.Matched,
		StartPage:  pages[0],
		EndPage:    pages[len(pages)-1],
		Pages:      pages,
	}
}

// RefreshReview recomputes the review flag from the current unmatched count.
func (s *Session) RefreshReview() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshReviewLocked()
}

func (s *Session) refreshReviewLocked() {
	unmatched := s.unmatchedCountLocked()
	if unmatched == 0 {
		s.NeedsReview = false
		s.ReviewReason = ""
		return
	}
	s.NeedsReview = true
	if unmatched == 1 {
		s.ReviewReason = "1 split has an unrecognized label"
	} else {
		s.ReviewReason = fmt.Sprintf("%d splits have unrecognized labels", unmatched)
	}
}

// commitLocked finalizes a successful mutation: the coverage invariant is
// re-checked, the review flag recomputed, and the session timestamped. A
// coverage failure here is a defect, not a user error.
func (s *Session) commitLocked(operation string) error {
	if err := segment.ValidateCoverage(s.splits, s.PageCount); err != nil {
		return services.Wrap(services.ErrStructure, "session", operation, "coverage broken after edit", err)
	}
	s.refreshReviewLocked()
	s.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Session) rejectLocked(operation, reason string) error {
	return services.Wrap(services.ErrInvalidEdit, "session", operation, reason, nil)
}
