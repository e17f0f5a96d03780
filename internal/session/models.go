package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"partsplit/internal/segment"
	"partsplit/internal/services"
)

// Status represents the lifecycle of an edit session.
type Status string

const (
	// StatusOpen marks a session still being reviewed and edited.
	StatusOpen Status = "open"
	// StatusExported marks a session whose assembly plan has been written.
	StatusExported Status = "exported"
)

var allStatuses = []Status{StatusOpen, StatusExported}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// Session holds the current split list for one document plus the metadata
// needed to derive output filenames. Operations are serialized through an
// internal mutex; a single CLI invocation never races, the mutex covers
// callers that drive a session from multiple goroutines.
type Session struct {
	mu sync.Mutex

	// ID is the uuid assigned at creation.
	ID string
	// BaseName seeds derived output filenames.
	BaseName string
	// SourcePath records where the page text came from, informational only.
	SourcePath string
	// PageCount is the document length the coverage invariant is checked
	// against.
	PageCount int
	Status    Status
	// NeedsReview is set while any split carries an unmatched label.
	NeedsReview  bool
	ReviewReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ExportedAt   *time.Time

	splits []segment.Split
}

// New creates a session over a freshly segmented split list. The splits are
// cloned; callers keep ownership of their slice.
func New(baseName, sourcePath string, pageCount int, splits []segment.Split) (*Session, error) {
	if strings.TrimSpace(baseName) == "" {
		return nil, services.Wrap(services.ErrValidation, "session", "new", "base name is empty", nil)
	}
	if len(splits) == 0 {
		return nil, services.Wrap(services.ErrValidation, "session", "new", "no splits", nil)
	}
	if err := segment.ValidateCoverage(splits, pageCount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:         uuid.NewString(),
		BaseName:   strings.TrimSpace(baseName),
		SourcePath: sourcePath,
		PageCount:  pageCount,
		Status:     StatusOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
		splits:     cloneSplits(splits),
	}
	sess.refreshReviewLocked()
	return sess, nil
}

// Splits returns a deep copy of the current ordered split list.
func (s *Session) Splits() []segment.Split {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSplits(s.splits)
}

// SplitCount returns the number of splits.
func (s *Session) SplitCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.splits)
}

// Split returns a copy of the split at index.
func (s *Session) Split(index int) (segment.Split, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.splits) {
		return segment.Split{}, s.rejectLocked("split", fmt.Sprintf("index %d out of range [0,%d]", index, len(s.splits)-1))
	}
	return s.splits[index].Clone(), nil
}

// UnmatchedCount returns the number of splits still carrying unmatched labels.
func (s *Session) UnmatchedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unmatchedCountLocked()
}

func (s *Session) unmatchedCountLocked() int {
	count := 0
	for _, split := range s.splits {
		if !split.Matched {
			count++
		}
	}
	return count
}

func cloneSplits(splits []segment.Split) []segment.Split {
	out := make([]segment.Split, len(splits))
	for i, split := range splits {
		out[i] = split.Clone()
	}
	return out
}
