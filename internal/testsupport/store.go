package testsupport

import (
	"context"
	"testing"

	"partsplit/internal/config"
	"partsplit/internal/labeling"
	"partsplit/internal/segment"
	"partsplit/internal/session"
)

// MustOpenStore opens a session.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *session.Store {
	t.Helper()

	store, err := session.Open(cfg)
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustCreateSession persists a session for tests using the provided store.
func MustCreateSession(t testing.TB, store *session.Store, sess *session.Session) {
	t.Helper()

	if err := store.Create(context.Background(), sess); err != nil {
		t.Fatalf("store.Create: %v", err)
	}
}

// Label pairs an instrument name with its matched flag for sessions built
// without running the resolver.
type Label struct {
	Instrument string
	Matched    bool
}

// NewSessionFromLabels builds an unpersisted session over the given page
// labels, one page per entry.
func NewSessionFromLabels(t testing.TB, baseName string, pageLabels ...Label) *session.Session {
	t.Helper()

	labels := make([]labeling.ResolvedLabel, 0, len(pageLabels))
	for i, label := range pageLabels {
		labels = append(labels, labeling.ResolvedLabel{
			PageIndex:  i + 1,
			Instrument: label.Instrument,
			Matched:    label.Matched,
		})
	}
	sess, err := session.New(baseName, "", len(pageLabels), segment.Segment(labels))
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return sess
}

// NewSession builds an unpersisted session over the given instrument
// sequence, one page per entry. Empty strings become unmatched splits; use
// NewSessionFromLabels when a named label must stay unmatched.
func NewSession(t testing.TB, baseName string, instruments ...string) *session.Session {
	t.Helper()

	labels := make([]Label, 0, len(instruments))
	for _, instrument := range instruments {
		labels = append(labels, Label{Instrument: instrument, Matched: instrument != ""})
	}
	return NewSessionFromLabels(t, baseName, labels...)
}
