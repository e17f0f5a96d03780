package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"partsplit/internal/services"
	"partsplit/internal/session"
	"partsplit/internal/testsupport"
)

func TestStoreRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	// "mystery" models a label the resolver could not match: a named split
	// with Matched=false, the case the review flag exists for.
	sess := testsupport.NewSessionFromLabels(t, "MyBand",
		testsupport.Label{Instrument: "Cornet", Matched: true},
		testsupport.Label{Instrument: "Cornet", Matched: true},
		testsupport.Label{Instrument: "mystery"},
		testsupport.Label{Instrument: "Trombone", Matched: true},
	)
	testsupport.MustCreateSession(t, store, sess)

	loaded, err := store.GetByID(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if loaded.BaseName != "MyBand" || loaded.PageCount != 4 {
		t.Fatalf("loaded = %+v", loaded)
	}
	if loaded.Status != session.StatusOpen {
		t.Fatalf("Status = %q, want open", loaded.Status)
	}
	if !loaded.NeedsReview {
		t.Fatal("unmatched split should persist the review flag")
	}

	splits := loaded.Splits()
	if len(splits) != 3 {
		t.Fatalf("len(splits) = %d, want 3", len(splits))
	}
	// Pages are rebuilt from the stored range on load.
	if splits[0].StartPage != 1 || splits[0].EndPage != 2 || len(splits[0].Pages) != 2 {
		t.Fatalf("splits[0] = %+v", splits[0])
	}
	if splits[1].Instrument != "mystery" || splits[1].Matched {
		t.Fatalf("splits[1] = %+v", splits[1])
	}
}

func TestStoreUpdatePersistsEdits(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	sess := testsupport.NewSession(t, "MyBand", "Cornet 1", "Cornet 1", "Cornet 2", "Cornet 2")
	testsupport.MustCreateSession(t, store, sess)

	if err := sess.MergeWithPrevious(1); err != nil {
		t.Fatalf("MergeWithPrevious: %v", err)
	}
	if err := store.Update(ctx, sess); err != nil {
		t.Fatalf("Update: %v", err)
	}

	loaded, err := store.GetByID(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	splits := loaded.Splits()
	if len(splits) != 1 {
		t.Fatalf("len(splits) = %d, want 1 after merge", len(splits))
	}
	if splits[0].Instrument != "Cornet 1" || splits[0].EndPage != 4 {
		t.Fatalf("splits[0] = %+v", splits[0])
	}
}

func TestStoreGetUnknownSession(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	_, err := store.GetByID(context.Background(), "no-such-id")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStoreListFiltersByStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := testsupport.NewSession(t, "First", "Cornet")
	second := testsupport.NewSession(t, "Second", "Trombone")
	testsupport.MustCreateSession(t, store, first)
	testsupport.MustCreateSession(t, store, second)

	if err := store.MarkExported(ctx, first.ID, time.Now()); err != nil {
		t.Fatalf("MarkExported: %v", err)
	}

	open, err := store.List(ctx, session.StatusOpen)
	if err != nil {
		t.Fatalf("List(open): %v", err)
	}
	if len(open) != 1 || open[0].ID != second.ID {
		t.Fatalf("List(open) = %+v", open)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List(): %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List() = %d sessions, want 2", len(all))
	}

	exported, err := store.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if exported.Status != session.StatusExported || exported.ExportedAt == nil {
		t.Fatalf("exported = %+v", exported)
	}
}

func TestStoreDeleteAndClearExported(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	keep := testsupport.NewSession(t, "Keep", "Cornet")
	drop := testsupport.NewSession(t, "Drop", "Trombone")
	gone := testsupport.NewSession(t, "Gone", "Horn")
	for _, sess := range []*session.Session{keep, drop, gone} {
		testsupport.MustCreateSession(t, store, sess)
	}

	removed, err := store.Delete(ctx, drop.ID)
	if err != nil || !removed {
		t.Fatalf("Delete = %v, %v", removed, err)
	}
	if removed, err = store.Delete(ctx, drop.ID); err != nil || removed {
		t.Fatalf("second Delete = %v, %v, want false", removed, err)
	}

	if err := store.MarkExported(ctx, gone.ID, time.Now()); err != nil {
		t.Fatalf("MarkExported: %v", err)
	}
	cleared, err := store.ClearExported(ctx)
	if err != nil {
		t.Fatalf("ClearExported: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("cleared = %d, want 1", cleared)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats[session.StatusOpen] != 1 || stats[session.StatusExported] != 0 {
		t.Fatalf("stats = %v", stats)
	}
}

func TestStoreLockRejectsSecondProcess(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := session.Open(cfg)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	defer first.Close()

	if _, err := session.Open(cfg); err == nil {
		t.Fatal("second Open should fail while the lock is held")
	}
}

func TestStoreLockReleasedOnClose(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := session.Open(cfg)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := session.Open(cfg)
	if err != nil {
		t.Fatalf("reopen after Close: %v", err)
	}
	defer second.Close()
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  session.Status
		ok    bool
	}{
		{"open", session.StatusOpen, true},
		{" Exported ", session.StatusExported, true},
		{"bogus", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := session.ParseStatus(tt.input)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseStatus(%q) = %q, %v", tt.input, got, ok)
		}
	}
}
