package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"partsplit/internal/naming"
	"partsplit/internal/segment"
	"partsplit/internal/session"
)

// Entry describes one split for the assembly collaborator.
type Entry struct {
	Index      int    `json:"index"`
	Instrument string `json:"instrument"`
	Matched    bool   `json:"matched"`
	StartPage  int    `json:"start_page"`
	EndPage    int    `json:"end_page"`
	Pages      []int  `json:"pages"`
	Filename   string `json:"filename"`
}

// Plan is the exported description of one session's splits.
type Plan struct {
	SessionID   string    `json:"session_id"`
	BaseName    string    `json:"base_name"`
	PageCount   int       `json:"page_count"`
	GeneratedAt time.Time `json:"generated_at"`
	Entries     []Entry   `json:"entries"`
}

// Build derives a plan from the session's current splits. Filenames are
// recomputed here on every call, so edits made since the last export are
// always reflected; duplicates within the plan get numbered suffixes.
func Build(sess *session.Session) (Plan, error) {
	splits := sess.Splits()
	if err := segment.ValidateCoverage(splits, sess.PageCount); err != nil {
		return Plan{}, err
	}

	resolver := naming.NewCollisionResolver()
	entries := make([]Entry, 0, len(splits))
	for i, split := range splits {
		filename := resolver.Resolve(naming.DeriveFilename(sess.BaseName, split.Instrument))
		entries = append(entries, Entry{
			Index:      i,
			Instrument: split.Instrument,
			Matched:    split.Matched,
			StartPage:  split.StartPage,
			EndPage:    split.EndPage,
			Pages:      split.Pages,
			Filename:   filename,
		})
	}

	return Plan{
		SessionID:   sess.ID,
		BaseName:    sess.BaseName,
		PageCount:   sess.PageCount,
		GeneratedAt: time.Now().UTC(),
		Entries:     entries,
	}, nil
}

// Write emits the plan as indented JSON.
func (p Plan) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// WriteFile writes the plan to path.
func (p Plan) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plan file: %w", err)
	}
	if err := p.Write(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("write plan: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close plan file: %w", err)
	}
	return nil
}
