package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"partsplit/internal/naming"
	"partsplit/internal/session"
)

var splitTableHeaders = []string{"#", "Instrument", "Pages", "Matched", "Filename"}

var splitTableAligns = []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft}

func buildSplitRows(sess *session.Session) [][]string {
	splits := sess.Splits()
	rows := make([][]string, 0, len(splits))
	for i, split := range splits {
		rows = append(rows, []string{
			strconv.Itoa(i),
			split.Instrument,
			formatPageRange(split),
			yesNo(split.Matched),
			naming.DeriveFilename(sess.BaseName, split.Instrument),
		})
	}
	return rows
}

func printSession(cmd *cobra.Command, sess *session.Session) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %s  (%s, %d pages, %d splits)\n",
		sess.ID, sess.BaseName, sess.PageCount, sess.SplitCount())
	if sess.NeedsReview {
		fmt.Fprintf(out, "Needs review: %s\n", sess.ReviewReason)
	}
	fmt.Fprintln(out, renderTable(out, splitTableHeaders, buildSplitRows(sess), splitTableAligns))
}

// sessionView is the JSON shape shared by split, show, and the edit commands.
type sessionView struct {
	ID           string      `json:"id"`
	BaseName     string      `json:"base_name"`
	SourcePath   string      `json:"source_path,omitempty"`
	PageCount    int         `json:"page_count"`
	Status       string      `json:"status"`
	NeedsReview  bool        `json:"needs_review"`
	ReviewReason string      `json:"review_reason,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	ExportedAt   *time.Time  `json:"exported_at,omitempty"`
	Splits       []splitView `json:"splits"`
}

type splitView struct {
	Index      int    `json:"index"`
	Instrument string `json:"instrument"`
	Matched    bool   `json:"matched"`
	StartPage  int    `json:"start_page"`
	EndPage    int    `json:"end_page"`
	Filename   string `json:"filename"`
}

func buildSessionView(sess *session.Session) sessionView {
	splits := sess.Splits()
	views := make([]splitView, 0, len(splits))
	for i, split := range splits {
		views = append(views, splitView{
			Index:      i,
			Instrument: split.Instrument,
			Matched:    split.Matched,
			StartPage:  split.StartPage,
			EndPage:    split.EndPage,
			Filename:   naming.DeriveFilename(sess.BaseName, split.Instrument),
		})
	}
	return sessionView{
		ID:           sess.ID,
		BaseName:     sess.BaseName,
		SourcePath:   sess.SourcePath,
		PageCount:    sess.PageCount,
		Status:       string(sess.Status),
		NeedsReview:  sess.NeedsReview,
		ReviewReason: sess.ReviewReason,
		CreatedAt:    sess.CreatedAt,
		UpdatedAt:    sess.UpdatedAt,
		ExportedAt:   sess.ExportedAt,
		Splits:       views,
	}
}
