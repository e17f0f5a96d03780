package pages_test

import (
	"errors"
	"path/filepath"
	"testing"

	"partsplit/internal/pages"
	"partsplit/internal/services"
	"partsplit/internal/testsupport"
)

func TestReadFileLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	testsupport.WritePageTexts(t, path, "Cornet", "", "", "Trombone")

	got, err := pages.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got[0].Text != "Cornet" || got[1].Text != "" || got[3].Text != "Trombone" {
		t.Fatalf("pages = %+v", got)
	}
	for i, page := range got {
		if page.Index != i+1 {
			t.Fatalf("pages[%d].Index = %d, want %d", i, page.Index, i+1)
		}
	}
}

func TestReadFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	testsupport.WriteFile(t, path, `["Cornet", null, "", "Trombone"]`)

	got, err := pages.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got[1].Text != "" || got[2].Text != "" {
		t.Fatalf("null and empty should both be absent: %+v", got)
	}
}

func TestReadFileJSONMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	testsupport.WriteFile(t, path, `{"not": "an array"}`)

	_, err := pages.ReadFile(path)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestReadFileEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	testsupport.WriteFile(t, path, `[]`)

	if _, err := pages.ReadFile(path); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := pages.ReadFile(filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestTexts(t *testing.T) {
	got := pages.Texts([]pages.Page{{Index: 1, Text: "Cornet"}, {Index: 2, Text: ""}})
	if len(got) != 2 || got[0] != "Cornet" || got[1] != "" {
		t.Fatalf("Texts = %v", got)
	}
}
