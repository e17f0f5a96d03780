package pages

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"partsplit/internal/services"
)

// Page pairs a 1-based page index with its extracted label-region text.
// Empty Text models a page without an extractable fragment, for example a
// continuation page with no header.
type Page struct {
	Index int
	Text  string
}

// ReadFile loads a page-text sequence. A ".json" file holds a JSON array
// with one string-or-null element per page; anything else is read as
// line-per-page text where a blank line is a page without text. Documents
// with zero pages are rejected.
func ReadFile(path string) ([]Page, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return readJSON(path)
	}
	return readLines(path)
}

// Texts flattens a page sequence into the fragment slice the resolver
// consumes, preserving order.
func Texts(pageList []Page) []string {
	texts := make([]string, 0, len(pageList))
	for _, page := range pageList {
		texts = append(texts, page.Text)
	}
	return texts
}

func readJSON(path string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "pages", "read", "read page file", err)
	}
	var fragments []*string
	if err := json.Unmarshal(data, &fragments); err != nil {
		return nil, services.Wrap(services.ErrValidation, "pages", "read",
			fmt.Sprintf("%s is not a JSON array of page texts", filepath.Base(path)), err)
	}
	pageList := make([]Page, 0, len(fragments))
	for i, fragment := range fragments {
		text := ""
		if fragment != nil {
			text = *fragment
		}
		pageList = append(pageList, Page{Index: i + 1, Text: text})
	}
	return validate(path, pageList)
}

func readLines(path string) ([]Page, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "pages", "read", "open page file", err)
	}
	defer file.Close()

	var pageList []Page
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	index := 0
	for scanner.Scan() {
		index++
		pageList = append(pageList, Page{Index: index, Text: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return nil, services.Wrap(services.ErrValidation, "pages", "read", "scan page file", err)
	}
	return validate(path, pageList)
}

func validate(path string, pageList []Page) ([]Page, error) {
	if len(pageList) == 0 {
		return nil, services.Wrap(services.ErrValidation, "pages", "read",
			fmt.Sprintf("%s contains no pages", filepath.Base(path)), nil)
	}
	return pageList, nil
}
