package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"partsplit/internal/segment"
	"partsplit/internal/services"
	"partsplit/internal/session"
)

// resolveSession loads a session by full ID or unique ID prefix.
func resolveSession(ctx context.Context, store *session.Store, arg string) (*session.Session, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, services.Wrap(services.ErrValidation, "cli", "resolve", "session id is required", nil)
	}

	sess, err := store.GetByID(ctx, arg)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, services.ErrNotFound) {
		return nil, err
	}

	all, listErr := store.List(ctx)
	if listErr != nil {
		return nil, listErr
	}
	var matches []*session.Session
	for _, candidate := range all {
		if strings.HasPrefix(candidate.ID, arg) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, err
	default:
		return nil, services.Wrap(services.ErrValidation, "cli", "resolve",
			fmt.Sprintf("session prefix %q is ambiguous (%d matches)", arg, len(matches)), nil)
	}
}

func parseSplitIndex(arg string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, services.Wrap(services.ErrValidation, "cli", "parse",
			fmt.Sprintf("split index %q is not a number", arg), err)
	}
	return index, nil
}

func formatPageRange(split segment.Split) string {
	if split.StartPage == split.EndPage {
		return strconv.Itoa(split.StartPage)
	}
	return fmt.Sprintf("%d-%d", split.StartPage, split.EndPage)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
