package naming

import (
	"fmt"
	"strings"
	"sync"
)

// CollisionResolver disambiguates duplicate derived filenames within one
// assembly plan. The first claimant keeps the plain name; later claimants
// get "-2", "-3", ... inserted before the extension. All methods are
// goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	claimed  map[string]struct{}
	counters map[string]int
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		claimed:  make(map[string]struct{}),
		counters: make(map[string]int),
	}
}

// Resolve returns filename unchanged if it is unclaimed, otherwise the first
// free numbered variant. Every returned name is recorded as claimed.
func (cr *CollisionResolver) Resolve(filename string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if _, exists := cr.claimed[filename]; !exists {
		cr.claimed[filename] = struct{}{}
		return filename
	}

	ext := ""
	stem := filename
	if i := strings.LastIndex(filename, "."); i >= 0 {
		stem, ext = filename[:i], filename[i:]
	}

	counter := cr.counters[filename]
	if counter < 2 {
		counter = 2
	}
	for {
		candidate := fmt.Sprintf("%s-%d%s", stem, counter, ext)
		if _, exists := cr.claimed[candidate]; !exists {
			cr.counters[filename] = counter + 1
			cr.claimed[candidate] = struct{}{}
			return candidate
		}
		counter++
	}
}
