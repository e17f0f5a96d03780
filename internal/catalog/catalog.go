package catalog

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"partsplit/internal/logging"
	"partsplit/internal/services"
	"partsplit/internal/textutil"
)

//go:embed catalog.toml
var builtinCatalog []byte

// Entry describes one catalog instrument.
type Entry struct {
	Name    string   `toml:"name"`
	Family  string   `toml:"family"`
	Aliases []string `toml:"aliases"`
}

// Alias pairs a normalized alias with the canonical instrument it names.
type Alias struct {
	Alias     string
	Canonical string
}

// Catalog is the read-only instrument lookup table the resolver matches
// against. All aliases are normalized once at load time.
type Catalog struct {
	entries []Entry
	aliases []Alias
	index   map[string]string
}

type document struct {
	Instruments []Entry `toml:"instrument"`
}

// Load builds the catalog from the builtin table, optionally merged with a
// user-supplied TOML file. User entries whose canonical name matches a
// builtin entry replace it; new names extend the catalog.
func Load(extraPath string, logger *slog.Logger) (*Catalog, error) {
	log := logging.NewComponentLogger(logger, "catalog")

	var builtin document
	if err := toml.Unmarshal(builtinCatalog, &builtin); err != nil {
		return nil, fmt.Errorf("decode builtin catalog: %w", err)
	}

	entries := builtin.Instruments
	if strings.TrimSpace(extraPath) != "" {
		extra, err := loadExtra(extraPath)
		if err != nil {
			return nil, err
		}
		entries = merge(entries, extra)
		log.Info("merged user catalog",
			logging.String("path", extraPath),
			logging.Int("extra_entries", len(extra)))
	}

	cat := &Catalog{
		entries: entries,
		index:   make(map[string]string, len(entries)*4),
	}
	for _, entry := range entries {
		cat.register(entry.Name, entry.Name, log)
		for _, alias := range entry.Aliases {
			cat.register(alias, entry.Name, log)
		}
	}
	if len(cat.aliases) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "load", "catalog has no usable aliases", nil)
	}
	return cat, nil
}

// LoadBuiltin builds the catalog from the embedded table only.
func LoadBuiltin(logger *slog.Logger) (*Catalog, error) {
	return Load("", logger)
}

func loadExtra(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "load", "read user catalog", err)
	}
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "catalog", "load", "parse user catalog", err)
	}
	return doc.Instruments, nil
}

func merge(builtin, extra []Entry) []Entry {
	merged := make([]Entry, len(builtin))
	copy(merged, builtin)
	byName := make(map[string]int, len(merged))
	for i, entry := range merged {
		byName[textutil.NormalizeLabel(entry.Name)] = i
	}
	for _, entry := range extra {
		key := textutil.NormalizeLabel(entry.Name)
		if key == "" {
			continue
		}
		if i, ok := byName[key]; ok {
			merged[i] = entry
			continue
		}
		byName[key] = len(merged)
		merged = append(merged, entry)
	}
	return merged
}

func (c *Catalog) register(alias, canonical string, log *slog.Logger) {
	normalized := textutil.NormalizeLabel(alias)
	if normalized == "" {
		return
	}
	if owner, ok := c.index[normalized]; ok {
		if owner != canonical {
			logging.WarnWithContext(log, "duplicate alias kept for first owner", "catalog_duplicate_alias",
				logging.String("alias", normalized),
				logging.String("kept", owner),
				logging.String("shadowed", canonical))
		}
		return
	}
	c.index[normalized] = canonical
	c.aliases = append(c.aliases, Alias{Alias: normalized, Canonical: canonical})
}

// Names returns the canonical instrument names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		names = append(names, entry.Name)
	}
	return names
}

// Entries returns a copy of the catalog entries in catalog order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Families returns the distinct family names in sorted order.
func (c *Catalog) Families() []string {
	seen := make(map[string]struct{}, 4)
	for _, entry := range c.entries {
		family := strings.TrimSpace(entry.Family)
		if family == "" {
			continue
		}
		seen[family] = struct{}{}
	}
	families := make([]string, 0, len(seen))
	for family := range seen {
		families = append(families, family)
	}
	sort.Strings(families)
	return families
}

// Aliases returns the normalized alias table in registration order. The
// resolver scans this list, so ordering is part of tie-breaking.
func (c *Catalog) Aliases() []Alias {
	out := make([]Alias, len(c.aliases))
	copy(out, c.aliases)
	return out
}

// Lookup resolves an already-normalized alias to its canonical name.
func (c *Catalog) Lookup(normalized string) (string, bool) {
	canonical, ok := c.index[normalized]
	return canonical, ok
}

// HasName reports whether the given text names a catalog instrument exactly
// (after normalization). Used to vet advisor suggestions.
func (c *Catalog) HasName(name string) bool {
	key := textutil.NormalizeLabel(name)
	for _, entry := range c.entries {
		if textutil.NormalizeLabel(entry.Name) == key {
			return true
		}
	}
	return false
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
