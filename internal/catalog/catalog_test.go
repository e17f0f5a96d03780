package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"partsplit/internal/catalog"
	"partsplit/internal/logging"
)

func TestLoadBuiltin(t *testing.T) {
	cat, err := catalog.LoadBuiltin(logging.NewNop())
	if err != nil {
		t.Fatalf("LoadBuiltin returned error: %v", err)
	}
	if cat.Len() == 0 {
		t.Fatal("expected builtin entries")
	}
	if len(cat.Aliases()) < cat.Len() {
		t.Fatalf("expected at least one alias per entry, got %d aliases for %d entries",
			len(cat.Aliases()), cat.Len())
	}
}

func TestBuiltinAliasesResolve(t *testing.T) {
	cat, err := catalog.LoadBuiltin(logging.NewNop())
	if err != nil {
		t.Fatalf("LoadBuiltin returned error: %v", err)
	}

	tests := []struct {
		alias string
		want  string
	}{
		{"solo cornet", "Solo Cornet"},
		{"cornet solo", "Solo Cornet"},
		{"1st horn", "1st Horn (Eb)"},
		{"horn 1", "1st Horn (Eb)"},
		{"flugelhorn", "Flugel Horn"},
		{"euph", "Euphonium"},
		{"bass trombone", "Bass Trombone"},
		{"cornet", "Cornet"},
		{"score", "Full Score"},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			got, ok := cat.Lookup(tt.alias)
			if !ok {
				t.Fatalf("Lookup(%q) missed", tt.alias)
			}
			if got != tt.want {
				t.Fatalf("Lookup(%q) = %q, want %q", tt.alias, got, tt.want)
			}
		})
	}
}

func TestCanonicalNamesActAsAliases(t *testing.T) {
	cat, err := catalog.LoadBuiltin(logging.NewNop())
	if err != nil {
		t.Fatalf("LoadBuiltin returned error: %v", err)
	}
	// "1st Horn (Eb)" normalizes to "1st horn eb" and must hit its own entry.
	got, ok := cat.Lookup("1st horn eb")
	if !ok || got != "1st Horn (Eb)" {
		t.Fatalf("Lookup(normalized canonical) = %q %v", got, ok)
	}
}

func TestLoadMergesUserCatalog(t *testing.T) {
	extraPath := filepath.Join(t.TempDir(), "extra.toml")
	body := `
[[instrument]]
name = "Euphonium"
family = "brass"
aliases = ["esufonio"]

[[instrument]]
name = "Kazoo"
family = "novelty"
aliases = ["kazoos"]
`
	if err := os.WriteFile(extraPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write extra catalog: %v", err)
	}

	cat, err := catalog.Load(extraPath, logging.NewNop())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	// Replaced entry: the override's aliases win, the builtin's vanish.
	if got, ok := cat.Lookup("esufonio"); !ok || got != "Euphonium" {
		t.Fatalf("Lookup(esufonio) = %q %v", got, ok)
	}
	if _, ok := cat.Lookup("euph"); ok {
		t.Fatal("expected builtin euphonium aliases to be replaced")
	}

	// Appended entry.
	if got, ok := cat.Lookup("kazoo"); !ok || got != "Kazoo" {
		t.Fatalf("Lookup(kazoo) = %q %v", got, ok)
	}
	if !cat.HasName("kazoo") {
		t.Fatal("expected HasName to see the new entry")
	}
}

func TestDuplicateAliasKeepsFirstOwner(t *testing.T) {
	extraPath := filepath.Join(t.TempDir(), "extra.toml")
	body := `
[[instrument]]
name = "Pocket Trumpet"
family = "brass"
aliases = ["trumpet"]
`
	if err := os.WriteFile(extraPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write extra catalog: %v", err)
	}

	cat, err := catalog.Load(extraPath, logging.NewNop())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got, _ := cat.Lookup("trumpet"); got != "Trumpet" {
		t.Fatalf("expected builtin Trumpet to keep the alias, got %q", got)
	}
	if got, ok := cat.Lookup("pocket trumpet"); !ok || got != "Pocket Trumpet" {
		t.Fatalf("expected new entry reachable by name, got %q %v", got, ok)
	}
}

func TestLoadMissingExtraFails(t *testing.T) {
	if _, err := catalog.Load(filepath.Join(t.TempDir(), "absent.toml"), logging.NewNop()); err == nil {
		t.Fatal("expected error for missing user catalog")
	}
}

func TestFamilies(t *testing.T) {
	cat, err := catalog.LoadBuiltin(logging.NewNop())
	if err != nil {
		t.Fatalf("LoadBuiltin returned error: %v", err)
	}
	families := cat.Families()
	if len(families) == 0 {
		t.Fatal("expected families")
	}
	for i := 1; i < len(families); i++ {
		if families[i-1] >= families[i] {
			t.Fatalf("families not sorted: %v", families)
		}
	}
	seen := map[string]bool{}
	for _, f := range families {
		if seen[f] {
			t.Fatalf("duplicate family %q", f)
		}
		seen[f] = true
	}
	if !seen["brass"] || !seen["percussion"] {
		t.Fatalf("expected brass and percussion families, got %v", families)
	}
}
