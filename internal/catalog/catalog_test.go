package catalog

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if c.Count() < 8 {
		t.Fatalf("expected at least 8 platforms, got %d", c.Count())
	}

	seen := make(map[string]bool)
	for _, p := range c.List() {
		if seen[p.Name] {
			t.Errorf("duplicate platform name %q", p.Name)
		}
		seen[p.Name] = true

		if p.Authority < 85 || p.Authority > 100 {
			t.Errorf("platform %s: authority %d outside [85,100]", p.Name, p.Authority)
		}
		if p.SuccessProbability < 0.85 || p.SuccessProbability > 0.96 {
			t.Errorf("platform %s: probability %v outside [0.85,0.96]", p.Name, p.SuccessProbability)
		}
	}
}

func TestPickReturnsCatalogMember(t *testing.T) {
	c := Default()
	rng := rand.New(rand.NewSource(42))

	names := make(map[string]bool)
	for _, p := range c.List() {
		names[p.Name] = true
	}

	picked := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		p := c.Pick(rng)
		if !names[p.Name] {
			t.Fatalf("picked unknown platform %q", p.Name)
		}
		picked[p.Name] = true
	}

	// 1000 uniform draws over 10 platforms should hit every entry.
	if len(picked) != c.Count() {
		t.Errorf("expected all %d platforms picked, got %d", c.Count(), len(picked))
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("empty path falls back to defaults", func(t *testing.T) {
		c, err := LoadFile("")
		if err != nil {
			t.Fatalf("LoadFile failed: %v", err)
		}
		if c.Count() != Default().Count() {
			t.Errorf("expected default catalog, got %d platforms", c.Count())
		}
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "platforms.yaml")
		content := `
- name: Example
  base_url: example.com
  authority: 90
  success_probability: 0.9
- name: Other
  base_url: other.com
  authority: 88
  success_probability: 0.95
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		c, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile failed: %v", err)
		}
		if c.Count() != 2 {
			t.Fatalf("expected 2 platforms, got %d", c.Count())
		}
		if got := c.List()[0].Name; got != "Example" {
			t.Errorf("expected first platform Example, got %q", got)
		}
	})

	t.Run("invalid probability rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "platforms.yaml")
		content := `
- name: Broken
  base_url: broken.com
  authority: 90
  success_probability: 1.5
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadFile(path); err == nil {
			t.Error("expected error for probability > 1")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile("/does/not/exist.yaml"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
