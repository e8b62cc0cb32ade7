package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"labeler/internal/models"
)

// Catalog is the fixed set of valid labels for a run. Names are
// unique and matching is case-sensitive.
type Catalog struct {
	tags  []models.Tag
	names map[string]struct{}
}

// file mirrors the on-disk shape: {"tags": [{"name", "description"}]}.
type file struct {
	Tags []models.Tag `json:"tags"`
}

// Load reads the tag catalog from path. Duplicate names and shape
// errors are configuration errors; an empty catalog is valid.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading tag catalog %s: %v", models.ErrConfiguration, path, err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: parsing tag catalog %s: %v", models.ErrConfiguration, path, err)
	}

	return New(f.Tags)
}

// New builds a catalog from tag records, enforcing name uniqueness.
func New(tags []models.Tag) (*Catalog, error) {
	names := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: tag catalog contains an entry with no name", models.ErrConfiguration)
		}
		if _, dup := names[t.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate tag name %q in catalog", models.ErrConfiguration, t.Name)
		}
		names[t.Name] = struct{}{}
	}
	return &Catalog{tags: tags, names: names}, nil
}

// Tags returns the catalog entries in file order.
func (c *Catalog) Tags() []models.Tag {
	return c.tags
}

// Names returns the tag names in file order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.tags))
	for i, t := range c.tags {
		names[i] = t.Name
	}
	return names
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.tags)
}

// Contains reports exact, case-sensitive membership of name.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.names[name]
	return ok
}

// Filter returns the subset of names that are exact catalog members,
// deduplicated, preserving first-occurrence order. Unknown names are
// dropped silently.
func (c *Catalog) Filter(names []string) []string {
	result := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if !c.Contains(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}
