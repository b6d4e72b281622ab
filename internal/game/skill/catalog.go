package skill

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog holds all known skills keyed by ID. It is read-only after load.
type Catalog struct {
	skills map[string]*Skill
}

// NewCatalog builds a Catalog from skills, validating every effect.
//
// Precondition: each skill must have a non-empty, unique ID.
// Postcondition: Returns a populated Catalog or the first validation error.
func NewCatalog(skills []*Skill) (*Catalog, error) {
	c := &Catalog{skills: make(map[string]*Skill, len(skills))}
	for _, s := range skills {
		if s == nil || s.ID == "" {
			return nil, fmt.Errorf("skill must have a non-empty id")
		}
		if _, dup := c.skills[s.ID]; dup {
			return nil, fmt.Errorf("duplicate skill id %q", s.ID)
		}
		for i, e := range s.Effects {
			if err := e.Validate(); err != nil {
				return nil, fmt.Errorf("skill %q effect[%d]: %w", s.ID, i, err)
			}
		}
		c.skills[s.ID] = s
	}
	return c, nil
}

// Get returns the skill for id, or (nil, false) if unknown.
func (c *Catalog) Get(id string) (*Skill, bool) {
	s, ok := c.skills[id]
	return s, ok
}

// Resolve returns the skills for ids in order, dropping unknown IDs.
func (c *Catalog) Resolve(ids []string) []*Skill {
	out := make([]*Skill, 0, len(ids))
	for _, id := range ids {
		if s, ok := c.skills[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

// All returns every skill sorted by ID.
func (c *Catalog) All() []*Skill {
	out := make([]*Skill, 0, len(c.skills))
	for _, s := range c.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDirectory reads every *.yaml file in dir. Each file holds a list of skills.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a validated Catalog, or an error if any file fails to
// parse or any effect fails validation.
func LoadDirectory(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading skill dir %q: %w", dir, err)
	}
	var all []*Skill
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var skills []*Skill
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&skills); err != nil {
			if errors.Is(err, io.EOF) {
				continue
			}
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		all = append(all, skills...)
	}
	return NewCatalog(all)
}
