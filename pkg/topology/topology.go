// Package topology maps report rows to the leaf fields they aggregate.
//
// The tables live in YAML (one file per report flavor) so rows, members and
// per-column exclusions can be reviewed and extended without touching the
// formulas. Defaults are embedded; TOPOLOGY_DIR overrides them.
package topology

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

// Column names a derived column whose sum can skip some members.
type Column string

const (
	PriorMonths    Column = "prior_months"
	CurrentMonth   Column = "current_month"
	YTDSecondary   Column = "ytd_secondary"
	DailyPrimary   Column = "daily_primary"
	DailySecondary Column = "daily_secondary"
)

var columns = []Column{PriorMonths, CurrentMonth, YTDSecondary, DailyPrimary, DailySecondary}

func (c Column) Valid() bool { return slices.Contains(columns, c) }

// Group is one report row.
type Group struct {
	ID      string              `yaml:"id" json:"id"`
	Name    string              `yaml:"name" json:"name"`
	Members []string            `yaml:"members" json:"members"`
	Exclude map[Column][]string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
}

// Composite is true when the row sums more than one leaf.
func (g Group) Composite() bool { return len(g.Members) > 1 }

// Included returns the members that contribute to col, in declaration order.
func (g Group) Included(col Column) []string {
	skip := g.Exclude[col]
	if len(skip) == 0 {
		return g.Members
	}
	out := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		if !slices.Contains(skip, m) {
			out = append(out, m)
		}
	}
	return out
}

type Topology struct {
	Flavor string  `yaml:"flavor" json:"flavor"`
	Groups []Group `yaml:"groups" json:"groups"`
}

// Leaves lists every distinct member id in first-seen order.
func (t *Topology) Leaves() []string {
	var out []string
	seen := map[string]bool{}
	for _, g := range t.Groups {
		for _, m := range g.Members {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out
}

// Validate checks the table's internal consistency.
func (t *Topology) Validate() error {
	if t.Flavor == "" {
		return errors.New("topology: flavor is required")
	}
	if len(t.Groups) == 0 {
		return fmt.Errorf("topology %s: no groups", t.Flavor)
	}
	ids := map[string]bool{}
	for i, g := range t.Groups {
		if g.ID == "" {
			return fmt.Errorf("topology %s: group #%d has no id", t.Flavor, i+1)
		}
		if ids[g.ID] {
			return fmt.Errorf("topology %s: duplicate group id %q", t.Flavor, g.ID)
		}
		ids[g.ID] = true
		if len(g.Members) == 0 {
			return fmt.Errorf("topology %s: group %q has no members", t.Flavor, g.ID)
		}
		seen := map[string]bool{}
		for _, m := range g.Members {
			if m == "" {
				return fmt.Errorf("topology %s: group %q has an empty member id", t.Flavor, g.ID)
			}
			if seen[m] {
				return fmt.Errorf("topology %s: group %q lists %q twice", t.Flavor, g.ID, m)
			}
			seen[m] = true
		}
		for col, skip := range g.Exclude {
			if !col.Valid() {
				return fmt.Errorf("topology %s: group %q excludes from unknown column %q", t.Flavor, g.ID, col)
			}
			for _, s := range skip {
				if !seen[s] {
					return fmt.Errorf("topology %s: group %q excludes %q which is not a member", t.Flavor, g.ID, s)
				}
			}
		}
	}
	return nil
}

// MissingFrom returns the leaves not present in known.
func (t *Topology) MissingFrom(known map[string]bool) []string {
	var out []string
	for _, l := range t.Leaves() {
		if !known[l] {
			out = append(out, l)
		}
	}
	return out
}

// Parse decodes and validates one topology document.
func Parse(b []byte) (*Topology, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	var t Topology
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("topology: decode: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Load reads <flavor>.yaml from dir, or from the embedded defaults when dir
// is empty.
func Load(dir, flavor string) (*Topology, error) {
	var (
		b   []byte
		err error
	)
	if dir == "" {
		b, err = embedded.ReadFile("data/" + flavor + ".yaml")
	} else {
		b, err = os.ReadFile(filepath.Join(dir, flavor+".yaml"))
	}
	if err != nil {
		return nil, fmt.Errorf("topology %s: %w", flavor, err)
	}
	t, err := Parse(b)
	if err != nil {
		return nil, err
	}
	if t.Flavor != flavor {
		return nil, fmt.Errorf("topology: %s.yaml declares flavor %q", flavor, t.Flavor)
	}
	return t, nil
}
