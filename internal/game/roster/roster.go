// Package roster loads combatant definitions from YAML and builds characters
// from them.
package roster

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/arena/internal/game/character"
	"github.com/cory-johannsen/arena/internal/game/stat"
)

// Entry defines one combatant.
type Entry struct {
	Name string `yaml:"name"`
	// Controller is "human"/"player" or "automatic"/"ai"; empty means automatic.
	Controller string `yaml:"controller"`
	// Stats maps an attribute name or ticker to its base value.
	Stats map[string]int `yaml:"stats"`
	// Progress maps an attribute name or ticker to experience applied after
	// the base values are set.
	Progress map[string]int `yaml:"progress"`
}

// Roster is an ordered list of combatant definitions. Order is turn order.
type Roster struct {
	Combatants []Entry `yaml:"combatants"`
}

// Validate checks the entry's fields.
//
// Postcondition: Returns nil iff Name is non-empty, Controller parses, every
// stat key names an attribute with a base value in [0, stat.MaxBaseValue],
// every progress key names an attribute, and no attribute is named twice in
// either map. Otherwise the error lists every violation.
func (e *Entry) Validate() error {
	var errs []string
	if e.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	if _, ok := character.ParseController(e.Controller); !ok {
		errs = append(errs, fmt.Sprintf("unknown controller %q", e.Controller))
	}
	stats, statErrs := resolveKinds("stats", e.Stats)
	errs = append(errs, statErrs...)
	for _, k := range stat.Kinds() {
		if v, ok := stats[k]; ok && (v < 0 || v > stat.MaxBaseValue) {
			errs = append(errs, fmt.Sprintf("stats: %s must be in [0, %d], got %d", k, stat.MaxBaseValue, v))
		}
	}
	_, progressErrs := resolveKinds("progress", e.Progress)
	errs = append(errs, progressErrs...)

	if len(errs) > 0 {
		return fmt.Errorf("combatant %q: %s", e.Name, strings.Join(errs, "; "))
	}
	return nil
}

// resolveKinds maps attribute names or tickers to kinds. Keys are visited in
// sorted order so errors are reported the same way on every run.
func resolveKinds(field string, m map[string]int) (map[stat.Kind]int, []string) {
	var errs []string
	keys := slices.Sorted(maps.Keys(m))
	byKind := make(map[stat.Kind]int, len(m))
	firstKey := make(map[stat.Kind]string, len(m))
	for _, key := range keys {
		k, err := stat.ParseKind(key)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", field, err))
			continue
		}
		if prev, dup := firstKey[k]; dup {
			errs = append(errs, fmt.Sprintf("%s: %s named twice (%q and %q)", field, k, prev, key))
			continue
		}
		firstKey[k] = key
		byKind[k] = m[key]
	}
	return byKind, errs
}

// Validate checks every entry and that names are unique.
//
// Postcondition: Returns nil iff the roster is non-empty and every entry is
// valid with a distinct name; otherwise the error lists every violation.
func (r *Roster) Validate() error {
	if len(r.Combatants) == 0 {
		return fmt.Errorf("roster validation failed: no combatants")
	}
	var errs []string
	seen := make(map[string]bool, len(r.Combatants))
	for i := range r.Combatants {
		e := &r.Combatants[i]
		if err := e.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("entry %d: %v", i, err))
		}
		if e.Name == "" {
			continue
		}
		if seen[e.Name] {
			errs = append(errs, fmt.Sprintf("duplicate combatant name %q", e.Name))
		}
		seen[e.Name] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("roster validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Build creates one character per entry in roster order, each with a full pool.
//
// Precondition: r.Validate() returns nil.
// Postcondition: len(result) == len(r.Combatants).
func (r *Roster) Build() ([]*character.Character, error) {
	chars := make([]*character.Character, 0, len(r.Combatants))
	for _, e := range r.Combatants {
		c, err := e.Build()
		if err != nil {
			return nil, err
		}
		chars = append(chars, c)
	}
	return chars, nil
}

// Build creates the character this entry describes. Base values are applied
// before progress so experience levels up from the configured base; both are
// applied in stat.Kinds() order.
func (e *Entry) Build() (*character.Character, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	controller, _ := character.ParseController(e.Controller)
	stats, _ := resolveKinds("stats", e.Stats)
	progress, _ := resolveKinds("progress", e.Progress)

	block := stat.NewBlock()
	for _, k := range stat.Kinds() {
		if v, ok := stats[k]; ok {
			block.Stat(k).SetBaseValue(v)
		}
	}
	for _, k := range stat.Kinds() {
		if amount, ok := progress[k]; ok {
			block.Stat(k).Advance(amount)
		}
	}

	c := character.New(e.Name, block)
	c.Controller = controller
	return c, nil
}

// LoadFromBytes parses and validates a roster from raw YAML.
//
// Postcondition: Returns a validated *Roster, or an error.
func LoadFromBytes(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing roster YAML: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Load reads and validates the roster file at path.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster %q: %w", path, err)
	}
	r, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %q: %w", path, err)
	}
	return r, nil
}
