// Package catalog holds the hand-authored formulation guidelines: the typical
// base structure per product type and, where available, candidate surfactant
// systems for the recommender.
package catalog

import "sync"

// Key identifies a rule set by category and product type.
type Key struct {
	Category    string
	ProductType string
}

// StructureRow is one line of a base structure guideline.
type StructureRow struct {
	Component    string `json:"component"`
	Function     string `json:"function"`
	TypicalRange string `json:"typical_range"`
}

// ComboEntry is one ingredient of a surfactant system.
type ComboEntry struct {
	INCI  string `json:"inci"`
	Role  string `json:"role"`
	Range string `json:"range"`
}

// SurfactantSystem is a named combination of surfactants with descriptive tags.
type SurfactantSystem struct {
	Name  string       `json:"name"`
	Tags  []string     `json:"tags"`
	Combo []ComboEntry `json:"combo"`
}

// HasTag reports whether the system carries exactly the given tag.
func (s SurfactantSystem) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// RuleSet groups the guidelines registered for one product type.
type RuleSet struct {
	BaseStructure     []StructureRow     `json:"base_structure"`
	SurfactantSystems []SurfactantSystem `json:"surfactant_systems,omitempty"`
}

// Registry maps keys to rule sets. The zero value is ready to use.
type Registry struct {
	mu    sync.RWMutex
	rules map[Key]RuleSet
	order []Key
}

// Register adds or replaces the rule set for key.
func (r *Registry) Register(key Key, rules RuleSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rules == nil {
		r.rules = make(map[Key]RuleSet)
	}
	if _, exists := r.rules[key]; !exists {
		r.order = append(r.order, key)
	}
	r.rules[key] = rules
}

// Lookup returns the rule set for the exact category and product type.
// A missing entry is not an error; callers show an informational message.
func (r *Registry) Lookup(category, productType string) (RuleSet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules, ok := r.rules[Key{Category: category, ProductType: productType}]
	return rules, ok
}

// Keys lists registered keys in registration order.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]Key, len(r.order))
	copy(keys, r.order)
	return keys
}

// SystemsFor returns the surfactant systems of the first rule set registered
// for productType. The boolean is false when no candidates exist.
func (r *Registry) SystemsFor(productType string) ([]SurfactantSystem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, key := range r.order {
		if key.ProductType != productType {
			continue
		}
		systems := r.rules[key].SurfactantSystems
		if len(systems) == 0 {
			return nil, false
		}
		return systems, true
	}
	return nil, false
}

var defaultRegistry = newDefaultRegistry()

// Default returns the registry preloaded with the built-in guidelines.
func Default() *Registry {
	return defaultRegistry
}

// Lookup queries the default registry.
func Lookup(category, productType string) (RuleSet, bool) {
	return defaultRegistry.Lookup(category, productType)
}

// Register extends the default registry.
func Register(key Key, rules RuleSet) {
	defaultRegistry.Register(key, rules)
}

// Keys lists the default registry keys.
func Keys() []Key {
	return defaultRegistry.Keys()
}

// SystemsFor queries the default registry for recommender candidates.
func SystemsFor(productType string) ([]SurfactantSystem, bool) {
	return defaultRegistry.SystemsFor(productType)
}

// Fallbacks used when the browse filters are left at "all".
const (
	DefaultCategory    = "Bodycare"
	DefaultProductType = "Body Wash"
)

// StructureKey picks the rule key shown in the typical structure panel,
// substituting the defaults for unset filters.
func StructureKey(category, productType string) Key {
	if category == "" {
		category = DefaultCategory
	}
	if productType == "" {
		productType = DefaultProductType
	}
	return Key{Category: category, ProductType: productType}
}

// RecommenderTargets lists the product types offered by the recommender, in
// registration order.
func (r *Registry) RecommenderTargets() []string {
	keys := r.Keys()
	targets := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key.ProductType]; ok {
			continue
		}
		seen[key.ProductType] = struct{}{}
		targets = append(targets, key.ProductType)
	}
	return targets
}

// RecommenderTargets lists the default registry's recommender targets.
func RecommenderTargets() []string {
	return defaultRegistry.RecommenderTargets()
}

// NoRulesMessage and RecommenderUnavailableMessage are shown for soft misses.
const (
	NoRulesMessage                = "No embedded rules for this selection yet."
	RecommenderUnavailableMessage = "Surfactant recommender currently optimized for Body Wash."
)
