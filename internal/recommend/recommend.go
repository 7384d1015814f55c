// Package recommend ranks surfactant systems against user preferences.
package recommend

import (
	"sort"

	"formulakb/internal/catalog"
)

// Tags the scorer reacts to.
const (
	TagSulfateFree = "sulfate-free"
	TagMild        = "mild"
	TagHighFoam    = "high foam"
	TagCost        = "cost"
)

// Preferences are the recommender toggles.
type Preferences struct {
	SulfateFree bool `json:"sulfate_free"`
	Mild        bool `json:"mild"`
	HighFoam    bool `json:"high_foam"`
}

// Ranked pairs a candidate system with its score.
type Ranked struct {
	System catalog.SurfactantSystem `json:"system"`
	Score  int                      `json:"score"`
}

// Score sums the preference bonuses for a system. The cost bonus applies
// only when mildness is not requested.
func Score(system catalog.SurfactantSystem, prefs Preferences) int {
	score := 0
	if prefs.SulfateFree && system.HasTag(TagSulfateFree) {
		score += 2
	}
	if prefs.Mild && system.HasTag(TagMild) {
		score += 2
	}
	if prefs.HighFoam && system.HasTag(TagHighFoam) {
		score++
	}
	if !prefs.Mild && system.HasTag(TagCost) {
		score++
	}
	return score
}

// Rank scores every candidate and orders them by score, highest first.
// Equal scores keep their catalog order. Nothing is dropped.
func Rank(systems []catalog.SurfactantSystem, prefs Preferences) []Ranked {
	ranked := make([]Ranked, len(systems))
	for i, system := range systems {
		ranked[i] = Ranked{System: system, Score: Score(system, prefs)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
