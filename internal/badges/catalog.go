// file: internal/badges/catalog.go
package badges

import (
	"fmt"
)

// ===============================
// REQUIREMENT KINDS
// ===============================

// RequirementKind identifies the rule used to decide a badge
type RequirementKind string

const (
	KindTotalProblems RequirementKind = "total_problems"
	KindDifficulty    RequirementKind = "difficulty"
	KindTopic         RequirementKind = "topic"
	KindStreak        RequirementKind = "streak"
	KindTimeOfDay     RequirementKind = "time_of_day"
	KindWeekend       RequirementKind = "weekend"
	KindDailyCount    RequirementKind = "daily_count"
	KindConsistency   RequirementKind = "consistency"
)

// Requirement is the tagged variant that fully determines when a badge is
// earned. Kind selects the rule; Target is the threshold the observed metric
// must reach. Difficulty, Topic and the hour window are only meaningful for
// their respective kinds.
type Requirement struct {
	Kind   RequirementKind `json:"kind"`
	Target int             `json:"target"`

	Difficulty string `json:"difficulty,omitempty"` // KindDifficulty
	Topic      string `json:"topic,omitempty"`      // KindTopic, case-insensitive match

	// KindTimeOfDay window [StartHour, EndHour); wraps past midnight
	// when StartHour > EndHour.
	StartHour int `json:"start_hour,omitempty"`
	EndHour   int `json:"end_hour,omitempty"`
}

// ===============================
// BADGE DEFINITIONS
// ===============================

// Category groups badges for display and stats
type Category string

const (
	CategoryProblemCount Category = "problem_count"
	CategoryDifficulty   Category = "difficulty"
	CategoryTopic        Category = "topic"
	CategoryStreak       Category = "streak"
	CategoryTimeOfDay    Category = "time_of_day"
	CategoryWeekend      Category = "weekend"
	CategoryDailyCount   Category = "daily_count"
	CategoryConsistency  Category = "consistency"
	CategorySpecial      Category = "special"
)

// Tier is cosmetic ordering metadata, never a gating mechanism
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
)

// BadgeDefinition is one immutable catalog entry
type BadgeDefinition struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Color       string      `json:"color"`
	Category    Category    `json:"category"`
	Tier        Tier        `json:"tier"`
	Requirement Requirement `json:"requirement"`
}

// ===============================
// CATALOG
// ===============================

// Catalog is the validated, immutable set of badge definitions. Construct it
// once at boot with NewCatalog and inject it into the badge service;
// iteration order is definition order.
type Catalog struct {
	defs []BadgeDefinition
	byID map[string]int
}

var knownKinds = map[RequirementKind]bool{
	KindTotalProblems: true,
	KindDifficulty:    true,
	KindTopic:         true,
	KindStreak:        true,
	KindTimeOfDay:     true,
	KindWeekend:       true,
	KindDailyCount:    true,
	KindConsistency:   true,
}

// NewCatalog validates the definitions and builds a catalog. A zero or
// negative target, an unknown requirement kind, a duplicate id or a missing
// variant field is a programming error in the static catalog, so callers
// should fail fast on a non-nil error.
func NewCatalog(defs []BadgeDefinition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("badge catalog must not be empty")
	}

	byID := make(map[string]int, len(defs))
	for i, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("badge at index %d has an empty id", i)
		}
		if _, dup := byID[def.ID]; dup {
			return nil, fmt.Errorf("duplicate badge id %q", def.ID)
		}
		if err := validateRequirement(def.ID, def.Requirement); err != nil {
			return nil, err
		}
		byID[def.ID] = i
	}

	// Defensive copy so the caller's slice cannot mutate the catalog.
	owned := make([]BadgeDefinition, len(defs))
	copy(owned, defs)

	return &Catalog{defs: owned, byID: byID}, nil
}

func validateRequirement(badgeID string, req Requirement) error {
	if !knownKinds[req.Kind] {
		return fmt.Errorf("badge %q has unknown requirement kind %q", badgeID, req.Kind)
	}
	if req.Target <= 0 {
		return fmt.Errorf("badge %q has non-positive target %d", badgeID, req.Target)
	}

	switch req.Kind {
	case KindDifficulty:
		if req.Difficulty == "" {
			return fmt.Errorf("badge %q requires a difficulty value", badgeID)
		}
	case KindTopic:
		if req.Topic == "" {
			return fmt.Errorf("badge %q requires a topic value", badgeID)
		}
	case KindTimeOfDay:
		if req.StartHour < 0 || req.StartHour > 23 || req.EndHour < 0 || req.EndHour > 23 {
			return fmt.Errorf("badge %q has hour window [%d,%d) outside 0..23", badgeID, req.StartHour, req.EndHour)
		}
	}
	return nil
}

// Definitions returns the catalog entries in definition order. The returned
// slice is shared; callers must not modify it.
func (c *Catalog) Definitions() []BadgeDefinition {
	return c.defs
}

// Get looks up a definition by id
func (c *Catalog) Get(id string) (BadgeDefinition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return BadgeDefinition{}, false
	}
	return c.defs[i], true
}

// Len returns the number of definitions
func (c *Catalog) Len() int {
	return len(c.defs)
}
