package badges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_DefaultDefinitionsAreValid(t *testing.T) {
	catalog, err := NewCatalog(DefaultDefinitions())
	require.NoError(t, err)
	assert.Equal(t, len(DefaultDefinitions()), catalog.Len())

	// Iteration order is definition order.
	defs := catalog.Definitions()
	assert.Equal(t, "first_problem", defs[0].ID)
	assert.Equal(t, "consistency_king", defs[len(defs)-1].ID)
}

func TestNewCatalog_RejectsEmptyCatalog(t *testing.T) {
	_, err := NewCatalog(nil)
	assert.Error(t, err)
}

func TestNewCatalog_RejectsDuplicateIDs(t *testing.T) {
	defs := []BadgeDefinition{
		{ID: "dup", Requirement: Requirement{Kind: KindTotalProblems, Target: 1}},
		{ID: "dup", Requirement: Requirement{Kind: KindTotalProblems, Target: 2}},
	}
	_, err := NewCatalog(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate badge id")
}

func TestNewCatalog_RejectsNonPositiveTarget(t *testing.T) {
	for _, target := range []int{0, -1} {
		_, err := NewCatalog([]BadgeDefinition{
			{ID: "bad", Requirement: Requirement{Kind: KindTotalProblems, Target: target}},
		})
		assert.Error(t, err)
	}
}

func TestNewCatalog_RejectsUnknownKind(t *testing.T) {
	_, err := NewCatalog([]BadgeDefinition{
		{ID: "bad", Requirement: Requirement{Kind: "vibes", Target: 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown requirement kind")
}

func TestNewCatalog_RejectsMissingVariantFields(t *testing.T) {
	_, err := NewCatalog([]BadgeDefinition{
		{ID: "no_difficulty", Requirement: Requirement{Kind: KindDifficulty, Target: 5}},
	})
	assert.Error(t, err)

	_, err = NewCatalog([]BadgeDefinition{
		{ID: "no_topic", Requirement: Requirement{Kind: KindTopic, Target: 5}},
	})
	assert.Error(t, err)

	_, err = NewCatalog([]BadgeDefinition{
		{ID: "bad_window", Requirement: Requirement{Kind: KindTimeOfDay, Target: 5, StartHour: 24, EndHour: 3}},
	})
	assert.Error(t, err)
}

func TestCatalog_Get(t *testing.T) {
	catalog, err := NewCatalog(DefaultDefinitions())
	require.NoError(t, err)

	def, ok := catalog.Get("weekend_warrior")
	require.True(t, ok)
	assert.Equal(t, KindWeekend, def.Requirement.Kind)
	assert.Equal(t, 20, def.Requirement.Target)

	_, ok = catalog.Get("no_such_badge")
	assert.False(t, ok)
}

func TestCatalog_IsImmutableAgainstCallerSlice(t *testing.T) {
	defs := DefaultDefinitions()
	catalog, err := NewCatalog(defs)
	require.NoError(t, err)

	defs[0].ID = "mutated"

	def, ok := catalog.Get("first_problem")
	require.True(t, ok)
	assert.Equal(t, "first_problem", def.ID)
}
