// file: internal/badges/definitions.go
package badges

// DefaultDefinitions returns the built-in badge catalog entries in award
// display order. Validate them through NewCatalog at boot.
func DefaultDefinitions() []BadgeDefinition {
	return []BadgeDefinition{
		// Problem count badges
		{
			ID:          "first_problem",
			Name:        "First Blood",
			Description: "Solved your first problem!",
			Icon:        "🎯",
			Color:       "#10B981",
			Category:    CategorySpecial,
			Tier:        TierBronze,
			Requirement: Requirement{Kind: KindTotalProblems, Target: 1},
		},
		{
			ID:          "problem_enthusiast",
			Name:        "Enthusiast",
			Description: "Solved 10 problems",
			Icon:        "🌟",
			Color:       "#CD7F32",
			Category:    CategoryProblemCount,
			Tier:        TierBronze,
			Requirement: Requirement{Kind: KindTotalProblems, Target: 10},
		},
		{
			ID:          "problem_expert",
			Name:        "Expert",
			Description: "Solved 50 problems",
			Icon:        "⭐",
			Color:       "#C0C0C0",
			Category:    CategoryProblemCount,
			Tier:        TierSilver,
			Requirement: Requirement{Kind: KindTotalProblems, Target: 50},
		},
		{
			ID:          "problem_master",
			Name:        "Master",
			Description: "Solved 100 problems",
			Icon:        "🏆",
			Color:       "#FFD700",
			Category:    CategoryProblemCount,
			Tier:        TierGold,
			Requirement: Requirement{Kind: KindTotalProblems, Target: 100},
		},
		{
			ID:          "problem_legend",
			Name:        "Legend",
			Description: "Solved 200 problems",
			Icon:        "👑",
			Color:       "#E5E4E2",
			Category:    CategoryProblemCount,
			Tier:        TierPlatinum,
			Requirement: Requirement{Kind: KindTotalProblems, Target: 200},
		},

		// Difficulty badges
		{
			ID:          "easy_starter",
			Name:        "Easy Starter",
			Description: "Solved 10 Easy problems",
			Icon:        "🟢",
			Color:       "#10B981",
			Category:    CategoryDifficulty,
			Tier:        TierBronze,
			Requirement: Requirement{Kind: KindDifficulty, Difficulty: "Easy", Target: 10},
		},
		{
			ID:          "easy_master",
			Name:        "Easy Master",
			Description: "Solved 50 Easy problems",
			Icon:        "💚",
			Color:       "#10B981",
			Category:    CategoryDifficulty,
			Tier:        TierSilver,
			Requirement: Requirement{Kind: KindDifficulty, Difficulty: "Easy", Target: 50},
		},
		{
			ID:          "medium_champion",
			Name:        "Medium Champion",
			Description: "Solved 25 Medium problems",
			Icon:        "🟡",
			Color:       "#F59E0B",
			Category:    CategoryDifficulty,
			Tier:        TierSilver,
			Requirement: Requirement{Kind: KindDifficulty, Difficulty: "Medium", Target: 25},
		},
		{
			ID:          "medium_legend",
			Name:        "Medium Legend",
			Description: "Solved 75 Medium problems",
			Icon:        "💛",
			Color:       "#F59E0B",
			Category:    CategoryDifficulty,
			Tier:        TierGold,
			Requirement: Requirement{Kind: KindDifficulty, Difficulty: "Medium", Target: 75},
		},
		{
			ID:          "hard_hero",
			Name:        "Hard Hero",
			Description: "Solved 10 Hard problems",
			Icon:        "🔴",
			Color:       "#EF4444",
			Category:    CategoryDifficulty,
			Tier:        TierGold,
			Requirement: Requirement{Kind: KindDifficulty, Difficulty: "Hard", Target: 10},
		},
		{
			ID:          "hard_grandmaster",
			Name:        "Hard Grandmaster",
			Description: "Solved 50 Hard problems",
			Icon:        "❤️",
			Color:       "#EF4444",
			Category:    CategoryDifficulty,
			Tier:        TierPlatinum,
			Requirement: Requirement{Kind: KindDifficulty, Difficulty: "Hard", Target: 50},
		},

		// Topic badges
		{
			ID:          "array_ninja",
			Name:        "Array Ninja",
			Description: "Solved 15 Array problems",
			Icon:        "🥷",
			Color:       "#3B82F6",
			Category:    CategoryTopic,
			Tier:        TierSilver,
			Requirement: Requirement{Kind: KindTopic, Topic: "Arrays", Target: 15},
		},
		{
			ID:          "graph_guru",
			Name:        "Graph Guru",
			Description: "Solved 15 Graph problems",
			Icon:        "🕸️",
			Color:       "#8B5CF6",
			Category:    CategoryTopic,
			Tier:        TierSilver,
			Requirement: Requirement{Kind: KindTopic, Topic: "Graphs", Target: 15},
		},
		{
			ID:          "tree_wizard",
			Name:        "Tree Wizard",
			Description: "Solved 15 Tree problems",
			Icon:        "🌳",
			Color:       "#10B981",
			Category:    CategoryTopic,
			Tier:        TierSilver,
			Requirement: Requirement{Kind: KindTopic, Topic: "Trees", Target: 15},
		},
		{
			ID:          "dp_master",
			Name:        "DP Master",
			Description: "Solved 15 Dynamic Programming problems",
			Icon:        "🧩",
			Color:       "#EC4899",
			Category:    CategoryTopic,
			Tier:        TierGold,
			Requirement: Requirement{Kind: KindTopic, Topic: "Dynamic Programming", Target: 15},
		},
		{
			ID:          "backtrack_boss",
			Name:        "Backtracking Boss",
			Description: "Solved 10 Backtracking problems",
			Icon:        "🔙",
			Color:       "#F59E0B",
			Category:    CategoryTopic,
			Tier:        TierGold,
			Requirement: Requirement{Kind: KindTopic, Topic: "Backtracking", Target: 10},
		},

		// Streak badges
		{
			ID:          "fire_starter",
			Name:        "Fire Starter",
			Description: "7-day solving streak",
			Icon:        "🔥",
			Color:       "#F97316",
			Category:    CategoryStreak,
			Tier:        TierBronze,
			Requirement: Requirement{Kind: KindStreak, Target: 7},
		},
		{
			ID:          "streak_champion",
			Name:        "Streak Champion",
			Description: "30-day solving streak",
			Icon:        "🔥",
			Color:       "#EF4444",
			Category:    CategoryStreak,
			Tier:        TierSilver,
			Requirement: Requirement{Kind: KindStreak, Target: 30},
		},
		{
			ID:          "unstoppable",
			Name:        "Unstoppable",
			Description: "100-day solving streak",
			Icon:        "🔥",
			Color:       "#DC2626",
			Category:    CategoryStreak,
			Tier:        TierPlatinum,
			Requirement: Requirement{Kind: KindStreak, Target: 100},
		},

		// Special badges
		{
			ID:          "night_owl",
			Name:        "Night Owl",
			Description: "Solved 10 problems between 10 PM - 5 AM",
			Icon:        "🦉",
			Color:       "#6366F1",
			Category:    CategoryTimeOfDay,
			Tier:        TierBronze,
			Requirement: Requirement{Kind: KindTimeOfDay, StartHour: 22, EndHour: 5, Target: 10},
		},
		{
			ID:          "early_bird",
			Name:        "Early Bird",
			Description: "Solved 10 problems between 5 AM - 9 AM",
			Icon:        "🐦",
			Color:       "#FBBF24",
			Category:    CategoryTimeOfDay,
			Tier:        TierBronze,
			Requirement: Requirement{Kind: KindTimeOfDay, StartHour: 5, EndHour: 9, Target: 10},
		},
		{
			ID:          "weekend_warrior",
			Name:        "Weekend Warrior",
			Description: "Solved 20 problems on weekends",
			Icon:        "⚔️",
			Color:       "#10B981",
			Category:    CategoryWeekend,
			Tier:        TierSilver,
			Requirement: Requirement{Kind: KindWeekend, Target: 20},
		},
		{
			ID:          "speed_demon",
			Name:        "Speed Demon",
			Description: "Solved 5 problems in one day",
			Icon:        "⚡",
			Color:       "#FBBF24",
			Category:    CategoryDailyCount,
			Tier:        TierGold,
			Requirement: Requirement{Kind: KindDailyCount, Target: 5},
		},
		{
			ID:          "consistency_king",
			Name:        "Consistency King",
			Description: "Solved at least 1 problem for 14 consecutive days",
			Icon:        "👑",
			Color:       "#8B5CF6",
			Category:    CategoryConsistency,
			Tier:        TierGold,
			Requirement: Requirement{Kind: KindConsistency, Target: 14},
		},
	}
}
