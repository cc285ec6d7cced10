package pet

import "time"

const (
	MaxHealth    = 100
	MaxHappiness = 100
	MaxHunger    = 100

	// DefaultDecayInterval is one decay period. Each elapsed period drains
	// hunger and happiness by one point; health drains one extra point per
	// stat sitting below LowStatThreshold.
	DefaultDecayInterval = 4 * time.Hour

	DecayHungerPerPeriod    = 1
	DecayHappinessPerPeriod = 1
	LowStatThreshold        = 20

	EvolutionBabyMaxLevel = 5
	EvolutionTeenMaxLevel = 15

	// ExpToLevelUp scales with the current level: level N requires N*100 exp.
	ExpToLevelUp = 100

	CareFeedHungerGain    = 30
	CareFeedExpGain       = 5
	CarePlayHappinessGain = 20
	CarePlayHungerCost    = 10
	CarePlayExpGain       = 10
	CareHealHealthGain    = 50
	CareHealHappinessCost = 10
)
