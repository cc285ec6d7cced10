package pet

import "time"

// NewRecord returns a freshly adopted pet with full stats.
func NewRecord(species Species, name string, now time.Time) Record {
	return Record{
		Species:    species,
		Name:       name,
		Level:      1,
		Experience: 0,
		Health:     MaxHealth,
		Happiness:  MaxHappiness,
		Hunger:     MaxHunger,
		LastFed:    now,
		LastPlayed: now,
		BornTime:   now,
		Version:    1,
		UpdatedAt:  now,
	}
}

// StageOf maps level and health to the evolution stage shown to the player.
func StageOf(level, health int) Stage {
	if health <= 0 {
		return StageGhost
	}
	if level < 1 {
		return StageEgg
	}
	if level <= EvolutionBabyMaxLevel {
		return StageBaby
	}
	if level <= EvolutionTeenMaxLevel {
		return StageTeen
	}
	return StageAdult
}

// Stage returns the record's current evolution stage.
func (r Record) Stage() Stage {
	return StageOf(r.Level, r.Health)
}

// BattleLevel is the level fed into battle matchmaking. Unset or zero levels
// are clamped to 1.
func (r Record) BattleLevel() int {
	if r.Level < 1 {
		return 1
	}
	return r.Level
}

// Settle applies every full decay period elapsed since the record was last
// updated. Stats never drop below zero and settling less than one full
// period is a no-op.
func Settle(rec Record, now time.Time, interval time.Duration) Record {
	if interval <= 0 {
		interval = DefaultDecayInterval
	}
	elapsed := now.Sub(rec.UpdatedAt)
	if elapsed < interval {
		return rec
	}
	periods := int(elapsed / interval)

	next := rec
	for i := 0; i < periods; i++ {
		next.Hunger = clampStat(next.Hunger - DecayHungerPerPeriod)
		next.Happiness = clampStat(next.Happiness - DecayHappinessPerPeriod)
		loss := 0
		if next.Hunger < LowStatThreshold {
			loss++
		}
		if next.Happiness < LowStatThreshold {
			loss++
		}
		next.Health = clampStat(next.Health - loss)
	}
	next.UpdatedAt = rec.UpdatedAt.Add(time.Duration(periods) * interval)
	return next
}

// ApplyCare mutates the record with one care action and handles level-up.
func ApplyCare(rec Record, action CareAction, now time.Time) Record {
	next := rec
	switch action {
	case CareFeed:
		next.Hunger = clampStat(next.Hunger + CareFeedHungerGain)
		next.Experience += CareFeedExpGain
		next.LastFed = now
	case CarePlay:
		next.Happiness = clampStat(next.Happiness + CarePlayHappinessGain)
		next.Hunger = clampStat(next.Hunger - CarePlayHungerCost)
		next.Experience += CarePlayExpGain
		next.LastPlayed = now
	case CareHeal:
		next.Health = clampStat(next.Health + CareHealHealthGain)
		next.Happiness = clampStat(next.Happiness - CareHealHappinessCost)
	}

	if next.Level >= 1 && next.Experience >= ExpToLevelUp*next.Level {
		next.Level++
		next.Experience = 0
	}
	return next
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
