package arena

import "math"

const (
	winChancePerLevel = 0.05
	winChanceFloor    = 0.05
	winChanceCeil     = 0.95

	decisiveLevelGap = 10
)

// Resolve converts the two combatant levels plus randomness into the final
// battle outcome. Each level of advantage is worth 5% win probability,
// clamped to [5%,95%] so upsets stay possible at any gap. The loser always
// ends at exactly 0 health; the winner's remaining health is drawn from one
// of three bands so that bigger mismatches read as more decisive victories.
func Resolve(playerLevel, opponentLevel int, src Source) Outcome {
	levelDiff := playerLevel - opponentLevel

	winChance := 0.5 + winChancePerLevel*float64(levelDiff)
	if winChance < winChanceFloor {
		winChance = winChanceFloor
	}
	if winChance > winChanceCeil {
		winChance = winChanceCeil
	}

	playerWins := src.Float64() < winChance

	out := Outcome{
		PlayerWins: playerWins,
		WinChance:  int(math.Round(winChance * 100)),
	}
	if playerWins {
		out.OpponentHealth = 0
		out.PlayerHealth = winnerHealth(levelDiff, src)
	} else {
		out.PlayerHealth = 0
		out.OpponentHealth = winnerHealth(-levelDiff, src)
	}
	return out
}

// winnerHealth draws the winner's remaining health. advantage is the level
// difference seen from the winner's side.
func winnerHealth(advantage int, src Source) int {
	var health float64
	switch {
	case advantage > decisiveLevelGap:
		health = 70 + src.Float64()*30
	case advantage > 0:
		health = 40 + src.Float64()*40
	default:
		health = 10 + src.Float64()*30
	}
	return int(math.Round(health))
}
