package arena

import (
	"fmt"

	"basaegochi/internal/domain/pet"
)

const matchLevelSpread = 10

// GenerateOpponent samples a combatant within ±10 levels of the player for a
// fair match. The opponent's stage buckets are coarser than pet evolution
// stages on purpose: they only pick a sprite.
func GenerateOpponent(playerLevel int, src Source) Opponent {
	if playerLevel < 1 {
		playerLevel = 1
	}
	minLevel := playerLevel - matchLevelSpread
	if minLevel < 1 {
		minLevel = 1
	}
	maxLevel := playerLevel + matchLevelSpread
	level := minLevel + src.Intn(maxLevel-minLevel+1)

	return Opponent{
		Species: pet.Catalog[src.Intn(len(pet.Catalog))],
		Stage:   opponentStage(level),
		Level:   level,
		Address: randomAddress(src),
	}
}

func opponentStage(level int) pet.Stage {
	switch {
	case level > 20:
		return pet.StageAdult
	case level > 10:
		return pet.StageTeen
	default:
		return pet.StageBaby
	}
}

// randomAddress fabricates an ephemeral 0x-prefixed identifier for the
// opponent. It stands in for a wallet address and is never resolved on-chain.
func randomAddress(src Source) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 40)
	for i := range buf {
		buf[i] = hexDigits[src.Intn(len(hexDigits))]
	}
	return fmt.Sprintf("0x%s", buf)
}
