package arena

// StartingHealth is the health both sides show before the first step lands.
const StartingHealth = 100

var winFlavor = []LogStep{
	{Message: "Battle Start! ⚔️"},
	{Message: "Your pet attacks!", OpponentDamage: 20},
	{Message: "Opponent strikes back!", PlayerDamage: 15},
	{Message: "Critical hit from your pet!", OpponentDamage: 35},
	{Message: "Opponent uses special move!", PlayerDamage: 20},
	{Message: "Your pet's ultimate attack!", OpponentDamage: 45},
}

var loseFlavor = []LogStep{
	{Message: "Battle Start! ⚔️"},
	{Message: "Your pet attacks!", OpponentDamage: 15},
	{Message: "Opponent counter-attacks!", PlayerDamage: 25},
	{Message: "You try a special move!", OpponentDamage: 10},
	{Message: "Opponent's critical hit!", PlayerDamage: 35},
	{Message: "Opponent is too strong!", PlayerDamage: 20},
}

const (
	winClosingMessage  = "Level advantage shows!"
	loseClosingMessage = "Level difference is too much!"
)

// Script expands an outcome into the seven narrated steps of its playback.
// The first six are fixed flavor; the seventh carries whatever damage is
// still needed for the running totals to reconcile exactly with the
// outcome's health values. The same outcome always yields the same script.
func Script(out Outcome) []LogStep {
	flavor := winFlavor
	closing := winClosingMessage
	if !out.PlayerWins {
		flavor = loseFlavor
		closing = loseClosingMessage
	}

	steps := make([]LogStep, 0, len(flavor)+1)
	playerDealt := 0
	opponentDealt := 0
	for _, s := range flavor {
		steps = append(steps, s)
		playerDealt += s.PlayerDamage
		opponentDealt += s.OpponentDamage
	}

	steps = append(steps, LogStep{
		Message:        closing,
		PlayerDamage:   (StartingHealth - out.PlayerHealth) - playerDealt,
		OpponentDamage: (StartingHealth - out.OpponentHealth) - opponentDealt,
	})
	return steps
}

// Playback applies steps in order against running health values, halting
// early as soon as either side is knocked out. Played reports how many steps
// actually landed. Whatever the halt point, the returned health values are
// force-set to the outcome's authoritative numbers so the displayed end state
// always matches the engine's result.
func Playback(out Outcome, steps []LogStep) (playerHealth, opponentHealth, played int) {
	playerHealth = StartingHealth
	opponentHealth = StartingHealth
	for _, s := range steps {
		playerHealth -= s.PlayerDamage
		opponentHealth -= s.OpponentDamage
		played++
		if playerHealth <= 0 || opponentHealth <= 0 {
			break
		}
	}
	playerHealth = out.PlayerHealth
	opponentHealth = out.OpponentHealth
	return playerHealth, opponentHealth, played
}
