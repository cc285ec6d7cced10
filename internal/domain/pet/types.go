package pet

import "time"

type Species string

const (
	SpeciesBaseBull    Species = "base-bull"
	SpeciesEthDragon   Species = "eth-dragon"
	SpeciesMemeDog     Species = "meme-dog"
	SpeciesCryptoCat   Species = "crypto-cat"
	SpeciesDefiPhoenix Species = "defi-phoenix"
)

// Catalog lists every adoptable species.
var Catalog = []Species{
	SpeciesBaseBull,
	SpeciesEthDragon,
	SpeciesMemeDog,
	SpeciesCryptoCat,
	SpeciesDefiPhoenix,
}

type Stage string

const (
	StageEgg   Stage = "egg"
	StageBaby  Stage = "baby"
	StageTeen  Stage = "teen"
	StageAdult Stage = "adult"
	StageGhost Stage = "ghost"
)

type CareAction string

const (
	CareFeed CareAction = "feed"
	CarePlay CareAction = "play"
	CareHeal CareAction = "heal"
)

// Record is the full persisted state of one pet. Battle win/loss tallies are
// tracked on-chain, not here; the Wins/Losses fields only mirror the last
// values read from the contract for display.
type Record struct {
	Species    Species   `json:"species"`
	Name       string    `json:"name"`
	Level      int       `json:"level"`
	Experience int       `json:"experience"`
	Health     int       `json:"health"`
	Happiness  int       `json:"happiness"`
	Hunger     int       `json:"hunger"`
	LastFed    time.Time `json:"last_fed"`
	LastPlayed time.Time `json:"last_played"`
	Wins       int       `json:"wins"`
	Losses     int       `json:"losses"`
	BornTime   time.Time `json:"born_time"`
	Version    int64     `json:"version"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ValidSpecies(s Species) bool {
	for _, known := range Catalog {
		if s == known {
			return true
		}
	}
	return false
}

func ValidCareAction(a CareAction) bool {
	switch a {
	case CareFeed, CarePlay, CareHeal:
		return true
	default:
		return false
	}
}
