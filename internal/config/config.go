package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// PresidentRules mirrors the variant knobs of the president engine.
type PresidentRules struct {
	SuperTwos    bool `json:"super_twos"`
	WithJokers   bool `json:"with_jokers"`
	TargetRounds int  `json:"target_rounds"`
}

// EuchreRules mirrors the variant knobs of the euchre engine.
type EuchreRules struct {
	StickTheDealer bool `json:"stick_the_dealer"`
	TargetScore    int  `json:"target_score"`
}

type GameConfig struct {
	President PresidentRules `json:"president"`
	Euchre    EuchreRules    `json:"euchre"`

	TurnDurationSeconds int `json:"turn_duration_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before
	// seating a bot in a lobby that is still short of players.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	// BotDifficulty selects the strategy tier for auto-filled bots.
	BotDifficulty string `json:"bot_difficulty"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path. The
// first call wins; later calls return the first result.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := defaults()
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, falling back to
// defaults when no file was loaded.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return defaults()
	}
	return *cfg
}

func defaults() GameConfig {
	return GameConfig{
		President:               PresidentRules{SuperTwos: true, TargetRounds: 5},
		Euchre:                  EuchreRules{TargetScore: 10},
		TurnDurationSeconds:     30,
		BotAutoFillDelaySeconds: 10,
		BotDifficulty:           "normal",
	}
}
