package bot

import "fmt"

// BotLevel selects the strategy tier for a bot.
type BotLevel int

const (
	BotLevelStandard BotLevel = iota
	BotLevelSmart
)

// levelForDifficulty maps the identity roster's difficulty labels onto
// strategy tiers.
func levelForDifficulty(difficulty string) BotLevel {
	switch difficulty {
	case "hard":
		return BotLevelSmart
	default:
		return BotLevelStandard
	}
}

// NewPresidentBrain creates a president strategy for the given level.
func NewPresidentBrain(level BotLevel) (PresidentBrain, error) {
	switch level {
	case BotLevelStandard:
		return &StandardPresidentBot{}, nil
	case BotLevelSmart:
		return &SmartPresidentBot{}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent for a roster bot user id, picking strategies
// from the identity's difficulty.
func NewAgent(userID string) (*Agent, error) {
	identity, ok := LookupIdentity(userID)
	if !ok {
		return nil, fmt.Errorf("unknown bot user id: %s", userID)
	}

	level := levelForDifficulty(identity.Difficulty)
	presidentBrain, err := NewPresidentBrain(level)
	if err != nil {
		return nil, err
	}

	return &Agent{
		ID:        identity.UserID,
		Name:      identity.DisplayName,
		President: presidentBrain,
		Euchre:    &StandardEuchreBot{},
		tracker:   NewTracker(),
	}, nil
}
