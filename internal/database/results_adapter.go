package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"cardroom/internal/ports"
)

// SaveResult implements ports.ResultsPort on the sqlite store.
func (s *Service) SaveResult(ctx context.Context, rec ports.ResultRecord) error {
	players, err := json.Marshal(rec.Players)
	if err != nil {
		return err
	}

	return s.Insert(GameResult{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Game:       rec.Game,
		Players:    string(players),
		WinnerSeat: rec.WinnerSeat,
		Team1Score: rec.TeamScores[0],
		Team2Score: rec.TeamScores[1],
		Rounds:     rec.Rounds,
	})
}

var _ ports.ResultsPort = (*Service)(nil)
