package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule wires RPCs and match handlers for the Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := RegisterRPCs(initializer); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNamePresident, NewPresidentMatch); err != nil {
		return err
	}
	if err := initializer.RegisterMatch(MatchNameEuchre, NewEuchreMatch); err != nil {
		return err
	}

	logger.Info("Card room Go module loaded.")
	return nil
}
