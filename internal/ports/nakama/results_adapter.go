package nakama

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"

	"cardroom/internal/ports"
)

const resultsCollection = "match_results"

// NakamaResultsAdapter implements ports.ResultsPort on Nakama's storage
// engine.
type NakamaResultsAdapter struct {
	nk runtime.NakamaModule
}

func NewNakamaResultsAdapter(nk runtime.NakamaModule) *NakamaResultsAdapter {
	return &NakamaResultsAdapter{nk: nk}
}

func (a *NakamaResultsAdapter) SaveResult(ctx context.Context, rec ports.ResultRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	_, err = a.nk.StorageWrite(ctx, []*runtime.StorageWrite{{
		Collection:      resultsCollection,
		Key:             uuid.NewString(),
		Value:           string(value),
		PermissionRead:  2,
		PermissionWrite: 0,
	}})
	return err
}

var _ ports.ResultsPort = (*NakamaResultsAdapter)(nil)
