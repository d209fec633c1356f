// Package ports declares the outbound interfaces the application depends
// on. Transport-specific adapters live in subpackages.
package ports

import "context"

// ResultRecord is a finished match ready for persistence.
type ResultRecord struct {
	Game       string
	Players    []string
	WinnerSeat int
	TeamScores [2]int
	Rounds     int
}

// ResultsPort persists finished match results.
type ResultsPort interface {
	SaveResult(ctx context.Context, rec ResultRecord) error
}
