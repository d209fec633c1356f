package nakama

import "cardroom/internal/bot"

// isBotUserID reports whether the given user id represents a bot seat.
func isBotUserID(userID string) bool {
	return bot.IsBot(userID)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userID := seats[seatIndex]
	return userID != "" && !isBotUserID(userID)
}

// findFirstHumanSeat returns the first seat index with a human occupant or
// -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userID := range seats {
		if userID != "" && !isBotUserID(userID) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans left.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

// seatOf returns the seat index of the given user id or -1.
func seatOf(seats []string, userID string) int {
	for i, id := range seats {
		if id == userID {
			return i
		}
	}
	return -1
}

func openSeatCount(seats []string) int {
	count := 0
	for _, s := range seats {
		if s == "" {
			count++
		}
	}
	return count
}

func humanPlayerCount(seats []string) int {
	count := 0
	for _, s := range seats {
		if s != "" && !isBotUserID(s) {
			count++
		}
	}
	return count
}
