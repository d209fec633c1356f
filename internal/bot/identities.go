package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// botUserIDPrefix marks seats occupied by bots.
const botUserIDPrefix = "bot:"

// Identity is one entry of the bot roster file.
type Identity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy", "medium", "hard"
	AvatarIndex int    `json:"avatar_index"`
}

var (
	identities  []Identity
	identityMap map[string]Identity
	loadOnce    sync.Once
	loadErr     error
)

// defaultIdentities backs seats when no roster file is configured.
var defaultIdentities = []Identity{
	{UserID: botUserIDPrefix + "ruth", Username: "ruth", DisplayName: "Ruth", Difficulty: "medium"},
	{UserID: botUserIDPrefix + "santiago", Username: "santiago", DisplayName: "Santiago", Difficulty: "medium"},
	{UserID: botUserIDPrefix + "priya", Username: "priya", DisplayName: "Priya", Difficulty: "hard"},
	{UserID: botUserIDPrefix + "otto", Username: "otto", DisplayName: "Otto", Difficulty: "easy"},
	{UserID: botUserIDPrefix + "mei", Username: "mei", DisplayName: "Mei", Difficulty: "hard"},
	{UserID: botUserIDPrefix + "lars", Username: "lars", DisplayName: "Lars", Difficulty: "easy"},
	{UserID: botUserIDPrefix + "amara", Username: "amara", DisplayName: "Amara", Difficulty: "medium"},
	{UserID: botUserIDPrefix + "viktor", Username: "viktor", DisplayName: "Viktor", Difficulty: "easy"},
}

// LoadIdentities loads the bot roster from the given path once. A missing
// file falls back to the built-in roster.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			identities = defaultIdentities
			buildIdentityMap()
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var loaded []Identity
		if err := json.Unmarshal(data, &loaded); err != nil {
			identities = defaultIdentities
			buildIdentityMap()
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}

		identities = loaded
		buildIdentityMap()
	})
	return loadErr
}

func buildIdentityMap() {
	identityMap = make(map[string]Identity, len(identities))
	for _, id := range identities {
		if id.UserID != "" {
			identityMap[id.UserID] = id
		}
	}
}

func ensureLoaded() {
	loadOnce.Do(func() {
		identities = defaultIdentities
		buildIdentityMap()
	})
}

// IsBot reports whether the user id belongs to a bot seat.
func IsBot(userID string) bool {
	return strings.HasPrefix(userID, botUserIDPrefix)
}

// GetIdentity returns the roster entry for a seat index, wrapping around
// when more seats than identities exist.
func GetIdentity(seatIndex int) Identity {
	ensureLoaded()
	return identities[seatIndex%len(identities)]
}

// AvailableIdentity returns the first roster entry whose user id is not
// already seated. Every seat at a table must carry a distinct user id, so
// an exhausted roster reports ok false instead of reusing an entry.
func AvailableIdentity(seated []string) (Identity, bool) {
	ensureLoaded()
	for _, id := range identities {
		taken := false
		for _, s := range seated {
			if s == id.UserID {
				taken = true
				break
			}
		}
		if !taken {
			return id, true
		}
	}
	return Identity{}, false
}

// LookupIdentity resolves a bot user id to its roster entry.
func LookupIdentity(userID string) (Identity, bool) {
	ensureLoaded()
	id, ok := identityMap[userID]
	return id, ok
}
