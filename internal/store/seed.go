package store

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
)

// The Oracle is the system author of every narrative post and the first
// inhabitant of a fresh world.
const (
	OracleID        = "user_oracle_ai"
	OracleHandle    = "oracle_ai"
	OracleName      = "The Oracle"
	OracleAvatarURL = "https://i.pravatar.cc/150?u=oracle"
)

// SeedInitialData inserts the system-authored starter records. Each
// collection is seeded only when empty, so calling this on every start is
// safe and a second call changes nothing.
func (s *Store) SeedInitialData() error {
	return s.update(func(a *Aggregate) error {
		seeded := false

		if len(a.Users) == 0 {
			a.Users = append(a.Users, genesis.User{
				ID:             OracleID,
				Name:           OracleName,
				Handle:         OracleHandle,
				Dream:          "To observe the patterns of fate.",
				Path:           genesis.PathSeer,
				AvatarURL:      OracleAvatarURL,
				Bio:            "I see the threads of fate that weave through the Genesis. My decrees are but echoes of what is to come.",
				JoinedDate:     "The Beginning",
				Following:      []string{},
				LinkedAccounts: []genesis.LinkedAccount{},
				NexusFeed:      []genesis.NexusFeedItem{},
				Gallery:        []genesis.GeneratedConcept{},
			})
			seeded = true
		}

		if len(a.Posts) == 0 {
			a.Posts = append(a.Posts, genesis.Post{
				ID:              "post_oracle_1",
				AuthorHandle:    OracleHandle,
				AuthorName:      OracleName,
				AuthorAvatarURL: OracleAvatarURL,
				Content:         "The Genesis is upon us. I have observed the threads of fate. A surge of 'Architect' path users are reshaping the starter zones. Their creativity is... potent. #AI #GenesisInsights",
				Timestamp:       time.Now().Add(-48 * time.Hour),
				Likes:           1999,
				CommentsCount:   350,
				SharesCount:     188,
				Type:            genesis.PostUser,
			})
			seeded = true
		}

		if len(a.ChatMessages) == 0 {
			a.ChatMessages = append(a.ChatMessages, genesis.GlobalChatMessage{
				ID:              "chat_" + uuid.NewString(),
				AuthorHandle:    OracleHandle,
				AuthorName:      OracleName,
				AuthorAvatarURL: OracleAvatarURL,
				Text:            "The Nexus is open. Speak, and be heard across the planes.",
				Timestamp:       time.Now(),
			})
			seeded = true
		}

		if seeded {
			slog.Info("seeded initial world data",
				"users", len(a.Users),
				"posts", len(a.Posts),
				"chat_messages", len(a.ChatMessages),
			)
		}
		return nil
	})
}
