package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
	"github.com/MKWorldWide/GameDinGenesis/internal/store"
)

// oraclePost builds a system-authored narrative post for the feed.
func oraclePost(content string, typ genesis.PostType, questID string) genesis.Post {
	return genesis.Post{
		ID:              "post_" + string(typ) + "_" + uuid.NewString(),
		AuthorHandle:    store.OracleHandle,
		AuthorName:      store.OracleName,
		AuthorAvatarURL: store.OracleAvatarURL,
		Content:         content,
		Timestamp:       time.Now(),
		Type:            typ,
		QuestID:         questID,
	}
}
