// World quests — probabilistic cooperative objectives issued by factions,
// contribution tracking, and the completion transition.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MKWorldWide/GameDinGenesis/internal/entropy"
	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
	"github.com/MKWorldWide/GameDinGenesis/internal/nexus"
	"github.com/MKWorldWide/GameDinGenesis/internal/store"
)

// DefaultQuestChance is the per-tick probability of spawning a new quest.
const DefaultQuestChance = 0.3

// WorldQuests spawns and tracks world quests.
type WorldQuests struct {
	store   *store.Store
	gw      nexus.Gateway
	entropy entropy.Source
	chance  float64
}

// NewWorldQuests creates the quest engine. A chance outside (0, 1] falls
// back to the default.
func NewWorldQuests(st *store.Store, gw nexus.Gateway, src entropy.Source, chance float64) *WorldQuests {
	if chance <= 0 || chance > 1 {
		chance = DefaultQuestChance
	}
	return &WorldQuests{store: st, gw: gw, entropy: src, chance: chance}
}

// MaybeSpawn rolls the spawn chance and, on a hit, generates one quest
// against the faction snapshot. Returns nil when the roll misses.
func (e *WorldQuests) MaybeSpawn(ctx context.Context, snapshot []genesis.Faction) (*genesis.WorldQuest, error) {
	if e.entropy.Float() >= e.chance {
		return nil, nil
	}
	return e.Spawn(ctx, snapshot)
}

// Spawn generates and persists one new quest. The generator supplies the
// draft; identity and lifecycle fields are assigned here, never trusted
// from the payload. On any failure no quest and no post are written.
func (e *WorldQuests) Spawn(ctx context.Context, snapshot []genesis.Faction) (*genesis.WorldQuest, error) {
	draft, err := e.gw.GenerateWorldQuest(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("generate world quest: %w", err)
	}

	if !factionExists(snapshot, draft.IssuerFactionID) {
		return nil, fmt.Errorf("quest issuer %q is not a known faction: %w",
			draft.IssuerFactionID, nexus.ErrGenerationFailed)
	}

	quest := genesis.WorldQuest{
		ID:            "quest_" + uuid.NewString(),
		Title:         draft.Title,
		Description:   draft.Description,
		IssuerFaction: draft.IssuerFactionID,
		Goal:          draft.Goal,
		Contributions: []genesis.Contribution{},
		Status:        genesis.QuestActive,
		CreatedAt:     time.Now(),
	}

	if err := e.store.AddWorldQuest(quest); err != nil {
		return nil, fmt.Errorf("save world quest: %w", err)
	}
	if err := e.store.AddPost(oraclePost(quest.Description, genesis.PostQuest, quest.ID)); err != nil {
		return nil, fmt.Errorf("publish quest post: %w", err)
	}

	slog.Info("world quest published",
		"quest", quest.ID,
		"title", quest.Title,
		"issuer", quest.IssuerFaction,
		"target", quest.Goal.TargetCount,
	)
	return &quest, nil
}

// Contribute records one concept submission toward a quest. Contributions
// against a quest that is not active are silently ignored; reaching the
// goal target flips the quest to completed.
func (e *WorldQuests) Contribute(questID, conceptID, userID string) (bool, error) {
	quest := e.store.QuestByID(questID)
	if quest == nil {
		return false, fmt.Errorf("quest %q not found", questID)
	}

	if !quest.AddContribution(conceptID, userID) {
		slog.Debug("contribution ignored, quest not active",
			"quest", questID, "status", quest.Status)
		return false, nil
	}

	if err := e.store.UpdateWorldQuest(*quest); err != nil {
		return false, fmt.Errorf("update quest %q: %w", questID, err)
	}

	if quest.Status == genesis.QuestCompleted {
		slog.Info("world quest completed",
			"quest", questID,
			"contributions", len(quest.Contributions),
		)
	}
	return true, nil
}

func factionExists(factions []genesis.Faction, id string) bool {
	for _, f := range factions {
		if f.ID == id {
			return true
		}
	}
	return false
}
