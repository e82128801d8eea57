package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
	"github.com/MKWorldWide/GameDinGenesis/internal/nexus"
	"github.com/MKWorldWide/GameDinGenesis/internal/persistence"
	"github.com/MKWorldWide/GameDinGenesis/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := persistence.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return store.New(db)
}

// fakeGateway scripts each intent with a function field. Unset intents fail.
type fakeGateway struct {
	initialFactions func(ctx context.Context) ([]genesis.Faction, error)
	dynamics        func(ctx context.Context, factions []genesis.Faction) (*nexus.DynamicsResult, error)
	quest           func(ctx context.Context, factions []genesis.Faction) (*nexus.QuestDraft, error)
	activity        func(ctx context.Context, user genesis.User) (*nexus.ActivityResult, error)
}

func (f *fakeGateway) GenerateInitialFactions(ctx context.Context) ([]genesis.Faction, error) {
	if f.initialFactions == nil {
		return nil, nexus.ErrGenerationFailed
	}
	return f.initialFactions(ctx)
}

func (f *fakeGateway) AdvanceFactionDynamics(ctx context.Context, factions []genesis.Faction) (*nexus.DynamicsResult, error) {
	if f.dynamics == nil {
		return nil, nexus.ErrGenerationFailed
	}
	return f.dynamics(ctx, factions)
}

func (f *fakeGateway) GenerateWorldQuest(ctx context.Context, factions []genesis.Faction) (*nexus.QuestDraft, error) {
	if f.quest == nil {
		return nil, nexus.ErrGenerationFailed
	}
	return f.quest(ctx, factions)
}

func (f *fakeGateway) GenerateNexusActivity(ctx context.Context, user genesis.User) (*nexus.ActivityResult, error) {
	if f.activity == nil {
		return nil, nexus.ErrGenerationFailed
	}
	return f.activity(ctx, user)
}

func fiveFactions() []genesis.Faction {
	names := []string{"Silver Hand", "Voidborn", "Iron Pact", "Dream Weavers", "Last Dawn"}
	paths := []genesis.Path{genesis.PathWarrior, genesis.PathSeer, genesis.PathSovereign, genesis.PathArchitect, genesis.PathSage}
	out := make([]genesis.Faction, len(names))
	for i, name := range names {
		out[i] = genesis.Faction{
			ID:             genesis.FactionIDFromName(name),
			Name:           name,
			Description:    name + " of the Genesis",
			PathAllegiance: paths[i],
			Power:          50,
			Status:         genesis.StatusNeutral,
		}
	}
	return out
}

func intPtr(v int) *int { return &v }
