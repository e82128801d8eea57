package social

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

type activityGateway struct {
	result *nexus.ActivityResult
	err    error
	calls  int
}

func (g *activityGateway) GenerateInitialFactions(ctx context.Context) ([]genesis.Faction, error) {
	return nil, nexus.ErrGenerationFailed
}

func (g *activityGateway) AdvanceFactionDynamics(ctx context.Context, factions []genesis.Faction) (*nexus.DynamicsResult, error) {
	return nil, nexus.ErrGenerationFailed
}

func (g *activityGateway) GenerateWorldQuest(ctx context.Context, factions []genesis.Faction) (*nexus.QuestDraft, error) {
	return nil, nexus.ErrGenerationFailed
}

func (g *activityGateway) GenerateNexusActivity(ctx context.Context, user genesis.User) (*nexus.ActivityResult, error) {
	g.calls++
	return g.result, g.err
}
