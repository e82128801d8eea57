package engine

import (
	"context"
	"reflect"
	"testing"

	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
	"github.com/MKWorldWide/GameDinGenesis/internal/nexus"
)

func TestMergeUpdatesLeavesUnmentionedFactionsUntouched(t *testing.T) {
	factions := fiveFactions()
	untouched := factions[2]

	merged := MergeUpdates(factions, []nexus.FactionUpdate{
		{ID: factions[0].ID, Power: intPtr(75)},
	})

	if len(merged) != len(factions) {
		t.Fatalf("merged length = %d, want %d", len(merged), len(factions))
	}
	if merged[0].Power != 75 {
		t.Fatalf("updated power = %d, want 75", merged[0].Power)
	}
	if !reflect.DeepEqual(merged[2], untouched) {
		t.Fatalf("unmentioned faction changed: %+v vs %+v", merged[2], untouched)
	}
	// The input snapshot is never mutated.
	if factions[0].Power != 50 {
		t.Fatalf("input snapshot mutated: power = %d", factions[0].Power)
	}
}

func TestMergeUpdatesPartialFields(t *testing.T) {
	factions := fiveFactions()
	factions[0].Status = genesis.StatusExpanding

	// Power-only update: status survives, but the absent relatedFactionId
	// clears any stale reference.
	factions[1].Status = genesis.StatusAllied
	factions[1].RelatedFactionID = factions[0].ID

	merged := MergeUpdates(factions, []nexus.FactionUpdate{
		{ID: factions[0].ID, Power: intPtr(60)},
		{ID: factions[1].ID, Power: intPtr(40)},
	})

	if merged[0].Status != genesis.StatusExpanding {
		t.Fatalf("status overwritten by power-only update: %q", merged[0].Status)
	}
	if merged[1].RelatedFactionID != "" {
		t.Fatalf("omitted relatedFactionId did not clear reference: %q", merged[1].RelatedFactionID)
	}
}

func TestMergeUpdatesDropsUnknownIDs(t *testing.T) {
	factions := fiveFactions()

	merged := MergeUpdates(factions, []nexus.FactionUpdate{
		{ID: "faction_Never_Was", Power: intPtr(99)},
	})

	if !reflect.DeepEqual(merged, factions) {
		t.Fatalf("unknown-id update changed the faction list")
	}
}

func TestMergeUpdatesRejectsInvalidStatus(t *testing.T) {
	factions := fiveFactions()

	merged := MergeUpdates(factions, []nexus.FactionUpdate{
		{ID: factions[0].ID, Status: genesis.FactionStatus("ascended")},
	})

	if merged[0].Status != genesis.StatusNeutral {
		t.Fatalf("invalid status applied: %q", merged[0].Status)
	}
}

func TestNormalizeSymmetryPropagatesWar(t *testing.T) {
	factions := fiveFactions()
	factions[0].Status = genesis.StatusAtWar
	factions[0].RelatedFactionID = factions[1].ID

	NormalizeSymmetry(factions)

	if factions[1].Status != genesis.StatusAtWar {
		t.Fatalf("counterpart status = %q, want %q", factions[1].Status, genesis.StatusAtWar)
	}
	if factions[1].RelatedFactionID != factions[0].ID {
		t.Fatalf("counterpart back-reference = %q, want %q", factions[1].RelatedFactionID, factions[0].ID)
	}
}

func TestNormalizeSymmetryClearsNonRelationalReference(t *testing.T) {
	factions := fiveFactions()
	factions[0].Status = genesis.StatusDefensive
	factions[0].RelatedFactionID = factions[1].ID

	NormalizeSymmetry(factions)

	if factions[0].RelatedFactionID != "" {
		t.Fatalf("non-relational status kept reference %q", factions[0].RelatedFactionID)
	}
}

func TestNormalizeSymmetryRevertsDanglingRelational(t *testing.T) {
	factions := fiveFactions()
	factions[0].Status = genesis.StatusAllied
	factions[0].RelatedFactionID = "faction_Never_Was"
	factions[1].Status = genesis.StatusAtWar
	factions[1].RelatedFactionID = factions[1].ID // self-reference

	NormalizeSymmetry(factions)

	for _, i := range []int{0, 1} {
		if factions[i].Status != genesis.StatusNeutral {
			t.Errorf("faction %d status = %q, want neutral", i, factions[i].Status)
		}
		if factions[i].RelatedFactionID != "" {
			t.Errorf("faction %d reference = %q, want cleared", i, factions[i].RelatedFactionID)
		}
	}
}

func TestDynamicsStepWritesNothingOnGatewayFailure(t *testing.T) {
	st := newTestStore(t)
	factions := fiveFactions()
	if err := st.SaveFactions(factions); err != nil {
		t.Fatalf("save factions: %v", err)
	}

	dyn := NewFactionDynamics(st, &fakeGateway{}) // dynamics unset — fails
	if err := dyn.Step(context.Background(), factions); err == nil {
		t.Fatal("expected error from failing gateway")
	}

	if !reflect.DeepEqual(st.Factions(), factions) {
		t.Fatal("failed step modified the faction list")
	}
	if got := len(st.Posts()); got != 0 {
		t.Fatalf("failed step published %d posts", got)
	}
}

func TestDynamicsStepPublishesEventPost(t *testing.T) {
	st := newTestStore(t)
	factions := fiveFactions()
	if err := st.SaveFactions(factions); err != nil {
		t.Fatalf("save factions: %v", err)
	}

	gw := &fakeGateway{
		dynamics: func(ctx context.Context, in []genesis.Faction) (*nexus.DynamicsResult, error) {
			return &nexus.DynamicsResult{
				Updates: []nexus.FactionUpdate{
					{ID: in[0].ID, Status: genesis.StatusAtWar, RelatedFactionID: in[1].ID, Power: intPtr(65)},
					{ID: in[1].ID, Status: genesis.StatusAtWar, RelatedFactionID: in[0].ID, Power: intPtr(35)},
				},
				PostContent: "War erupts between the Silver Hand and the Voidborn!",
			}, nil
		},
	}

	dyn := NewFactionDynamics(st, gw)
	if err := dyn.Step(context.Background(), factions); err != nil {
		t.Fatalf("step: %v", err)
	}

	saved := st.Factions()
	if saved[0].Status != genesis.StatusAtWar || saved[1].Status != genesis.StatusAtWar {
		t.Fatalf("war not recorded: %q / %q", saved[0].Status, saved[1].Status)
	}
	if saved[0].RelatedFactionID != saved[1].ID || saved[1].RelatedFactionID != saved[0].ID {
		t.Fatal("war pairing not symmetric")
	}

	posts := st.Posts()
	if len(posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(posts))
	}
	if posts[0].Type != genesis.PostEvent {
		t.Fatalf("post type = %q, want %q", posts[0].Type, genesis.PostEvent)
	}
	if posts[0].AuthorHandle != "oracle_ai" {
		t.Fatalf("post author = %q, want the Oracle", posts[0].AuthorHandle)
	}
}
