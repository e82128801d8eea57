package engine

import (
	"context"
	"testing"

	"github.com/MKWorldWide/GameDinGenesis/internal/entropy"
	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
	"github.com/MKWorldWide/GameDinGenesis/internal/nexus"
)

func questGateway(issuerID string) *fakeGateway {
	return &fakeGateway{
		quest: func(ctx context.Context, factions []genesis.Faction) (*nexus.QuestDraft, error) {
			return &nexus.QuestDraft{
				IssuerFactionID: issuerID,
				Title:           "Forge the Sigils",
				Description:     "The faction calls for five sigils of power. #WorldQuest",
				Goal:            genesis.QuestGoal{Type: genesis.GoalTypeSubmitConcepts, TargetCount: 5},
			}, nil
		},
	}
}

func TestMaybeSpawnRespectsChance(t *testing.T) {
	st := newTestStore(t)
	factions := fiveFactions()

	// Roll of 0.99 against chance 0.3 misses without touching the gateway.
	eng := NewWorldQuests(st, &fakeGateway{}, entropy.Fixed(0.99), 0.3)
	quest, err := eng.MaybeSpawn(context.Background(), factions)
	if err != nil {
		t.Fatalf("missed roll errored: %v", err)
	}
	if quest != nil {
		t.Fatal("missed roll spawned a quest")
	}

	// Roll of 0.0 always hits.
	eng = NewWorldQuests(st, questGateway(factions[0].ID), entropy.Fixed(0.0), 0.3)
	quest, err = eng.MaybeSpawn(context.Background(), factions)
	if err != nil {
		t.Fatalf("hit roll: %v", err)
	}
	if quest == nil {
		t.Fatal("hit roll spawned nothing")
	}
}

func TestSpawnAssignsIdentityAndPublishes(t *testing.T) {
	st := newTestStore(t)
	factions := fiveFactions()

	eng := NewWorldQuests(st, questGateway(factions[1].ID), entropy.Fixed(0.0), 0.3)
	quest, err := eng.Spawn(context.Background(), factions)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	if quest.ID == "" || quest.ID == "quest_" {
		t.Fatalf("quest id not assigned: %q", quest.ID)
	}
	if quest.Status != genesis.QuestActive {
		t.Fatalf("status = %q, want active", quest.Status)
	}
	if quest.IssuerFaction != factions[1].ID {
		t.Fatalf("issuer = %q", quest.IssuerFaction)
	}
	if quest.Contributions == nil || len(quest.Contributions) != 0 {
		t.Fatalf("contributions = %+v, want empty", quest.Contributions)
	}

	if got := st.QuestByID(quest.ID); got == nil {
		t.Fatal("spawned quest not persisted")
	}
	posts := st.Posts()
	if len(posts) != 1 || posts[0].Type != genesis.PostQuest {
		t.Fatalf("quest post missing: %+v", posts)
	}
	if posts[0].QuestID != quest.ID {
		t.Fatalf("post quest ref = %q, want %q", posts[0].QuestID, quest.ID)
	}
}

func TestSpawnRejectsUnknownIssuer(t *testing.T) {
	st := newTestStore(t)
	factions := fiveFactions()

	eng := NewWorldQuests(st, questGateway("faction_Never_Was"), entropy.Fixed(0.0), 0.3)
	if _, err := eng.Spawn(context.Background(), factions); err == nil {
		t.Fatal("expected error for unknown issuer faction")
	}

	if got := len(st.WorldQuests()); got != 0 {
		t.Fatalf("rejected spawn persisted %d quests", got)
	}
	if got := len(st.Posts()); got != 0 {
		t.Fatalf("rejected spawn published %d posts", got)
	}
}

func TestContributeCompletesQuest(t *testing.T) {
	st := newTestStore(t)
	factions := fiveFactions()

	eng := NewWorldQuests(st, questGateway(factions[0].ID), entropy.Fixed(0.0), 0.3)
	quest, err := eng.Spawn(context.Background(), factions)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	for i := 0; i < 5; i++ {
		accepted, err := eng.Contribute(quest.ID, "concept_x", "user_x")
		if err != nil {
			t.Fatalf("contribution %d: %v", i, err)
		}
		if !accepted {
			t.Fatalf("contribution %d rejected", i)
		}
	}

	got := st.QuestByID(quest.ID)
	if got.Status != genesis.QuestCompleted {
		t.Fatalf("status after 5 contributions = %q, want completed", got.Status)
	}

	// A sixth submission is ignored, not an error.
	accepted, err := eng.Contribute(quest.ID, "concept_late", "user_late")
	if err != nil {
		t.Fatalf("late contribution: %v", err)
	}
	if accepted {
		t.Fatal("completed quest accepted a contribution")
	}
	if got := len(st.QuestByID(quest.ID).Contributions); got != 5 {
		t.Fatalf("contributions = %d, want 5", got)
	}
}

func TestContributeUnknownQuest(t *testing.T) {
	st := newTestStore(t)
	eng := NewWorldQuests(st, &fakeGateway{}, entropy.Fixed(0.0), 0.3)

	if _, err := eng.Contribute("quest_ghost", "concept_x", "user_x"); err == nil {
		t.Fatal("expected error for unknown quest")
	}
}

func TestNewWorldQuestsClampsChance(t *testing.T) {
	st := newTestStore(t)
	for _, chance := range []float64{-1, 0, 1.5} {
		eng := NewWorldQuests(st, &fakeGateway{}, entropy.Fixed(0.0), chance)
		if eng.chance != DefaultQuestChance {
			t.Errorf("chance %v not clamped: got %v", chance, eng.chance)
		}
	}
}
