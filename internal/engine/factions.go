// Faction dynamics — one coherent political event per step, merged into
// the full faction graph with the symmetry invariant re-enforced.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
	"github.com/MKWorldWide/GameDinGenesis/internal/nexus"
	"github.com/MKWorldWide/GameDinGenesis/internal/store"
)

// FactionDynamics evolves the faction graph by exactly one event per step
// and publishes the Oracle's narrative of it.
type FactionDynamics struct {
	store *store.Store
	gw    nexus.Gateway
}

// NewFactionDynamics creates the dynamics engine.
func NewFactionDynamics(st *store.Store, gw nexus.Gateway) *FactionDynamics {
	return &FactionDynamics{store: st, gw: gw}
}

// Step runs one dynamics update against the given faction snapshot.
// On gateway failure nothing is written — the step is skipped whole.
func (e *FactionDynamics) Step(ctx context.Context, snapshot []genesis.Faction) error {
	result, err := e.gw.AdvanceFactionDynamics(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("advance faction dynamics: %w", err)
	}

	merged := MergeUpdates(snapshot, result.Updates)
	NormalizeSymmetry(merged)

	if err := e.store.SaveFactions(merged); err != nil {
		return fmt.Errorf("save factions: %w", err)
	}
	if err := e.store.AddPost(oraclePost(result.PostContent, genesis.PostEvent, "")); err != nil {
		return fmt.Errorf("publish event post: %w", err)
	}

	slog.Info("faction event published", "updates", len(result.Updates))
	return nil
}

// MergeUpdates applies the update subset to a copy of the full faction
// list, by id. Factions not named by an update come through untouched;
// updates naming unknown ids are dropped. A naive full replace would
// silently delete every faction the generator didn't mention — merging is
// the whole point.
func MergeUpdates(factions []genesis.Faction, updates []nexus.FactionUpdate) []genesis.Faction {
	merged := make([]genesis.Faction, len(factions))
	copy(merged, factions)

	byID := make(map[string]*genesis.Faction, len(merged))
	for i := range merged {
		byID[merged[i].ID] = &merged[i]
	}

	for _, u := range updates {
		f, ok := byID[u.ID]
		if !ok {
			slog.Warn("dynamics update references unknown faction", "id", u.ID)
			continue
		}
		if u.Power != nil {
			f.Power = *u.Power
		}
		if u.Status != "" && genesis.ValidFactionStatus(u.Status) {
			f.Status = u.Status
		}
		// The reference always follows the update: an omitted
		// relatedFactionId clears a stale pairing.
		f.RelatedFactionID = u.RelatedFactionID
	}

	return merged
}

// NormalizeSymmetry enforces the relationship invariants in place:
// a relational status (at war, allied) propagates to the counterpart in
// both directions, a non-relational status carries no back-reference, and
// a relational status without a resolvable counterpart reverts to neutral.
func NormalizeSymmetry(factions []genesis.Faction) {
	byID := make(map[string]*genesis.Faction, len(factions))
	for i := range factions {
		byID[factions[i].ID] = &factions[i]
	}

	for i := range factions {
		f := &factions[i]
		if !f.Status.Relational() {
			f.RelatedFactionID = ""
			continue
		}

		other, ok := byID[f.RelatedFactionID]
		if !ok || other == f {
			slog.Warn("relational faction has no counterpart, reverting to neutral",
				"faction", f.ID, "related", f.RelatedFactionID)
			f.Status = genesis.StatusNeutral
			f.RelatedFactionID = ""
			continue
		}

		other.Status = f.Status
		other.RelatedFactionID = f.ID
	}
}
