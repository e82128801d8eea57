// Scheduler — owns the simulation lifecycle: idempotent world seeding and
// the per-tick sequencing of the faction and quest engines.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/MKWorldWide/GameDinGenesis/internal/entropy"
	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
	"github.com/MKWorldWide/GameDinGenesis/internal/nexus"
	"github.com/MKWorldWide/GameDinGenesis/internal/store"
)

// State is the scheduler lifecycle state.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// Scheduler sequences the simulation. Ticks are serialized by an
// in-flight guard: if the cadence timer fires while a tick is still
// running, the new tick is skipped rather than racing the first one's
// read-modify-write of the faction list.
type Scheduler struct {
	store    *store.Store
	gw       nexus.Gateway
	dynamics *FactionDynamics
	quests   *WorldQuests

	state  atomic.Int32
	tickMu sync.Mutex
	ticks  atomic.Uint64
}

// NewScheduler wires the engines over a shared store and gateway.
func NewScheduler(st *store.Store, gw nexus.Gateway, src entropy.Source, questChance float64) *Scheduler {
	return &Scheduler{
		store:    st,
		gw:       gw,
		dynamics: NewFactionDynamics(st, gw),
		quests:   NewWorldQuests(st, gw, src, questChance),
	}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Ticks returns the number of ticks that have run to completion or been
// started (skipped overlapping ticks do not count).
func (s *Scheduler) Ticks() uint64 {
	return s.ticks.Load()
}

// Quests exposes the quest engine for contribution handling.
func (s *Scheduler) Quests() *WorldQuests {
	return s.quests
}

// Initialize seeds the world exactly once. When factions already exist —
// from a prior run or an earlier Initialize — it goes straight to Ready
// without reseeding and without a second announcement. A gateway failure
// here is returned to the caller: a world that cannot be forged should
// abort startup, unlike a routine tick.
func (s *Scheduler) Initialize(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(StateUninitialized), int32(StateInitializing)) {
		return nil
	}

	if existing := s.store.Factions(); len(existing) > 0 {
		slog.Info("world already forged", "factions", len(existing))
		s.state.Store(int32(StateReady))
		return nil
	}

	slog.Info("the dawn is new, forging initial factions")
	factions, err := s.gw.GenerateInitialFactions(ctx)
	if err != nil {
		s.state.Store(int32(StateUninitialized))
		return fmt.Errorf("forge initial factions: %w", err)
	}
	if len(factions) == 0 {
		s.state.Store(int32(StateUninitialized))
		return fmt.Errorf("forge initial factions: empty result: %w", nexus.ErrGenerationFailed)
	}

	if err := s.store.SaveFactions(factions); err != nil {
		s.state.Store(int32(StateUninitialized))
		return fmt.Errorf("save initial factions: %w", err)
	}

	names := make([]string, len(factions))
	for i, f := range factions {
		names[i] = f.Name
	}
	announcement := oraclePost(fmt.Sprintf(
		"The great Factions have revealed themselves: %s. A new era of allegiance and conflict begins. #Factions #WorldEvent",
		strings.Join(names, ", ")), genesis.PostEvent, "")
	if err := s.store.AddPost(announcement); err != nil {
		slog.Error("faction announcement post failed", "error", err)
	}

	slog.Info("factions established", "count", len(factions))
	s.state.Store(int32(StateReady))
	return nil
}

// Tick runs one simulation step: a faction dynamics update, then a quest
// spawn roll, both against the faction snapshot taken at tick start. Each
// step skips independently on gateway failure; failures never surface
// beyond the log — the world simply produces no new post this tick.
func (s *Scheduler) Tick(ctx context.Context) {
	if s.State() != StateReady {
		slog.Warn("tick called before initialization")
		return
	}
	if !s.tickMu.TryLock() {
		slog.Warn("tick overlap, skipping: previous tick still running")
		return
	}
	defer s.tickMu.Unlock()

	tick := s.ticks.Add(1)

	snapshot := s.store.Factions()
	if len(snapshot) == 0 {
		return
	}

	slog.Debug("world tick", "tick", tick, "factions", len(snapshot))

	if err := s.dynamics.Step(ctx, snapshot); err != nil {
		slog.Warn("faction dynamics step skipped", "tick", tick, "error", err)
	}

	if quest, err := s.quests.MaybeSpawn(ctx, snapshot); err != nil {
		slog.Warn("world quest step skipped", "tick", tick, "error", err)
	} else if quest != nil {
		slog.Debug("world quest spawned", "tick", tick, "quest", quest.ID)
	}
}
