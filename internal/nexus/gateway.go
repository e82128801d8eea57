// Package nexus is the boundary to the external generative content
// service. Each intent sends a natural-language instruction constrained by
// an explicit output schema and parses the structured JSON result; every
// failure mode collapses to ErrGenerationFailed so callers only decide
// whether to skip the current step.
package nexus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
)

// ErrGenerationFailed is the single failure condition surfaced to callers.
// The distinguishing detail (network, malformed JSON, schema violation,
// missing credential) is logged, not propagated.
var ErrGenerationFailed = errors.New("content generation failed")

// FactionUpdate is one modified faction returned by the dynamics intent.
// Only the factions directly involved in the event appear. An absent
// power or status keeps the stored value; relatedFactionId always
// replaces the stored reference, so omitting it clears the pairing.
type FactionUpdate struct {
	ID               string                `json:"id"`
	Power            *int                  `json:"power,omitempty"`
	Status           genesis.FactionStatus `json:"status,omitempty"`
	RelatedFactionID string                `json:"relatedFactionId,omitempty"`
}

// DynamicsResult is the outcome of one faction-dynamics step: the update
// subset plus the Oracle's narrative description of the event.
type DynamicsResult struct {
	Updates     []FactionUpdate `json:"updates"`
	PostContent string          `json:"postContent"`
}

// QuestDraft is a generated world quest before the core assigns identity
// and lifecycle fields.
type QuestDraft struct {
	IssuerFactionID string            `json:"issuerFactionId"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Goal            genesis.QuestGoal `json:"goal"`
}

// ActivityResult is generated cross-network activity for one user.
type ActivityResult struct {
	Steam     *genesis.SteamActivitySet `json:"steam,omitempty"`
	Twitch    *genesis.TwitchStatus     `json:"twitch,omitempty"`
	Trophies  []genesis.GameTrophies    `json:"trophies,omitempty"`
	Friends   []genesis.Friend          `json:"friends,omitempty"`
	NexusFeed []genesis.NexusFeedItem   `json:"nexusFeed,omitempty"`
}

// Gateway translates structured intents into generative-service calls.
// Every call is at-most-once; there is no retry.
type Gateway interface {
	GenerateInitialFactions(ctx context.Context) ([]genesis.Faction, error)
	AdvanceFactionDynamics(ctx context.Context, factions []genesis.Faction) (*DynamicsResult, error)
	GenerateWorldQuest(ctx context.Context, factions []genesis.Faction) (*QuestDraft, error)
	GenerateNexusActivity(ctx context.Context, user genesis.User) (*ActivityResult, error)
}

// generationFailed logs the distinguishing detail and returns the generic
// failure condition.
func generationFailed(stage string, err error) error {
	slog.Warn("content generation failed", "stage", stage, "error", err)
	return fmt.Errorf("%s: %w", stage, ErrGenerationFailed)
}

// decodeAndValidate checks raw JSON against the intent's schema before any
// field is trusted, then decodes it into out. A shape mismatch fails
// closed rather than letting a partial payload through.
func decodeAndValidate(raw []byte, schema *jsonschema.Schema, out any) error {
	var loose any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}
	if err := schema.Validate(loose); err != nil {
		return fmt.Errorf("schema violation: %w", err)
	}
	return json.Unmarshal(raw, out)
}
