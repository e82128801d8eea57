package nexus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"google.golang.org/api/option"

	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
)

const defaultModel = "gemini-2.5-flash"

// ErrMissingCredential is returned from NewGemini when no API key is
// configured. At startup this is fatal; inside a routine tick, gateway
// calls only ever surface ErrGenerationFailed.
var ErrMissingCredential = errors.New("missing GEMINI_API_KEY")

// Gemini is the production Gateway backed by the Gemini API.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates the Gemini gateway. The timeout bounds every
// generation call.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// generateJSON runs one constrained generation call and decodes the
// validated payload into out.
func (g *Gemini) generateJSON(ctx context.Context, stage, prompt string, respSchema *genai.Schema, validator *jsonschema.Schema, out any) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	model := g.client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = respSchema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return generationFailed(stage, err)
	}

	text := responseText(resp)
	if text == "" {
		return generationFailed(stage, errors.New("empty response"))
	}

	if err := decodeAndValidate([]byte(text), validator, out); err != nil {
		return generationFailed(stage, err)
	}
	return nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	return text
}

// GenerateInitialFactions asks for the five founding factions. Ids are
// derived from names and every faction starts neutral; the model never
// controls either.
func (g *Gemini) GenerateInitialFactions(ctx context.Context) ([]genesis.Faction, error) {
	var payload struct {
		Factions []struct {
			Name           string       `json:"name"`
			Description    string       `json:"description"`
			PathAllegiance genesis.Path `json:"pathAllegiance"`
			Power          int          `json:"power"`
		} `json:"factions"`
	}
	err := g.generateJSON(ctx, "initial factions", buildInitialFactionsPrompt(),
		initialFactionsResponseSchema(), initialFactionsValidator, &payload)
	if err != nil {
		return nil, err
	}

	factions := make([]genesis.Faction, 0, len(payload.Factions))
	for _, f := range payload.Factions {
		factions = append(factions, genesis.Faction{
			ID:             genesis.FactionIDFromName(f.Name),
			Name:           f.Name,
			Description:    f.Description,
			PathAllegiance: f.PathAllegiance,
			Power:          f.Power,
			Status:         genesis.StatusNeutral,
		})
	}
	return factions, nil
}

// AdvanceFactionDynamics asks for exactly one political event expressed as
// an update subset plus a narrative post.
func (g *Gemini) AdvanceFactionDynamics(ctx context.Context, factions []genesis.Faction) (*DynamicsResult, error) {
	var result DynamicsResult
	err := g.generateJSON(ctx, "faction dynamics", buildDynamicsPrompt(factions),
		dynamicsResponseSchema(), dynamicsValidator, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateWorldQuest asks for a quest draft tied to one faction's current
// political situation.
func (g *Gemini) GenerateWorldQuest(ctx context.Context, factions []genesis.Faction) (*QuestDraft, error) {
	var draft QuestDraft
	err := g.generateJSON(ctx, "world quest", buildQuestPrompt(factions),
		questResponseSchema(), questValidator, &draft)
	if err != nil {
		return nil, err
	}
	return &draft, nil
}

// GenerateNexusActivity asks for mock cross-network activity scoped to the
// user's linked providers.
func (g *Gemini) GenerateNexusActivity(ctx context.Context, user genesis.User) (*ActivityResult, error) {
	if len(user.LinkedAccounts) == 0 {
		return &ActivityResult{}, nil
	}
	providers := make([]genesis.NetworkProvider, len(user.LinkedAccounts))
	for i, a := range user.LinkedAccounts {
		providers[i] = a.Provider
	}

	var result ActivityResult
	err := g.generateJSON(ctx, "nexus activity", buildActivityPrompt(user),
		activityResponseSchema(providers), activityValidator, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
