package nexus

import (
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
)

// Local validators, one per intent. The model is also handed a response
// schema, but its output is never trusted until it passes these.

var factionStatusEnum = `["at war", "allied", "neutral", "expanding", "defensive"]`

var pathEnum = `["Sage", "Seer", "Warrior", "Architect", "Sovereign"]`

var initialFactionsValidator = jsonschema.MustCompileString("initial_factions.json", `{
	"type": "object",
	"required": ["factions"],
	"properties": {
		"factions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name", "description", "pathAllegiance", "power"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"description": {"type": "string", "minLength": 1},
					"pathAllegiance": {"enum": `+pathEnum+`},
					"power": {"type": "integer", "minimum": 0}
				}
			}
		}
	}
}`)

var dynamicsValidator = jsonschema.MustCompileString("faction_dynamics.json", `{
	"type": "object",
	"required": ["updates", "postContent"],
	"properties": {
		"updates": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"power": {"type": "integer", "minimum": 0},
					"status": {"enum": `+factionStatusEnum+`},
					"relatedFactionId": {"type": "string"}
				}
			}
		},
		"postContent": {"type": "string", "minLength": 1}
	}
}`)

var questValidator = jsonschema.MustCompileString("world_quest.json", `{
	"type": "object",
	"required": ["issuerFactionId", "title", "description", "goal"],
	"properties": {
		"issuerFactionId": {"type": "string", "minLength": 1},
		"title": {"type": "string", "minLength": 1},
		"description": {"type": "string", "minLength": 1},
		"goal": {
			"type": "object",
			"required": ["type", "targetCount"],
			"properties": {
				"type": {"const": "SUBMIT_CONCEPTS"},
				"targetCount": {"type": "integer", "minimum": 5, "maximum": 15}
			}
		}
	}
}`)

var activityValidator = jsonschema.MustCompileString("nexus_activity.json", `{
	"type": "object",
	"properties": {
		"steam": {
			"type": "object",
			"required": ["activities"],
			"properties": {
				"activities": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["game", "hoursPlayed", "lastPlayed"],
						"properties": {
							"game": {"type": "string"},
							"hoursPlayed": {"type": "integer", "minimum": 0},
							"lastPlayed": {"type": "string"}
						}
					}
				}
			}
		},
		"twitch": {
			"type": "object",
			"required": ["isLive"],
			"properties": {"isLive": {"type": "boolean"}}
		},
		"trophies": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["gameName", "platform", "trophies"],
				"properties": {
					"gameName": {"type": "string"},
					"platform": {"type": "string"},
					"trophies": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["name", "description", "rarity"]
						}
					}
				}
			}
		},
		"friends": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["soulName", "path", "isOnline", "platform", "bondScore"],
				"properties": {
					"soulName": {"type": "string"},
					"path": {"enum": `+pathEnum+`},
					"isOnline": {"type": "boolean"},
					"bondScore": {"type": "integer", "minimum": 0, "maximum": 100}
				}
			}
		},
		"nexusFeed": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["type", "text"]
			}
		}
	}
}`)

// Response schemas handed to the model, mirroring the validators above.

func initialFactionsResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"factions"},
		Properties: map[string]*genai.Schema{
			"factions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"name", "description", "pathAllegiance", "power"},
					Properties: map[string]*genai.Schema{
						"name":           {Type: genai.TypeString, Description: "The unique name of the faction."},
						"description":    {Type: genai.TypeString, Description: "A short, evocative description of the faction's goals and identity."},
						"pathAllegiance": {Type: genai.TypeString, Description: "The core Path this faction is aligned with.", Enum: pathNames()},
						"power":          {Type: genai.TypeInteger, Description: "An initial power level between 40 and 60."},
					},
				},
			},
		},
	}
}

func dynamicsResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"updates", "postContent"},
		Properties: map[string]*genai.Schema{
			"updates": {
				Type:        genai.TypeArray,
				Description: "An array containing ONLY the faction objects that have been modified.",
				Items: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"id"},
					Properties: map[string]*genai.Schema{
						"id":               {Type: genai.TypeString},
						"power":            {Type: genai.TypeInteger},
						"status":           {Type: genai.TypeString, Enum: statusNames()},
						"relatedFactionId": {Type: genai.TypeString},
					},
				},
			},
			"postContent": {Type: genai.TypeString, Description: "A short, feed-friendly summary of the event."},
		},
	}
}

func questResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"issuerFactionId", "title", "description", "goal"},
		Properties: map[string]*genai.Schema{
			"issuerFactionId": {Type: genai.TypeString},
			"title":           {Type: genai.TypeString},
			"description":     {Type: genai.TypeString},
			"goal": {
				Type:     genai.TypeObject,
				Required: []string{"type", "targetCount"},
				Properties: map[string]*genai.Schema{
					"type":        {Type: genai.TypeString, Description: "Must be 'SUBMIT_CONCEPTS'"},
					"targetCount": {Type: genai.TypeInteger, Description: "Between 5 and 15."},
				},
			},
		},
	}
}

// activityResponseSchema is built per call: only blocks for the user's
// linked providers are requested.
func activityResponseSchema(providers []genesis.NetworkProvider) *genai.Schema {
	linked := make(map[genesis.NetworkProvider]bool, len(providers))
	var trophyProviders []string
	var providerNames []string
	for _, p := range providers {
		linked[p] = true
		providerNames = append(providerNames, string(p))
		if genesis.TrophyProvider(p) {
			trophyProviders = append(trophyProviders, string(p))
		}
	}

	props := map[string]*genai.Schema{}

	if linked[genesis.ProviderSteam] {
		props["steam"] = &genai.Schema{
			Type:        genai.TypeObject,
			Description: "Steam activity data.",
			Properties: map[string]*genai.Schema{
				"activities": {
					Type:        genai.TypeArray,
					Description: "List of recently played games on Steam.",
					Items: &genai.Schema{
						Type:     genai.TypeObject,
						Required: []string{"game", "hoursPlayed", "lastPlayed"},
						Properties: map[string]*genai.Schema{
							"game":        {Type: genai.TypeString, Description: "The name of the game."},
							"hoursPlayed": {Type: genai.TypeInteger, Description: "Total hours played."},
							"lastPlayed":  {Type: genai.TypeString, Description: "A relative time string like 'Yesterday' or '2 weeks ago'."},
						},
					},
				},
			},
		}
	}

	if linked[genesis.ProviderTwitch] {
		props["twitch"] = &genai.Schema{
			Type:        genai.TypeObject,
			Description: "Twitch live status. isLive should be true about 30% of the time. If not live, other fields can be omitted.",
			Required:    []string{"isLive"},
			Properties: map[string]*genai.Schema{
				"isLive":  {Type: genai.TypeBoolean, Description: "Whether the user is currently streaming."},
				"title":   {Type: genai.TypeString, Description: "The title of the stream, if live."},
				"game":    {Type: genai.TypeString, Description: "The game being streamed, if live."},
				"viewers": {Type: genai.TypeInteger, Description: "Number of viewers, if live."},
			},
		}
	}

	if len(trophyProviders) > 0 {
		props["trophies"] = &genai.Schema{
			Type:        genai.TypeArray,
			Description: "Games and the trophies unlocked for them. Only include platforms from the linked accounts list.",
			Items: &genai.Schema{
				Type:     genai.TypeObject,
				Required: []string{"gameName", "platform", "trophies"},
				Properties: map[string]*genai.Schema{
					"gameName": {Type: genai.TypeString, Description: "The name of the game."},
					"platform": {Type: genai.TypeString, Description: fmt.Sprintf("Must be one of: %s", strings.Join(trophyProviders, ", "))},
					"trophies": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type:     genai.TypeObject,
							Required: []string{"name", "description", "rarity"},
							Properties: map[string]*genai.Schema{
								"name":        {Type: genai.TypeString, Description: "The name of the trophy."},
								"description": {Type: genai.TypeString, Description: "A short description of how to unlock it."},
								"rarity":      {Type: genai.TypeString, Description: "common, uncommon, rare, epic, or legendary."},
							},
						},
					},
				},
			},
		}
	}

	props["friends"] = &genai.Schema{
		Type:        genai.TypeArray,
		Description: "Friends from linked networks. Only include platforms from the linked accounts list.",
		Items: &genai.Schema{
			Type:     genai.TypeObject,
			Required: []string{"soulName", "path", "isOnline", "platform", "bondScore"},
			Properties: map[string]*genai.Schema{
				"soulName":    {Type: genai.TypeString, Description: "The friend's name."},
				"path":        {Type: genai.TypeString, Description: "The friend's Path.", Enum: pathNames()},
				"isOnline":    {Type: genai.TypeBoolean},
				"currentGame": {Type: genai.TypeString, Description: "The game they are playing, if online."},
				"platform":    {Type: genai.TypeString, Description: fmt.Sprintf("Must be one of: %s", strings.Join(providerNames, ", "))},
				"bondScore":   {Type: genai.TypeInteger, Description: "A score from 20-100 representing friendship strength."},
			},
		},
	}

	props["nexusFeed"] = &genai.Schema{
		Type:        genai.TypeArray,
		Description: "A summary of the generated data, phrased as user achievements or events.",
		Items: &genai.Schema{
			Type:     genai.TypeObject,
			Required: []string{"type", "text"},
			Properties: map[string]*genai.Schema{
				"type":           {Type: genai.TypeString, Description: "Type of event: 'Trophy', 'Friend', 'AccountLink'."},
				"text":           {Type: genai.TypeString, Description: "A descriptive string, e.g. 'Unlocked 5 new trophies in Celestial Arena.'"},
				"sourceProvider": {Type: genai.TypeString, Description: "The provider that sourced this event."},
			},
		},
	}

	return &genai.Schema{Type: genai.TypeObject, Properties: props}
}

func pathNames() []string {
	out := make([]string, len(genesis.Paths))
	for i, p := range genesis.Paths {
		out[i] = string(p)
	}
	return out
}

func statusNames() []string {
	return []string{
		string(genesis.StatusAtWar),
		string(genesis.StatusAllied),
		string(genesis.StatusNeutral),
		string(genesis.StatusExpanding),
		string(genesis.StatusDefensive),
	}
}
