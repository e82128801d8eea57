package nexus

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
)

func buildInitialFactionsPrompt() string {
	names := strings.Join(pathNames(), ", ")
	var b strings.Builder

	fmt.Fprintf(&b, "Create a set of 5 distinct, persistent factions for the world of Gamedin Genesis.\n")
	fmt.Fprintf(&b, "Each faction must be thematically tied to one of the core \"Paths\": %s.\n", names)
	b.WriteString("For each faction, provide a unique and compelling name, a short, evocative description (1-2 sentences), and its Path allegiance.\n")
	b.WriteString("Initial power level should be between 40 and 60. Initial status for all should be 'neutral'.\n")

	return b.String()
}

func buildDynamicsPrompt(factions []genesis.Faction) string {
	state, _ := json.MarshalIndent(factions, "", "  ")
	var b strings.Builder

	b.WriteString("You are the simulation engine for Gamedin Genesis. Given the current state of world factions, create a single, logical political event.\n")
	b.WriteString("Current Faction State:\n")
	b.Write(state)
	b.WriteString("\n\nChoose one of the following events and apply it:\n")
	b.WriteString("1. Start War: Two neutral factions become 'at war'. Set their 'relatedFactionId' to each other. Slightly decrease their power.\n")
	b.WriteString("2. Form Alliance: Two neutral factions become 'allied'. Set their 'relatedFactionId' to each other. Slightly increase their power.\n")
	b.WriteString("3. End War/Alliance: An 'at war' or 'allied' pair becomes 'neutral'. Clear their 'relatedFactionId'.\n")
	b.WriteString("4. Expansion: One faction has a breakthrough. Its status becomes 'expanding' and its power increases significantly (e.g., +5-10).\n")
	b.WriteString("5. Hardship: One faction suffers a setback. Its status becomes 'defensive' and its power decreases (e.g., -5-10).\n")
	b.WriteString("\nRules:\n")
	b.WriteString("- Only modify the factions directly involved in the event.\n")
	b.WriteString("- Ensure changes are symmetrical (e.g., if A is at war with B, B must be at war with A).\n")
	b.WriteString("- Return ONLY the factions that were modified.\n")
	b.WriteString("- Generate a compelling, news-style \"post content\" string (max 400 chars, include hashtags) describing the event from the perspective of an omniscient observer called The Oracle.\n")

	return b.String()
}

func buildQuestPrompt(factions []genesis.Faction) string {
	// The quest intent only needs the political climate, not descriptions.
	type climate struct {
		ID               string                `json:"id"`
		Name             string                `json:"name"`
		Status           genesis.FactionStatus `json:"status"`
		RelatedFactionID string                `json:"relatedFactionId,omitempty"`
	}
	slim := make([]climate, len(factions))
	for i, f := range factions {
		slim[i] = climate{ID: f.ID, Name: f.Name, Status: f.Status, RelatedFactionID: f.RelatedFactionID}
	}
	state, _ := json.MarshalIndent(slim, "", "  ")

	var b strings.Builder
	b.WriteString("You are the simulation engine for Gamedin Genesis. Your task is to create a new \"World Quest\" based on the current political climate of the factions.\n")
	b.WriteString("Current Faction State:\n")
	b.Write(state)
	b.WriteString("\n\nAnalyze the state and create a single, compelling quest for ONE faction. The quest should be a creative task for players.\n")
	b.WriteString("- If a faction is 'at war', create a quest to design propaganda, new war machine concepts, or elite soldier outfits.\n")
	b.WriteString("- If a faction is 'expanding', create a quest to design a new settlement's architecture, an emblem for a new territory, or a uniform for its explorers.\n")
	b.WriteString("- If a faction is 'allied', create a quest to design a joint emblem for the alliance or a concept for a celebratory monument.\n")
	b.WriteString("- If a faction is 'defensive' or 'neutral', create a quest to bolster morale, like designing a new parade uniform, a cultural hero, or a symbolic weapon.\n")
	b.WriteString("\nThe quest's goal is always for users to submit concepts.\n")
	b.WriteString("You must pick one faction to be the 'issuer' of the quest.\n")
	b.WriteString("\nReturn a JSON object with:\n")
	b.WriteString("- issuerFactionId: The ID of the faction giving the quest.\n")
	b.WriteString("- title: A short, exciting title for the quest (e.g., \"The Aegis of Defiance\", \"Forging the Frontier\").\n")
	b.WriteString("- description: A compelling description (1-2 sentences) explaining the quest's purpose and what users should create.\n")
	b.WriteString("- goal: An object with type 'SUBMIT_CONCEPTS' and a targetCount between 5 and 15.\n")

	return b.String()
}

func buildActivityPrompt(user genesis.User) string {
	var providers, trophyProviders []string
	for _, a := range user.LinkedAccounts {
		providers = append(providers, string(a.Provider))
		if genesis.TrophyProvider(a.Provider) {
			trophyProviders = append(trophyProviders, string(a.Provider))
		}
	}

	var b strings.Builder
	b.WriteString("Generate a realistic and varied set of mock gaming and social data for a user on a platform called Gamedin Genesis.\n")
	fmt.Fprintf(&b, "The user's name is %q.\n", user.Name)
	fmt.Fprintf(&b, "Their chosen path is %q, which reflects their personality (e.g., Warrior likes action, Sage likes strategy, Architect likes building).\n", user.Path)
	fmt.Fprintf(&b, "Their dream is %q.\n", user.Dream)
	fmt.Fprintf(&b, "Their linked accounts are: %s.\n\n", strings.Join(providers, ", "))
	b.WriteString("Generate data that fits the user's profile.\n")
	b.WriteString("- Generate between 2 and 5 friends.\n")
	fmt.Fprintf(&b, "- Generate between 1 and 3 games for trophies, but only if trophy-enabled platforms are linked (%s). Each game should have 2-5 trophies.\n", strings.Join(trophyProviders, ", "))
	b.WriteString("- Ensure all generated platforms for friends and trophies are from the user's list of linked accounts.\n")
	b.WriteString("- For Twitch, there is a 30% chance they are live.\n")
	b.WriteString("- Create a 'nexusFeed' array that summarizes the data you generated in plain English.\n")

	return b.String()
}
