// Package genesis defines the world-level domain types shared by the
// store, the simulation engines, and the API.
package genesis

import (
	"strings"
	"time"
)

// Path is one of the five soul archetypes every faction and user aligns to.
type Path string

const (
	PathSage      Path = "Sage"
	PathSeer      Path = "Seer"
	PathWarrior   Path = "Warrior"
	PathArchitect Path = "Architect"
	PathSovereign Path = "Sovereign"
)

// Paths lists all archetypes in canonical order.
var Paths = []Path{PathSage, PathSeer, PathWarrior, PathArchitect, PathSovereign}

// ValidPath reports whether p is one of the five archetypes.
func ValidPath(p Path) bool {
	switch p {
	case PathSage, PathSeer, PathWarrior, PathArchitect, PathSovereign:
		return true
	}
	return false
}

// FactionStatus describes a faction's current political posture.
// The string values are the persisted wire format ("at war" keeps its space).
type FactionStatus string

const (
	StatusAtWar     FactionStatus = "at war"
	StatusAllied    FactionStatus = "allied"
	StatusNeutral   FactionStatus = "neutral"
	StatusExpanding FactionStatus = "expanding"
	StatusDefensive FactionStatus = "defensive"
)

// ValidFactionStatus reports whether s is a known status value.
func ValidFactionStatus(s FactionStatus) bool {
	switch s {
	case StatusAtWar, StatusAllied, StatusNeutral, StatusExpanding, StatusDefensive:
		return true
	}
	return false
}

// Relational reports whether the status implies a counterpart faction.
// RelatedFactionID must be set iff the status is relational.
func (s FactionStatus) Relational() bool {
	return s == StatusAtWar || s == StatusAllied
}

// Faction is a persistent world-level political entity.
type Faction struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	PathAllegiance   Path          `json:"pathAllegiance"`
	Power            int           `json:"power"`
	Status           FactionStatus `json:"status"`
	RelatedFactionID string        `json:"relatedFactionId,omitempty"`
}

// FactionIDFromName derives the stable faction id used at creation time.
func FactionIDFromName(name string) string {
	return "faction_" + strings.ReplaceAll(name, " ", "_")
}

// QuestStatus is the lifecycle state of a world quest.
type QuestStatus string

const (
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
	QuestFailed    QuestStatus = "failed"
)

// GoalTypeSubmitConcepts is the only quest goal type: users submit
// generated concepts until the target count is met.
const GoalTypeSubmitConcepts = "SUBMIT_CONCEPTS"

// QuestGoal is the numeric objective of a world quest.
type QuestGoal struct {
	Type        string `json:"type"`
	TargetCount int    `json:"targetCount"`
}

// Contribution records one concept submitted toward a quest goal.
type Contribution struct {
	ConceptID string `json:"conceptId"`
	UserID    string `json:"userId"`
}

// WorldQuest is a crowd-sourced creative objective issued by a faction.
type WorldQuest struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	IssuerFaction  string         `json:"issuerFactionId"`
	Goal           QuestGoal      `json:"goal"`
	Contributions  []Contribution `json:"contributions"`
	Status         QuestStatus    `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// AddContribution appends a contribution while the quest is active and
// flips the status to completed once the goal target is reached.
// Returns false when the quest no longer accepts contributions.
func (q *WorldQuest) AddContribution(conceptID, userID string) bool {
	if q.Status != QuestActive {
		return false
	}
	q.Contributions = append(q.Contributions, Contribution{ConceptID: conceptID, UserID: userID})
	if q.Goal.TargetCount > 0 && len(q.Contributions) >= q.Goal.TargetCount {
		q.Status = QuestCompleted
	}
	return true
}

// PostType distinguishes user decrees from system-authored narrative posts.
type PostType string

const (
	PostUser  PostType = "user"
	PostEvent PostType = "event"
	PostQuest PostType = "quest"
)

// Post is one entry of the world feed. Narrative posts (event, quest)
// are authored by the Oracle; engagement counters are advisory and never
// mutated by the simulation after creation.
type Post struct {
	ID              string    `json:"id"`
	AuthorHandle    string    `json:"authorHandle"`
	AuthorName      string    `json:"authorName"`
	AuthorAvatarURL string    `json:"authorAvatarUrl"`
	Content         string    `json:"content"`
	Timestamp       time.Time `json:"timestamp"`
	Likes           int       `json:"likes"`
	CommentsCount   int       `json:"commentsCount"`
	SharesCount     int       `json:"sharesCount"`
	Type            PostType  `json:"type"`
	QuestID         string    `json:"questId,omitempty"`
}

// GlobalChatMessage is one line of the shared world chat.
type GlobalChatMessage struct {
	ID              string    `json:"id"`
	AuthorHandle    string    `json:"authorHandle"`
	AuthorName      string    `json:"authorName"`
	AuthorAvatarURL string    `json:"authorAvatarUrl"`
	Text            string    `json:"text"`
	Timestamp       time.Time `json:"timestamp"`
}

// NetworkProvider is a linkable third-party gaming network.
type NetworkProvider string

const (
	ProviderSteam       NetworkProvider = "steam"
	ProviderXbox        NetworkProvider = "xbox"
	ProviderPlaystation NetworkProvider = "playstation"
	ProviderDiscord     NetworkProvider = "discord"
	ProviderTwitch      NetworkProvider = "twitch"
	ProviderTwitter     NetworkProvider = "twitter"
)

// TrophyProvider reports whether the provider exposes trophies/achievements.
func TrophyProvider(p NetworkProvider) bool {
	return p == ProviderSteam || p == ProviderXbox || p == ProviderPlaystation
}

// LinkedAccount is a connected third-party account on a user profile.
type LinkedAccount struct {
	Provider NetworkProvider `json:"provider"`
	UserID   string          `json:"userId"`
	Username string          `json:"username"`
	LinkedAt time.Time       `json:"linkedAt"`
}

// GeneratedConcept is an AI-generated character/design concept saved to a
// user's gallery, optionally submitted to a world quest.
type GeneratedConcept struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	ImageURL           string `json:"imageUrl"`
	SubmittedToQuestID string `json:"submittedToQuestId,omitempty"`
}

// SteamActivity is one recently played game from a linked Steam account.
type SteamActivity struct {
	Game        string `json:"game"`
	HoursPlayed int    `json:"hoursPlayed"`
	LastPlayed  string `json:"lastPlayed"`
}

// TwitchStatus is the live state of a linked Twitch account.
type TwitchStatus struct {
	IsLive  bool   `json:"isLive"`
	Title   string `json:"title,omitempty"`
	Game    string `json:"game,omitempty"`
	Viewers int    `json:"viewers,omitempty"`
}

// Trophy is one unlocked achievement on a linked platform.
type Trophy struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	IconURL     string          `json:"iconUrl"`
	Rarity      string          `json:"rarity"`
	Platform    NetworkProvider `json:"platform"`
}

// GameTrophies groups trophies by game and platform.
type GameTrophies struct {
	GameName string          `json:"gameName"`
	Platform NetworkProvider `json:"platform"`
	Trophies []Trophy        `json:"trophies"`
}

// Friend is a contact surfaced from a linked network.
type Friend struct {
	ID          string          `json:"id"`
	SoulName    string          `json:"soulName"`
	Path        Path            `json:"path"`
	AvatarURL   string          `json:"avatarUrl"`
	IsOnline    bool            `json:"isOnline"`
	CurrentGame string          `json:"currentGame,omitempty"`
	Platform    NetworkProvider `json:"platform"`
	BondScore   int             `json:"bondScore"`
}

// NexusFeedItem is one line of a user's aggregated cross-network activity feed.
type NexusFeedItem struct {
	ID             string          `json:"id"`
	Timestamp      time.Time       `json:"timestamp"`
	Type           string          `json:"type"`
	Text           string          `json:"text"`
	SourceProvider NetworkProvider `json:"sourceProvider,omitempty"`
}

// NexusData aggregates generated activity across a user's linked networks.
type NexusData struct {
	Steam    *SteamActivitySet `json:"steam,omitempty"`
	Twitch   *TwitchStatus     `json:"twitch,omitempty"`
	Trophies []GameTrophies    `json:"trophies,omitempty"`
	Friends  []Friend          `json:"friends,omitempty"`
}

// SteamActivitySet wraps the steam activity list to match the wire shape.
type SteamActivitySet struct {
	Activities []SteamActivity `json:"activities"`
}

// User is a platform member. Only the fields the simulation core touches
// are modeled; presentation settings stay in the UI layer.
type User struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Handle         string             `json:"handle"`
	Dream          string             `json:"dream,omitempty"`
	Path           Path               `json:"path"`
	AvatarURL      string             `json:"avatarUrl"`
	Bio            string             `json:"bio,omitempty"`
	JoinedDate     string             `json:"joinedDate,omitempty"`
	Following      []string           `json:"following"`
	LinkedAccounts []LinkedAccount    `json:"linkedAccounts"`
	NexusData      *NexusData         `json:"nexusData,omitempty"`
	NexusFeed      []NexusFeedItem    `json:"nexusFeed"`
	Gallery        []GeneratedConcept `json:"gallery"`
	FactionID      string             `json:"factionId,omitempty"`
}
