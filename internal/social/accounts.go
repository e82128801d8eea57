package social

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKWorldWide/GameDinGenesis/internal/entropy"
	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
	"github.com/MKWorldWide/GameDinGenesis/internal/nexus"
	"github.com/MKWorldWide/GameDinGenesis/internal/store"
)

// Accounts manages linked third-party accounts and the generated activity
// feed that hangs off them. Linking is a mock — there is no real OAuth —
// but the activity data flows through the same generation gateway as the
// rest of the world.
type Accounts struct {
	store   *store.Store
	gw      nexus.Gateway
	entropy entropy.Source
}

// NewAccounts creates the account service.
func NewAccounts(st *store.Store, gw nexus.Gateway, src entropy.Source) *Accounts {
	return &Accounts{store: st, gw: gw, entropy: src}
}

// LinkAccount attaches a mock third-party account to the user. Linking the
// same provider twice replaces the earlier link.
func (a *Accounts) LinkAccount(userID string, provider genesis.NetworkProvider) (genesis.LinkedAccount, error) {
	user := a.store.UserByID(userID)
	if user == nil {
		return genesis.LinkedAccount{}, store.ErrUserNotFound
	}

	account := genesis.LinkedAccount{
		Provider: provider,
		UserID:   "nexus_" + string(provider) + "_" + uuid.NewString(),
		Username: mockUsername(provider, user.Name, a.entropy),
		LinkedAt: time.Now(),
	}

	kept := user.LinkedAccounts[:0]
	for _, existing := range user.LinkedAccounts {
		if existing.Provider != provider {
			kept = append(kept, existing)
		}
	}
	user.LinkedAccounts = append(kept, account)

	if err := a.store.UpdateUser(*user); err != nil {
		return genesis.LinkedAccount{}, fmt.Errorf("link account: %w", err)
	}

	slog.Info("account linked", "user", userID, "provider", provider, "username", account.Username)
	return account, nil
}

// RefreshNexusActivity regenerates the user's cross-network activity and
// feed through the gateway. The model is not trusted with ids, avatar
// URLs, or timestamps; those are stamped here before anything persists.
func (a *Accounts) RefreshNexusActivity(ctx context.Context, userID string) error {
	user := a.store.UserByID(userID)
	if user == nil {
		return store.ErrUserNotFound
	}
	if len(user.LinkedAccounts) == 0 {
		slog.Debug("no linked accounts, nothing to refresh", "user", userID)
		return nil
	}

	result, err := a.gw.GenerateNexusActivity(ctx, *user)
	if err != nil {
		return fmt.Errorf("refresh nexus activity: %w", err)
	}

	now := time.Now()
	for gi := range result.Trophies {
		game := &result.Trophies[gi]
		for ti := range game.Trophies {
			t := &game.Trophies[ti]
			t.ID = "trophy_" + strings.ReplaceAll(game.GameName+"_"+t.Name, " ", "")
			t.Platform = game.Platform
			t.IconURL = "trophy-icon"
		}
	}
	for i := range result.Friends {
		f := &result.Friends[i]
		f.ID = "friend_" + strings.ReplaceAll(f.SoulName, " ", "_")
		f.AvatarURL = "https://i.pravatar.cc/150?u=" + strings.ReplaceAll(f.SoulName, " ", "")
	}
	for i := range result.NexusFeed {
		item := &result.NexusFeed[i]
		item.ID = "feed_" + uuid.NewString()
		item.Timestamp = now
	}

	user.NexusData = &genesis.NexusData{
		Steam:    result.Steam,
		Twitch:   result.Twitch,
		Trophies: result.Trophies,
		Friends:  result.Friends,
	}
	user.NexusFeed = append(user.NexusFeed, result.NexusFeed...)

	if err := a.store.UpdateUser(*user); err != nil {
		return fmt.Errorf("save nexus activity: %w", err)
	}

	slog.Info("nexus activity refreshed",
		"user", userID,
		"friends", len(result.Friends),
		"trophy_games", len(result.Trophies),
		"feed_items", len(result.NexusFeed),
	)
	return nil
}

// mockUsername builds a plausible per-provider username from the user's
// display name.
func mockUsername(provider genesis.NetworkProvider, name string, src entropy.Source) string {
	name = strings.ReplaceAll(name, " ", "")
	switch provider {
	case genesis.ProviderSteam:
		return name + "_steam"
	case genesis.ProviderXbox:
		return "X_" + name + "_X"
	case genesis.ProviderPlaystation:
		return "ps_" + name
	case genesis.ProviderDiscord:
		return fmt.Sprintf("%s#%04d", name, 1000+int(src.Float()*9000))
	case genesis.ProviderTwitch:
		return name + "_tv"
	case genesis.ProviderTwitter:
		return "@" + name + "_tweets"
	}
	return name
}
