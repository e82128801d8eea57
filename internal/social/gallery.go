// Package social covers the user-facing flows around the simulation core:
// the concept gallery and linked third-party accounts.
package social

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
	"github.com/MKWorldWide/GameDinGenesis/internal/store"
)

// Gallery handles saving generated concepts to user galleries.
type Gallery struct {
	store *store.Store
}

// NewGallery creates the gallery service.
func NewGallery(st *store.Store) *Gallery {
	return &Gallery{store: st}
}

// SaveConcept assigns the concept its id and saves it to the user's
// gallery. When questID is set, the quest contribution is recorded in the
// same store write — the pairing happens together or not at all. Returns
// the stored concept and whether a contribution was counted (a quest that
// is missing or no longer active yields a gallery-only save).
func (g *Gallery) SaveConcept(userID string, concept genesis.GeneratedConcept, questID string) (genesis.GeneratedConcept, bool, error) {
	concept.ID = "concept_" + uuid.NewString()

	contributed, err := g.store.SaveConceptToGallery(userID, concept, questID)
	if err != nil {
		return genesis.GeneratedConcept{}, false, fmt.Errorf("save concept: %w", err)
	}

	if contributed {
		slog.Info("concept contributed to world quest",
			"concept", concept.ID, "quest", questID, "user", userID)
	} else {
		slog.Debug("concept saved to gallery", "concept", concept.ID, "user", userID)
	}
	return concept, contributed, nil
}
