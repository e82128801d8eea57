// Package store is the single source of truth for world-level collections.
// Everything lives in one JSON aggregate persisted under a fixed record
// key; each operation is a read-modify-write of the whole aggregate under
// one mutex, so exactly one writer touches the record at a time.
package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/MKWorldWide/GameDinGenesis/internal/genesis"
	"github.com/MKWorldWide/GameDinGenesis/internal/persistence"
)

// RecordKey is the logical name of the aggregate record.
const RecordKey = "gamedin-db"

// maxChatMessages bounds the global chat history; the oldest messages are
// silently evicted on overflow.
const maxChatMessages = 100

// ErrUserNotFound is returned when a gallery or profile operation names an
// unknown user.
var ErrUserNotFound = errors.New("user not found")

// Aggregate is the full persisted world state.
type Aggregate struct {
	Users        []genesis.User              `json:"users"`
	Posts        []genesis.Post              `json:"posts"`
	ChatMessages []genesis.GlobalChatMessage `json:"chatMessages"`
	Factions     []genesis.Faction           `json:"factions"`
	WorldQuests  []genesis.WorldQuest        `json:"worldQuests"`
}

// Store owns the aggregate record.
type Store struct {
	mu sync.Mutex
	db *persistence.DB
}

// New creates a store over the given database.
func New(db *persistence.DB) *Store {
	return &Store{db: db}
}

// load reads the aggregate, treating a missing or malformed record as an
// empty world. Failing open here keeps a corrupt record from bricking
// startup at the cost of silently dropping the stored data.
func (s *Store) load() *Aggregate {
	var agg Aggregate
	raw, err := s.db.LoadRecord(RecordKey)
	if err != nil {
		slog.Error("world record unreadable, starting empty", "error", err)
		return &agg
	}
	if raw == nil {
		return &agg
	}
	if err := json.Unmarshal(raw, &agg); err != nil {
		slog.Error("world record corrupt, starting empty", "error", err)
		return &Aggregate{}
	}
	return &agg
}

func (s *Store) save(agg *Aggregate) error {
	raw, err := json.Marshal(agg)
	if err != nil {
		return err
	}
	return s.db.SaveRecord(RecordKey, raw)
}

// update runs fn against the current aggregate and persists the result.
// The whole cycle holds the store mutex.
func (s *Store) update(fn func(*Aggregate) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	agg := s.load()
	if err := fn(agg); err != nil {
		return err
	}
	return s.save(agg)
}

// view runs fn against a freshly loaded aggregate under the mutex.
func (s *Store) view(fn func(*Aggregate)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.load())
}

// Factions returns all factions.
func (s *Store) Factions() []genesis.Faction {
	var out []genesis.Faction
	s.view(func(a *Aggregate) { out = a.Factions })
	return out
}

// SaveFactions replaces the faction list wholesale. Callers must pass the
// complete list, including unmodified factions — anything omitted is lost.
func (s *Store) SaveFactions(factions []genesis.Faction) error {
	return s.update(func(a *Aggregate) error {
		a.Factions = factions
		return nil
	})
}

// WorldQuests returns all world quests.
func (s *Store) WorldQuests() []genesis.WorldQuest {
	var out []genesis.WorldQuest
	s.view(func(a *Aggregate) { out = a.WorldQuests })
	return out
}

// QuestByID returns the quest with the given id, or nil.
func (s *Store) QuestByID(id string) *genesis.WorldQuest {
	var out *genesis.WorldQuest
	s.view(func(a *Aggregate) {
		for i := range a.WorldQuests {
			if a.WorldQuests[i].ID == id {
				q := a.WorldQuests[i]
				out = &q
				return
			}
		}
	})
	return out
}

// AddWorldQuest appends a new quest.
func (s *Store) AddWorldQuest(quest genesis.WorldQuest) error {
	return s.update(func(a *Aggregate) error {
		a.WorldQuests = append(a.WorldQuests, quest)
		return nil
	})
}

// UpdateWorldQuest replaces the quest matching quest.ID. A quest id with
// no match is a silent no-op; callers that need certainty must fetch the
// quest first.
func (s *Store) UpdateWorldQuest(quest genesis.WorldQuest) error {
	return s.update(func(a *Aggregate) error {
		for i := range a.WorldQuests {
			if a.WorldQuests[i].ID == quest.ID {
				a.WorldQuests[i] = quest
				return nil
			}
		}
		return nil
	})
}

// Posts returns the feed sorted newest first.
func (s *Store) Posts() []genesis.Post {
	var out []genesis.Post
	s.view(func(a *Aggregate) {
		out = append(out, a.Posts...)
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// AddPost appends a post to the feed.
func (s *Store) AddPost(post genesis.Post) error {
	return s.update(func(a *Aggregate) error {
		a.Posts = append(a.Posts, post)
		return nil
	})
}

// ChatMessages returns the global chat sorted oldest first.
func (s *Store) ChatMessages() []genesis.GlobalChatMessage {
	var out []genesis.GlobalChatMessage
	s.view(func(a *Aggregate) {
		out = append(out, a.ChatMessages...)
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// AddChatMessage appends a chat message, evicting the oldest entries once
// the history exceeds the ring bound.
func (s *Store) AddChatMessage(msg genesis.GlobalChatMessage) error {
	return s.update(func(a *Aggregate) error {
		a.ChatMessages = append(a.ChatMessages, msg)
		if n := len(a.ChatMessages); n > maxChatMessages {
			a.ChatMessages = a.ChatMessages[n-maxChatMessages:]
		}
		return nil
	})
}

// Users returns all users.
func (s *Store) Users() []genesis.User {
	var out []genesis.User
	s.view(func(a *Aggregate) { out = a.Users })
	return out
}

// UserByID returns the user with the given id, or nil.
func (s *Store) UserByID(id string) *genesis.User {
	var out *genesis.User
	s.view(func(a *Aggregate) {
		for i := range a.Users {
			if a.Users[i].ID == id {
				u := a.Users[i]
				out = &u
				return
			}
		}
	})
	return out
}

// UserByHandle returns the user with the given handle, or nil. Handles are
// the unique routing key for profiles.
func (s *Store) UserByHandle(handle string) *genesis.User {
	var out *genesis.User
	s.view(func(a *Aggregate) {
		for i := range a.Users {
			if a.Users[i].Handle == handle {
				u := a.Users[i]
				out = &u
				return
			}
		}
	})
	return out
}

// AddUser appends a new user.
func (s *Store) AddUser(user genesis.User) error {
	return s.update(func(a *Aggregate) error {
		a.Users = append(a.Users, user)
		return nil
	})
}

// UpdateUser replaces the user matching user.ID. Unknown ids are a silent
// no-op, matching UpdateWorldQuest.
func (s *Store) UpdateUser(user genesis.User) error {
	return s.update(func(a *Aggregate) error {
		for i := range a.Users {
			if a.Users[i].ID == user.ID {
				a.Users[i] = user
				return nil
			}
		}
		return nil
	})
}

// SaveConceptToGallery appends the concept to the user's gallery and, when
// questID names an active quest, records the quest contribution — both in
// a single record write, so the pairing is atomic. Returns whether a
// contribution was recorded.
func (s *Store) SaveConceptToGallery(userID string, concept genesis.GeneratedConcept, questID string) (bool, error) {
	contributed := false
	err := s.update(func(a *Aggregate) error {
		var user *genesis.User
		for i := range a.Users {
			if a.Users[i].ID == userID {
				user = &a.Users[i]
				break
			}
		}
		if user == nil {
			return ErrUserNotFound
		}

		concept.SubmittedToQuestID = questID
		user.Gallery = append(user.Gallery, concept)

		if questID == "" {
			return nil
		}
		for i := range a.WorldQuests {
			if a.WorldQuests[i].ID == questID {
				contributed = a.WorldQuests[i].AddContribution(concept.ID, userID)
				break
			}
		}
		return nil
	})
	return contributed, err
}
