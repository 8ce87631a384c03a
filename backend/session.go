package main

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

const defaultSession = ""

type sessionEntry struct {
	gc       *GameController
	lastUsed uint64
}

// SessionStore hands out one GameController per session id, creating them
// on first use. Besides the default session it keeps at most
// Config.MaxSessions controllers and evicts the least recently used one.
type SessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*sessionEntry
	tick      uint64
	config    func() Config
	journal   Journal
	publisher func(feedEvent)
}

func NewSessionStore(config func() Config, journal Journal, publisher func(feedEvent)) *SessionStore {
	if config == nil {
		config = GetConfig
	}
	return &SessionStore{
		sessions:  make(map[string]*sessionEntry),
		config:    config,
		journal:   journal,
		publisher: publisher,
	}
}

func (s *SessionStore) Get(id string) *GameController {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick++
	if entry, ok := s.sessions[id]; ok {
		entry.lastUsed = s.tick
		return entry.gc
	}
	config := s.config()
	if id != defaultSession {
		s.evictLocked(config.MaxSessions - 1)
	}
	gc := NewGameController(id, config, s.journal, s.publisher)
	s.sessions[id] = &sessionEntry{gc: gc, lastUsed: s.tick}
	return gc
}

// Lookup returns an existing session without creating it or touching its
// recency.
func (s *SessionStore) Lookup(id string) (*GameController, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return entry.gc, true
}

// Reset resets the session with the current configuration.
func (s *SessionStore) Reset(id string) {
	s.Get(id).Reset(s.config())
}

func (s *SessionStore) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// evictLocked drops least recently used named sessions until at most keep
// remain. The default session is never evicted.
func (s *SessionStore) evictLocked(keep int) {
	keep = max(keep, 0)
	for {
		named := 0
		victim := ""
		var oldest uint64
		for id, entry := range s.sessions {
			if id == defaultSession {
				continue
			}
			named++
			if victim == "" || entry.lastUsed < oldest {
				victim, oldest = id, entry.lastUsed
			}
		}
		if named <= keep {
			return
		}
		delete(s.sessions, victim)
		log.Info().Str("session", victim).Msg("session-evicted")
	}
}
