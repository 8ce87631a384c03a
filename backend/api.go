package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const defaultSessionPath = "default"

type sessionStatusResponse struct {
	Session     string         `json:"session"`
	GameID      string         `json:"game_id"`
	Engine      string         `json:"engine"`
	Status      string         `json:"status"`
	MoveCount   int            `json:"move_count"`
	BoardSize   int            `json:"board_size"`
	Board       [][]int        `json:"board"`
	LastMove    *Move          `json:"last_move,omitempty"`
	WinningLine []Move         `json:"winning_line"`
	Cache       EvalCacheStats `json:"cache"`
}

type historyEntryDTO struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Player    string  `json:"player"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsEngine  bool    `json:"is_engine"`
}

type historyPayload struct {
	Count   int               `json:"count"`
	History []historyEntryDTO `json:"history"`
}

type pingResponse struct {
	OK       bool `json:"ok"`
	Sessions int  `json:"sessions"`
	Clients  int  `json:"feed_clients"`
}

func NewAPIRouter(store *SessionStore, hub *Hub) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, pingResponse{
			OK:       true,
			Sessions: len(store.IDs()),
			Clients:  hub.ClientCount(),
		})
	})

	r.Get("/api/sessions", func(w http.ResponseWriter, r *http.Request) {
		ids := store.IDs()
		for i, id := range ids {
			ids[i] = sessionToPath(id)
		}
		writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
	})

	r.Route("/api/sessions/{id}", func(r chi.Router) {
		r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			gc, ok := lookupSession(store, w, r)
			if !ok {
				return
			}
			writeJSON(w, http.StatusOK, sessionStatus(gc))
		})
		r.Get("/history", func(w http.ResponseWriter, r *http.Request) {
			gc, ok := lookupSession(store, w, r)
			if !ok {
				return
			}
			history := gc.History()
			writeJSON(w, http.StatusOK, historyPayload{Count: history.Size(), History: historyToDTO(history)})
		})
		r.Delete("/cache", func(w http.ResponseWriter, r *http.Request) {
			gc, ok := lookupSession(store, w, r)
			if !ok {
				return
			}
			gc.FlushCache()
			writeJSON(w, http.StatusOK, map[string]bool{"cleared": true})
		})
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, GetConfig())
	})
	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		config := GetConfig()
		if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		if err := config.Validate(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		configStore.Update(config)
		writeJSON(w, http.StatusOK, config)
	})

	r.Get("/ws/", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, w, r)
	})
	return r
}

func lookupSession(store *SessionStore, w http.ResponseWriter, r *http.Request) (*GameController, bool) {
	id := sessionFromPath(chi.URLParam(r, "id"))
	gc, ok := store.Lookup(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown session"})
		return nil, false
	}
	return gc, true
}

func sessionFromPath(raw string) string {
	if raw == defaultSessionPath {
		return defaultSession
	}
	return raw
}

func sessionToPath(id string) string {
	if id == defaultSession {
		return defaultSessionPath
	}
	return id
}

func sessionStatus(gc *GameController) sessionStatusResponse {
	state := gc.State()
	resp := sessionStatusResponse{
		Session:     sessionToPath(gc.Session()),
		GameID:      state.GameID,
		Engine:      colorName(state.EngineCell()),
		Status:      statusToString(state.Status),
		MoveCount:   state.MoveCount,
		BoardSize:   state.Board.Size(),
		Board:       state.Board.Rows(),
		WinningLine: append([]Move{}, state.WinningLine...),
		Cache:       state.Cache.Stats(),
	}
	if state.HasLastMove {
		last := state.LastMove
		resp.LastMove = &last
	}
	return resp
}

func historyToDTO(history MoveHistory) []historyEntryDTO {
	entries := history.All()
	result := make([]historyEntryDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, historyEntryDTO{
			X:         entry.Move.X,
			Y:         entry.Move.Y,
			Player:    colorName(entry.Player),
			ElapsedMs: entry.ElapsedMs,
			IsEngine:  entry.IsEngine,
		})
	}
	return result
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
