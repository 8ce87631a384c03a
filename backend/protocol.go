package main

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
)

type protocolRequest struct {
	Command      string         `json:"command"`
	Session      string         `json:"session,omitempty"`
	OpponentMove *protocolCoord `json:"opponentMove,omitempty"`
}

type protocolCoord struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

type protocolResponse struct {
	Move  *Move  `json:"move,omitempty"`
	Team  string `json:"team,omitempty"`
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// coords returns -1 for any coordinate the client left out.
func (r protocolRequest) coords() (int, int) {
	x, y := -1, -1
	if r.OpponentMove == nil {
		return x, y
	}
	if r.OpponentMove.X != nil {
		x = *r.OpponentMove.X
	}
	if r.OpponentMove.Y != nil {
		y = *r.OpponentMove.Y
	}
	return x, y
}

// Dispatcher turns one request line into one response.
type Dispatcher struct {
	store *SessionStore
}

func NewDispatcher(store *SessionStore) *Dispatcher {
	return &Dispatcher{store: store}
}

func (d *Dispatcher) Handle(line []byte) protocolResponse {
	var req protocolRequest
	if err := json.Unmarshal(line, &req); err != nil {
		log.Warn().Err(err).Msg("malformed-request")
		return errorResponse(newRequestError(ErrMalformedInput, "Invalid JSON format: "+err.Error()))
	}

	team := d.store.config().TeamName
	switch req.Command {
	case "start":
		move, err := d.store.Get(req.Session).Start()
		if err != nil {
			return errorResponse(err)
		}
		return protocolResponse{Move: &move, Team: team}
	case "move":
		x, y := req.coords()
		log.Debug().Str("session", req.Session).Int("x", x).Int("y", y).Msg("opponent-move")
		move, err := d.store.Get(req.Session).ApplyOpponentMove(x, y)
		if err != nil {
			return errorResponse(err)
		}
		return protocolResponse{Move: &move, Team: team}
	case "reset":
		d.store.Reset(req.Session)
		return protocolResponse{Reply: "ok"}
	default:
		return errorResponse(newRequestError(ErrUnknownCommand, "Unknown command"))
	}
}

func errorResponse(err error) protocolResponse {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		log.Info().Str("kind", reqErr.Kind.Error()).Str("error", reqErr.Message).Msg("request-rejected")
		return protocolResponse{Error: reqErr.Message}
	}
	log.Error().Err(err).Msg("request-failed")
	return protocolResponse{Error: err.Error()}
}
