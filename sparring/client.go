package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

type coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type botRequest struct {
	Command      string `json:"command"`
	Session      string `json:"session,omitempty"`
	OpponentMove *coord `json:"opponentMove,omitempty"`
}

type botResponse struct {
	Move  *coord `json:"move,omitempty"`
	Team  string `json:"team,omitempty"`
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

type sessionStatus struct {
	Engine    string `json:"engine"`
	Status    string `json:"status"`
	MoveCount int    `json:"move_count"`
}

type botClient struct {
	name    string
	addr    string
	httpURL string
	timeout time.Duration
	client  *http.Client
}

func newBotClient(name, addr, httpURL string, timeout time.Duration) *botClient {
	return &botClient{
		name:    name,
		addr:    addr,
		httpURL: httpURL,
		timeout: timeout,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// call sends one request line on a fresh connection and reads the single
// reply line.
func (b *botClient) call(ctx context.Context, req botRequest) (botResponse, error) {
	dialer := net.Dialer{Timeout: b.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", b.addr)
	if err != nil {
		return botResponse{}, fmt.Errorf("dial %s: %w", b.addr, err)
	}
	defer conn.Close()
	if err := conn.SetDeadline(time.Now().Add(b.timeout)); err != nil {
		return botResponse{}, err
	}

	data, err := json.Marshal(req)
	if err != nil {
		return botResponse{}, err
	}
	if _, err := conn.Write(append(data, '\n')); err != nil {
		return botResponse{}, fmt.Errorf("send %s: %w", req.Command, err)
	}
	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return botResponse{}, fmt.Errorf("read %s reply: %w", req.Command, err)
	}
	var resp botResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return botResponse{}, fmt.Errorf("decode %s reply %q: %w", req.Command, line, err)
	}
	return resp, nil
}

// waitReady retries until the bot answers. The HTTP ping is preferred when
// an API address is known since it leaves no game state behind.
func (b *botClient) waitReady(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		err := b.ping(ctx)
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return err
		}
		if !sleepWithContext(ctx, time.Second) {
			return ctx.Err()
		}
	}
}

func (b *botClient) ping(ctx context.Context) error {
	if b.httpURL == "" {
		conn, err := (&net.Dialer{Timeout: b.timeout}).DialContext(ctx, "tcp", b.addr)
		if err != nil {
			return err
		}
		return conn.Close()
	}
	return b.getJSON(ctx, "/api/ping", nil)
}

// status reads the bot's view of a session; it needs the HTTP API.
func (b *botClient) status(ctx context.Context, session string) (sessionStatus, error) {
	var status sessionStatus
	err := b.getJSON(ctx, "/api/sessions/"+url.PathEscape(session)+"/status", &status)
	return status, err
}

func (b *botClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.httpURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("GET %s -> %d: %s", path, resp.StatusCode, string(body))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
