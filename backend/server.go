package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"

	"github.com/rs/zerolog/log"
)

// ServeTCP accepts one connection at a time: read one line, answer one
// line, close. Requests never overlap, which is what keeps the game state
// consistent. It returns when ctx is cancelled.
func ServeTCP(ctx context.Context, listener net.Listener, dispatcher *Dispatcher) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			listener.Close()
		case <-done:
		}
	}()

	log.Info().Str("addr", listener.Addr().String()).Msg("tcp-listening")
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Warn().Err(err).Msg("accept-failed")
			continue
		}
		handleConn(conn, dispatcher)
	}
}

func handleConn(conn net.Conn, dispatcher *Dispatcher) {
	defer conn.Close()
	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		log.Debug().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("read-failed")
		return
	}
	line = bytes.TrimRight(line, "\r\n")
	if len(bytes.TrimSpace(line)) == 0 {
		return
	}
	response := dispatcher.Handle(line)
	data, err := json.Marshal(response)
	if err != nil {
		log.Error().Err(err).Msg("encode-response-failed")
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		log.Debug().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("write-failed")
	}
}
