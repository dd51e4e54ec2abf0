package httpserver

import "errors"

var (
	// ErrStart indicates the server failed to start or crashed while serving.
	ErrStart = errors.New("httpserver: start failed")
	// ErrShutdown indicates the graceful shutdown did not complete cleanly.
	ErrShutdown = errors.New("httpserver: shutdown failed")
)
