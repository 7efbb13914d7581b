// Package site serves the embedded chat page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the chat page and its assets to mux at the root.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.Handle("GET /", http.FileServer(FS()))
}
