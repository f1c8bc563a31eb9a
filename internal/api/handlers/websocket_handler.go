package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/isdelr/devconnect-be/internal/auth"
	ws "github.com/isdelr/devconnect-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// FeedHandler upgrades authenticated requests to websocket feed subscriptions.
type FeedHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

// NewFeedHandler creates a FeedHandler accepting connections from allowedOrigins.
// Requests without an Origin header (non-browser clients) are always accepted.
func NewFeedHandler(hub *ws.Hub, allowedOrigins []string) *FeedHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &FeedHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
	}
}

// Serve handles the websocket connection request.
func (h *FeedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFrom(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	ws.NewClient(h.hub, conn, identity.ID).Serve()
}
