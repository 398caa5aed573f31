package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/teamgrid/teamgrid/internal/entity"
	directory_service "github.com/teamgrid/teamgrid/internal/use-case/directory-case"
)

const (
	readDeadline  = 2 * time.Minute
	writeDeadline = 10 * time.Second
)

// PresenceHandler upgrades heartbeat connections. Every heartbeat frame
// restamps the employee's presence (and lastSeenAt) through the directory;
// dropping the last connection marks them offline.
type PresenceHandler struct {
	Hub       *Hub
	Directory directory_service.DirectoryServiceContract
	upgrader  websocket.Upgrader
}

func NewPresenceHandler(hub *Hub, directory directory_service.DirectoryServiceContract) *PresenceHandler {
	return &PresenceHandler{
		Hub:       hub,
		Directory: directory,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Stats reports live connection counts for operational dashboards.
func (h *PresenceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Hub.Stats()); err != nil {
		log.Warn().Err(err).Msg("ws: failed to write hub stats")
	}
}

func (h *PresenceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	employeeID, err := uuid.Parse(r.URL.Query().Get("employee_id"))
	if err != nil {
		http.Error(w, "invalid employee_id", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws: upgrade failed")
		return
	}
	defer conn.Close()

	if first := h.Hub.Register(employeeID); first {
		if _, svcErr := h.Directory.UpdatePresence(r.Context(), employeeID, string(entity.PresenceOnline)); svcErr != nil {
			log.Warn().Err(svcErr).Str("employeeID", employeeID.String()).Msg("ws: failed to mark online")
		}
	}
	defer func() {
		if last := h.Hub.Unregister(employeeID); last {
			if _, svcErr := h.Directory.UpdatePresence(r.Context(), employeeID, string(entity.PresenceOffline)); svcErr != nil {
				log.Warn().Err(svcErr).Str("employeeID", employeeID.String()).Msg("ws: failed to mark offline")
			}
		}
	}()

	for {
		conn.SetReadDeadline(time.Now().Add(readDeadline))

		var heartbeat HeartbeatMessage
		if err := conn.ReadJSON(&heartbeat); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("employeeID", employeeID.String()).Msg("ws: unexpected close")
			}
			return
		}

		presence := heartbeat.Presence
		if presence == "" {
			presence = string(entity.PresenceOnline)
		}

		if _, svcErr := h.Directory.UpdatePresence(r.Context(), employeeID, presence); svcErr != nil {
			log.Warn().Err(svcErr).Str("employeeID", employeeID.String()).Msg("ws: heartbeat rejected")
			continue
		}

		conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		if err := conn.WriteJSON(AckMessage{Type: "presence_ack", Presence: presence}); err != nil {
			return
		}
	}
}
