package socket

import (
	"context"
	"log"
	"time"

	"midway_server/models"
	"midway_server/services"

	socketio "github.com/googollee/go-socket.io"
)

// PresenceEvent is the inbound real-time presence payload
type PresenceEvent struct {
	UserID      string  `json:"userId"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	IsOnline    bool    `json:"isOnline"`
	DisplayName string  `json:"displayName,omitempty"`
	AvatarRef   string  `json:"avatarRef,omitempty"`
}

// NewSocketServer wires the real-time transport into the presence
// registry. The engine only reacts to delivered events; connection
// management stays with the socket library.
func NewSocketServer(presence *services.PresenceService) *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(s socketio.Conn) error {
		log.Println("✅ Socket connected:", s.ID())
		return nil
	})

	// register binds the socket to a user so notifications can target a
	// per-user room and a disconnect can mark the right user offline.
	server.OnEvent("/", "register", func(s socketio.Conn, userID string) {
		if userID == "" {
			log.Println("❌ Invalid userId in register request")
			return
		}
		s.SetContext(userID)
		s.Join(userID)
		log.Printf("👥 Socket %s registered as user %s", s.ID(), userID)
	})

	server.OnEvent("/", "presence", func(s socketio.Conn, ev PresenceEvent) {
		if ev.UserID == "" {
			log.Println("❌ Invalid userId in presence event")
			return
		}
		coord := models.Coordinate{Latitude: ev.Latitude, Longitude: ev.Longitude}
		if !coord.IsValid() {
			log.Printf("❌ Ignoring presence event for %s with out-of-range coordinate", ev.UserID)
			return
		}
		presence.Upsert(context.Background(), models.UserPresence{
			UserID:      ev.UserID,
			Coordinate:  coord,
			IsOnline:    ev.IsOnline,
			LastSeen:    time.Now().UTC(),
			DisplayName: ev.DisplayName,
			AvatarRef:   ev.AvatarRef,
		})
	})

	server.OnEvent("/", "joinMatch", func(s socketio.Conn, matchID string) {
		if matchID == "" {
			log.Println("❌ Invalid matchId in joinMatch request")
			return
		}
		s.Join(matchID)
		log.Printf("👥 Socket %s joined match %s", s.ID(), matchID)
	})

	server.OnError("/", func(s socketio.Conn, err error) {
		log.Println("❌ Socket error:", err)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		if userID, ok := s.Context().(string); ok && userID != "" {
			presence.MarkOffline(context.Background(), userID, time.Now().UTC())
			log.Printf("❌ Socket disconnected, user %s marked offline (%s)", userID, reason)
			return
		}
		log.Println("❌ Socket disconnected:", s.ID())
	})

	return server
}
