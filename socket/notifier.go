package socket

import (
	"log"

	"midway_server/models"

	socketio "github.com/googollee/go-socket.io"
)

// Notifier relays match lifecycle events over socket.io to the per-user
// rooms established by the register event. Delivery is best-effort; a
// party with no live socket simply misses the push.
type Notifier struct {
	Server *socketio.Server
}

// NewNotifier creates a socket-backed notifier
func NewNotifier(server *socketio.Server) *Notifier {
	return &Notifier{Server: server}
}

// NotifyMatchRequested pushes a new pending match to the target
func (n *Notifier) NotifyMatchRequested(match models.Match) {
	n.emit(match.TargetID, "matchRequested", match)
}

// NotifyMatchAccepted tells the requester the target accepted
func (n *Notifier) NotifyMatchAccepted(match models.Match) {
	n.emit(match.RequesterID, "matchAccepted", match)
}

// NotifyMatchRejected tells the requester the target rejected
func (n *Notifier) NotifyMatchRejected(match models.Match) {
	n.emit(match.RequesterID, "matchRejected", match)
}

// NotifyMatchCancelled tells the target the requester withdrew
func (n *Notifier) NotifyMatchCancelled(match models.Match) {
	n.emit(match.TargetID, "matchCancelled", match)
}

// NotifyBothConfirmed tells both parties the meet-up completed
func (n *Notifier) NotifyBothConfirmed(match models.Match) {
	n.emit(match.RequesterID, "bothConfirmed", match)
	n.emit(match.TargetID, "bothConfirmed", match)
}

func (n *Notifier) emit(userID, event string, match models.Match) {
	if ok := n.Server.BroadcastToRoom("/", userID, event, match); !ok {
		log.Printf("⚠️ No live socket for user %s, %s not delivered", userID, event)
	}
}
