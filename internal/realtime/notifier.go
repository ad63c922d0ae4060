package realtime

import "buildledger/internal/domain/deletion"

// DeletionNotifier fans deletion workflow events out through a Hub: new
// requests go to admins, decisions go to admins and the requester.
type DeletionNotifier struct {
	hub *Hub
}

func NewDeletionNotifier(hub *Hub) *DeletionNotifier {
	return &DeletionNotifier{hub: hub}
}

func (n *DeletionNotifier) NotifyDeletionRequested(req deletion.Request) {
	n.hub.BroadcastToAdmins(Event{Type: EventDeletionRequested, Payload: req})
}

func (n *DeletionNotifier) NotifyDeletionReviewed(req deletion.Request) {
	event := Event{Type: EventDeletionReviewed, Payload: req}
	n.hub.BroadcastToAdmins(event)
	n.hub.deliver(event, func(c *connection) bool { return !c.admin && c.userID == req.RequestedBy })
}
