package events

import (
	"context"
	"log"
)

// LoginEvent is published once per successful authentication. The
// session ID is the guest token the client presented at login time,
// empty when the client had none.
type LoginEvent struct {
	UserID    string
	SessionID string
}

type LoginHandler func(ctx context.Context, event LoginEvent) error

// LoginDispatcher delivers login events synchronously to a single
// registered consumer. There is deliberately no fan-out: the cart merge
// is the only listener this application has.
type LoginDispatcher struct {
	handler LoginHandler
}

func NewLoginDispatcher() *LoginDispatcher {
	return &LoginDispatcher{}
}

func (d *LoginDispatcher) Subscribe(handler LoginHandler) {
	d.handler = handler
}

func (d *LoginDispatcher) Publish(ctx context.Context, event LoginEvent) {
	if d.handler == nil {
		return
	}
	if err := d.handler(ctx, event); err != nil {
		log.Printf("LoginDispatcher: handler failed for user %s: %v", event.UserID, err)
	}
}
