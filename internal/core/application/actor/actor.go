// Package actor carries the identity and capabilities of the caller through
// context.Context. The HTTP layer builds the Actor once per request.
package actor

import (
	"context"
	"slices"
	"strings"
)

// Capability names an operation a user may be granted.
type Capability string

const (
	LoadCreate   Capability = "load_create"
	LoadUpdate   Capability = "load_update"
	StatusUpdate Capability = "status_update"
	ChatCreate   Capability = "chat_create"
	ChatUpdate   Capability = "chat_update"
	FleetUpdate  Capability = "fleet_update"
)

// Capabilities lists every known capability.
func Capabilities() []Capability {
	return []Capability{LoadCreate, LoadUpdate, StatusUpdate, ChatCreate, ChatUpdate, FleetUpdate}
}

// Actor is the caller of a request.
type Actor struct {
	userID       string
	capabilities map[Capability]struct{}
}

func New(userID string, capabilities ...Capability) Actor {
	set := make(map[Capability]struct{}, len(capabilities))
	for _, c := range capabilities {
		set[c] = struct{}{}
	}
	return Actor{userID: strings.TrimSpace(userID), capabilities: set}
}

func (a Actor) UserID() string { return a.userID }

// IsAnonymous reports whether no user id is attached.
func (a Actor) IsAnonymous() bool { return a.userID == "" }

func (a Actor) Can(c Capability) bool {
	_, ok := a.capabilities[c]
	return ok
}

// Granted returns the actor's capabilities in a stable order.
func (a Actor) Granted() []Capability {
	out := make([]Capability, 0, len(a.capabilities))
	for c := range a.capabilities {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

type ctxKey struct{}

// WithActor returns a context carrying a.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, ctxKey{}, a)
}

// FromContext returns the actor in ctx, or an anonymous one.
func FromContext(ctx context.Context) Actor {
	if a, ok := ctx.Value(ctxKey{}).(Actor); ok {
		return a
	}
	return Actor{}
}
