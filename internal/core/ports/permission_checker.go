package ports

import "freight/internal/core/application/actor"

// PermissionChecker answers whether a user holds a capability. Only the
// inbound layer consults it when it builds the request actor.
type PermissionChecker interface {
	HasCapability(userID string, capability actor.Capability) bool
}
