// Package permissions grants capabilities from a static table read from
// configuration.
//
// The grant string lists users separated by ';'. Each entry is
// "<user id>:<capability>,<capability>"; "*" grants every capability:
//
//	dispatcher-1:load_create,load_update,status_update;driver-7:chat_create;admin:*
package permissions

import (
	"fmt"
	"slices"
	"strings"

	"freight/internal/core/application/actor"
	"freight/internal/pkg/errs"
)

const wildcard = "*"

type StaticChecker struct {
	grants map[string]map[actor.Capability]struct{}
}

// NewStaticChecker parses a grant string. An empty string grants nothing.
func NewStaticChecker(grants string) (*StaticChecker, error) {
	c := &StaticChecker{grants: make(map[string]map[actor.Capability]struct{})}

	for _, entry := range strings.Split(grants, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		userID, list, ok := strings.Cut(entry, ":")
		userID = strings.TrimSpace(userID)
		if !ok || userID == "" {
			return nil, errs.NewValueIsInvalidErrorWithCause("grants", fmt.Errorf("malformed entry %q", entry))
		}

		set := c.grants[userID]
		if set == nil {
			set = make(map[actor.Capability]struct{})
			c.grants[userID] = set
		}
		for _, raw := range strings.Split(list, ",") {
			name := strings.TrimSpace(raw)
			switch {
			case name == "":
				continue
			case name == wildcard:
				for _, capability := range actor.Capabilities() {
					set[capability] = struct{}{}
				}
			case slices.Contains(actor.Capabilities(), actor.Capability(name)):
				set[actor.Capability(name)] = struct{}{}
			default:
				return nil, errs.NewValueIsInvalidErrorWithCause("grants", fmt.Errorf("unknown capability %q for %s", name, userID))
			}
		}
	}
	return c, nil
}

func (c *StaticChecker) HasCapability(userID string, capability actor.Capability) bool {
	_, ok := c.grants[strings.TrimSpace(userID)][capability]
	return ok
}

// Granted returns the user's capabilities in declaration order.
func (c *StaticChecker) Granted(userID string) []actor.Capability {
	var out []actor.Capability
	for _, capability := range actor.Capabilities() {
		if c.HasCapability(userID, capability) {
			out = append(out, capability)
		}
	}
	return out
}
