// Package commands contains the operations that change freight state. Every
// command is built through a validating constructor and run by a handler that
// owns one unit of work.
//
// Handlers that mutate a load take the per-load lock first, then read the
// load, change it and write it back under its version number. A lost race
// surfaces as errs.ConflictError; nothing is retried.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of work interfaces, each limited to the repositories a group of
// handlers needs.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	LoadRepoFactory interface {
		LoadRepository() ports.LoadRepository
	}

	StopRepoFactory interface {
		StopRepository() ports.StopRepository
	}

	OtherPayRepoFactory interface {
		OtherPayRepository() ports.OtherPayRepository
	}

	ChatRepoFactory interface {
		ChatRepository() ports.ChatRepository
	}

	UnitRepoFactory interface {
		UnitRepository() ports.UnitRepository
	}

	FleetRepoFactory interface {
		FleetRepository() ports.FleetRepository
	}

	// LoadUoW covers commands that touch only the load row.
	LoadUoW interface {
		TxManager
		LoadRepoFactory
	}

	LoadUoWFactory interface {
		Create() LoadUoW
	}

	// ItineraryUoW covers stop commands.
	ItineraryUoW interface {
		TxManager
		LoadRepoFactory
		StopRepoFactory
	}

	ItineraryUoWFactory interface {
		Create() ItineraryUoW
	}

	// PayUoW covers commands that trigger pay reconciliation.
	PayUoW interface {
		TxManager
		LoadRepoFactory
		OtherPayRepoFactory
	}

	PayUoWFactory interface {
		Create() PayUoW
	}

	// AssignmentUoW covers unit selection on a load.
	AssignmentUoW interface {
		TxManager
		LoadRepoFactory
		UnitRepoFactory
		FleetRepoFactory
	}

	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// ChatUoW covers the chat channel.
	ChatUoW interface {
		TxManager
		LoadRepoFactory
		ChatRepoFactory
	}

	ChatUoWFactory interface {
		Create() ChatUoW
	}

	// FleetUoW covers unit and resource registration.
	FleetUoW interface {
		TxManager
		UnitRepoFactory
		FleetRepoFactory
	}

	FleetUoWFactory interface {
		Create() FleetUoW
	}
)
