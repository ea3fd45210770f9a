package postgres

import (
	"freight/internal/adapters/out/postgres/chatrepo"
	"freight/internal/adapters/out/postgres/fleetrepo"
	"freight/internal/adapters/out/postgres/loadrepo"
	"freight/internal/adapters/out/postgres/payrepo"
	"freight/internal/adapters/out/postgres/stoprepo"

	"gorm.io/gorm"
)

// Models lists every table the service owns, in creation order.
func Models() []any {
	return []any{
		&loadrepo.LoadDTO{},
		&loadrepo.DocumentDTO{},
		&stoprepo.StopDTO{},
		&payrepo.OtherPayDTO{},
		&chatrepo.MessageDTO{},
		&fleetrepo.UnitDTO{},
		&fleetrepo.TruckDTO{},
		&fleetrepo.TrailerDTO{},
		&fleetrepo.DriverDTO{},
	}
}

// Migrate creates or extends the tables. It never drops columns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// TableNames lists the owned tables, for test cleanup.
func TableNames() []string {
	return []string{
		"loads", "load_documents", "stops", "other_pays", "chat_messages",
		"units", "trucks", "trailers", "drivers",
	}
}
