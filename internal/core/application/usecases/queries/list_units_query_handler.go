package queries

import (
	"context"
	"database/sql"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListUnitsQueryHandler struct {
	db *gorm.DB
}

func NewListUnitsQueryHandler(db *gorm.DB) ListUnitsQueryHandler {
	return ListUnitsQueryHandler{db: db}
}

func (h ListUnitsQueryHandler) Handle(ctx context.Context, query ListUnitsQuery) ([]UnitView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			u.id,
			u.unit_number,
			u.team_id,
			u.truck_id,
			t.number,
			u.trailer_id,
			tr.number,
			u.driver_id,
			d.full_name,
			u.version
		FROM units u
		LEFT JOIN trucks t ON t.id = u.truck_id
		LEFT JOIN trailers tr ON tr.id = u.trailer_id
		LEFT JOIN drivers d ON d.id = u.driver_id
		ORDER BY u.unit_number, u.id
	`).Rows()
	if err != nil {
		return nil, errs.NewUpstreamError("list units", err)
	}
	defer rows.Close()

	units := make([]UnitView, 0)
	for rows.Next() {
		var (
			v            UnitView
			id           uuid.UUID
			teamID       *uuid.UUID
			truckID      *uuid.UUID
			truckLabel   sql.NullString
			trailerID    *uuid.UUID
			trailerLabel sql.NullString
			driverID     *uuid.UUID
			driverLabel  sql.NullString
		)
		err = rows.Scan(&id, &v.UnitNumber, &teamID, &truckID, &truckLabel, &trailerID, &trailerLabel,
			&driverID, &driverLabel, &v.Version)
		if err != nil {
			return nil, errs.NewUpstreamError("list units", err)
		}

		if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if v.TeamID, err = optionalID(teamID); err != nil {
			return nil, err
		}
		if v.Trucks, err = slotView(truckID, truckLabel); err != nil {
			return nil, err
		}
		if v.Trailers, err = slotView(trailerID, trailerLabel); err != nil {
			return nil, err
		}
		if v.Drivers, err = slotView(driverID, driverLabel); err != nil {
			return nil, err
		}
		units = append(units, v)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewUpstreamError("list units", err)
	}
	return units, nil
}

func slotView(raw *uuid.UUID, label sql.NullString) ([]ResourceView, error) {
	id, err := optionalID(raw)
	if err != nil || id == nil {
		return []ResourceView{}, err
	}
	return []ResourceView{{ID: *id, Label: label.String}}, nil
}
