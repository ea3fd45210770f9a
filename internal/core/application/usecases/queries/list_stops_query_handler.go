package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/stop"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListStopsQueryHandler struct {
	db *gorm.DB
}

func NewListStopsQueryHandler(db *gorm.DB) ListStopsQueryHandler {
	return ListStopsQueryHandler{db: db}
}

// Handle orders stops by their position in the load's stop list. Rows the
// list does not mention yet follow in (created_at, id) order.
func (h ListStopsQueryHandler) Handle(ctx context.Context, query ListStopsQuery) ([]StopView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := ensureLoadExists(ctx, h.db, query.LoadID()); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.name,
			s.company_name,
			s.contact_name,
			s.phone,
			s.email,
			s.reference_id,
			s.address_line1,
			s.address_line2,
			s.address_city,
			s.address_state,
			s.address_zip_code,
			s.address_country,
			s.notes,
			s.appointment_date,
			s.fcfs,
			s.plus_hour,
			s.created_at
		FROM stops s
		JOIN loads l ON l.id = s.load_id
		WHERE s.load_id = ?
		ORDER BY array_position(l.stop_ids, s.id::text) NULLS LAST, s.created_at, s.id
	`, query.LoadID().String()).Rows()
	if err != nil {
		return nil, errs.NewUpstreamError("list stops", err)
	}
	defer rows.Close()

	stops := make([]StopView, 0)
	for rows.Next() {
		var (
			v    StopView
			id   uuid.UUID
			name string
			d    stop.Details
			appt *time.Time
			fcfs *time.Time
			plus *time.Time
		)
		err = rows.Scan(
			&id,
			&name,
			&d.CompanyName,
			&d.ContactName,
			&d.Phone,
			&d.Email,
			&d.ReferenceID,
			&d.Address.Line1,
			&d.Address.Line2,
			&d.Address.City,
			&d.Address.State,
			&d.Address.ZipCode,
			&d.Address.Country,
			&d.Notes,
			&appt,
			&fcfs,
			&plus,
			&v.CreatedAt,
		)
		if err != nil {
			return nil, errs.NewUpstreamError("list stops", err)
		}

		if v.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		v.LoadID = query.LoadID()
		v.Name = stop.Name(name)
		v.Details = d
		if fcfs != nil || plus != nil {
			v.FCFS, v.PlusHour = fcfs, plus
		} else {
			v.Appointment = appt
		}
		stops = append(stops, v)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewUpstreamError("list stops", err)
	}
	return stops, nil
}
