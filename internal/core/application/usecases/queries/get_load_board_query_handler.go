package queries

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetLoadBoardQueryHandler struct {
	db *gorm.DB
}

func NewGetLoadBoardQueryHandler(db *gorm.DB) GetLoadBoardQueryHandler {
	return GetLoadBoardQueryHandler{db: db}
}

// Handle returns the newest loads first; loads without a created date go last.
func (h GetLoadBoardQueryHandler) Handle(ctx context.Context, query GetLoadBoardQuery) ([]LoadBoardItem, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			id,
			load_number,
			reference_id,
			status,
			equipment_type,
			driver_id,
			unit_id,
			total_miles,
			total_pay,
			per_mile,
			COALESCE(cardinality(stop_ids), 0),
			created_date
		FROM loads`
	var args []any
	if statuses := query.Statuses(); len(statuses) > 0 {
		tokens := make(pq.StringArray, len(statuses))
		for i, s := range statuses {
			tokens[i] = s.String()
		}
		sqlText += `
		WHERE status = ANY(?)`
		args = append(args, tokens)
	}
	sqlText += `
		ORDER BY created_date DESC NULLS LAST, id`

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, errs.NewUpstreamError("get load board", err)
	}
	defer rows.Close()

	items := make([]LoadBoardItem, 0)
	for rows.Next() {
		var (
			item          LoadBoardItem
			id            uuid.UUID
			status        string
			equipmentType string
			driverID      *uuid.UUID
			unitID        *uuid.UUID
			totalMiles    *int
			totalPay      *decimal.Decimal
			perMile       *decimal.Decimal
			createdDate   *time.Time
		)
		err = rows.Scan(
			&id,
			&item.LoadNumber,
			&item.ReferenceID,
			&status,
			&equipmentType,
			&driverID,
			&unitID,
			&totalMiles,
			&totalPay,
			&perMile,
			&item.StopCount,
			&createdDate,
		)
		if err != nil {
			return nil, errs.NewUpstreamError("get load board", err)
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.Status, err = load.ParseStatus(status); err != nil {
			return nil, err
		}
		if item.DriverID, err = optionalID(driverID); err != nil {
			return nil, err
		}
		if item.UnitID, err = optionalID(unitID); err != nil {
			return nil, err
		}
		item.EquipmentType = kernel.EquipmentType(equipmentType)
		item.TotalMiles = totalMiles
		item.TotalPay = totalPay
		item.PerMile = perMile
		item.CreatedDate = createdDate
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, errs.NewUpstreamError("get load board", err)
	}
	return items, nil
}
