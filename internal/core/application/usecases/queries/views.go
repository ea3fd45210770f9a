// Package queries holds the read side of the freight service. Handlers read
// straight from PostgreSQL with raw SQL through *gorm.DB and return flat
// view structs; they never load aggregates or take the load lock.
package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/core/domain/model/pay"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LoadView is the read model of one load. LoadPay is the displayed load pay
// (base plus additional load pay); BaseLoadPay is what the operator entered.
type LoadView struct {
	ID               kernel.UUID
	LoadNumber       string
	ReferenceID      string
	Status           load.Status
	EquipmentType    kernel.EquipmentType
	CustomerBrokerID *kernel.UUID
	DispatcherID     *kernel.UUID
	DriverID         *kernel.UUID
	TruckID          *kernel.UUID
	TrailerID        *kernel.UUID
	UnitID           *kernel.UUID
	TeamID           *kernel.UUID
	Mile             *int
	EmptyMile        *int
	TotalMiles       *int
	LoadPay          *decimal.Decimal
	BaseLoadPay      *decimal.Decimal
	DriverPay        *decimal.Decimal
	TotalPay         *decimal.Decimal
	PerMile          *decimal.Decimal
	Notes            string
	CreatedDate      *time.Time
	UpdatedDate      *time.Time
	Documents        map[load.DocumentSlot]kernel.FileRef
	StopIDs          []kernel.UUID
	OtherPayIDs      []kernel.UUID
	Version          int64
}

// loadRow is the raw loads row as scanned.
type loadRow struct {
	id               uuid.UUID
	loadNumber       string
	referenceID      string
	status           string
	equipmentType    string
	customerBrokerID *uuid.UUID
	dispatcherID     *uuid.UUID
	driverID         *uuid.UUID
	truckID          *uuid.UUID
	trailerID        *uuid.UUID
	unitID           *uuid.UUID
	teamID           *uuid.UUID
	mile             *int
	emptyMile        *int
	totalMiles       *int
	loadPay          *decimal.Decimal
	driverPay        *decimal.Decimal
	manualTotalPay   *decimal.Decimal
	totalPay         *decimal.Decimal
	perMile          *decimal.Decimal
	notes            string
	createdDate      *time.Time
	updatedDate      *time.Time
	stopIDs          pq.StringArray
	otherPayIDs      pq.StringArray
	version          int64
}

const loadColumns = `
	id, load_number, reference_id, status, equipment_type,
	customer_broker_id, dispatcher_id, driver_id, truck_id, trailer_id, unit_id, team_id,
	mile, empty_mile, total_miles,
	load_pay, driver_pay, manual_total_pay, total_pay, per_mile,
	notes, created_date, updated_date, stop_ids, other_pay_ids, version`

func (r *loadRow) scan(row interface{ Scan(dest ...any) error }) error {
	return row.Scan(
		&r.id, &r.loadNumber, &r.referenceID, &r.status, &r.equipmentType,
		&r.customerBrokerID, &r.dispatcherID, &r.driverID, &r.truckID, &r.trailerID, &r.unitID, &r.teamID,
		&r.mile, &r.emptyMile, &r.totalMiles,
		&r.loadPay, &r.driverPay, &r.manualTotalPay, &r.totalPay, &r.perMile,
		&r.notes, &r.createdDate, &r.updatedDate, &r.stopIDs, &r.otherPayIDs, &r.version,
	)
}

// payInput is the reconciliation input the row carries, minus the items.
func (r *loadRow) payInput(items []*pay.OtherPay) pay.Input {
	return pay.Input{
		LoadPay:        r.loadPay,
		ManualTotalPay: r.manualTotalPay,
		Mile:           r.mile,
		EmptyMile:      r.emptyMile,
		TotalMiles:     r.totalMiles,
		Items:          items,
	}
}

func (r *loadRow) view(summary pay.Summary) (LoadView, error) {
	id, err := kernel.UUIDFromBytes(r.id[:])
	if err != nil {
		return LoadView{}, err
	}
	status, err := load.ParseStatus(r.status)
	if err != nil {
		return LoadView{}, err
	}

	v := LoadView{
		ID:            id,
		LoadNumber:    r.loadNumber,
		ReferenceID:   r.referenceID,
		Status:        status,
		EquipmentType: kernel.EquipmentType(r.equipmentType),
		Mile:          r.mile,
		EmptyMile:     r.emptyMile,
		TotalMiles:    summary.TotalMiles,
		LoadPay:       summary.LoadPay,
		BaseLoadPay:   r.loadPay,
		DriverPay:     r.driverPay,
		TotalPay:      summary.TotalPay,
		PerMile:       summary.PerMile,
		Notes:         r.notes,
		CreatedDate:   r.createdDate,
		UpdatedDate:   r.updatedDate,
		Documents:     make(map[load.DocumentSlot]kernel.FileRef),
		Version:       r.version,
	}

	refs := []struct {
		raw *uuid.UUID
		dst **kernel.UUID
	}{
		{r.customerBrokerID, &v.CustomerBrokerID},
		{r.dispatcherID, &v.DispatcherID},
		{r.driverID, &v.DriverID},
		{r.truckID, &v.TruckID},
		{r.trailerID, &v.TrailerID},
		{r.unitID, &v.UnitID},
		{r.teamID, &v.TeamID},
	}
	for _, ref := range refs {
		if *ref.dst, err = optionalID(ref.raw); err != nil {
			return LoadView{}, err
		}
	}

	if v.StopIDs, err = parseIDs(r.stopIDs); err != nil {
		return LoadView{}, err
	}
	if v.OtherPayIDs, err = parseIDs(r.otherPayIDs); err != nil {
		return LoadView{}, err
	}
	return v, nil
}

// fetchLoadRow reads one loads row or returns errs.ObjectNotFoundError.
func fetchLoadRow(ctx context.Context, db *gorm.DB, loadID kernel.UUID) (*loadRow, error) {
	rows, err := db.WithContext(ctx).Raw(`SELECT `+loadColumns+` FROM loads WHERE id = ?`, loadID.String()).Rows()
	if err != nil {
		return nil, errs.NewUpstreamError("get load", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, errs.NewUpstreamError("get load", err)
		}
		return nil, errs.NewObjectNotFoundError("load", loadID.String())
	}

	var r loadRow
	if err := r.scan(rows); err != nil {
		return nil, errs.NewUpstreamError("get load", err)
	}
	return &r, nil
}

// ensureLoadExists returns errs.ObjectNotFoundError when the load is unknown.
func ensureLoadExists(ctx context.Context, db *gorm.DB, loadID kernel.UUID) error {
	var exists bool
	err := db.WithContext(ctx).Raw(`SELECT EXISTS (SELECT 1 FROM loads WHERE id = ?)`, loadID.String()).Row().Scan(&exists)
	if err != nil {
		return errs.NewUpstreamError("check load", err)
	}
	if !exists {
		return errs.NewObjectNotFoundError("load", loadID.String())
	}
	return nil
}

// fetchOtherPays reads the load's items ordered by (created_at, id).
func fetchOtherPays(ctx context.Context, db *gorm.DB, loadID kernel.UUID) ([]*pay.OtherPay, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT id, amount, pay_type, note, created_at
		FROM other_pays
		WHERE load_id = ?
		ORDER BY created_at, id
	`, loadID.String()).Rows()
	if err != nil {
		return nil, errs.NewUpstreamError("list other pay", err)
	}
	defer rows.Close()

	items := make([]*pay.OtherPay, 0)
	for rows.Next() {
		var (
			rawID     uuid.UUID
			amount    decimal.Decimal
			payType   string
			note      string
			createdAt time.Time
		)
		if err := rows.Scan(&rawID, &amount, &payType, &note, &createdAt); err != nil {
			return nil, errs.NewUpstreamError("list other pay", err)
		}

		id, err := kernel.UUIDFromBytes(rawID[:])
		if err != nil {
			return nil, err
		}
		item, err := pay.NewOtherPay(id, loadID, amount, pay.Type(payType), note, createdAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.NewUpstreamError("list other pay", err)
	}
	return items, nil
}

// fileRef rebuilds a stored file reference; a NULL key means no file.
func fileRef(key, name, contentType sql.NullString, size sql.NullInt64) (*kernel.FileRef, error) {
	if !key.Valid || key.String == "" {
		return nil, nil
	}
	ref, err := kernel.NewFileRef(key.String, name.String, contentType.String, size.Int64)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func optionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseIDs(raw pq.StringArray) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound)
}
