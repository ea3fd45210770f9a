package http

import (
	"time"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/chat"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/core/domain/model/pay"
	"freight/internal/core/domain/model/stop"
	"freight/internal/pkg/patch"

	"github.com/shopspring/decimal"
)

// Requests. Absent keys leave a field untouched, null clears it.

type LoadChangesRequest struct {
	LoadNumber    patch.Field[string]               `json:"load_id"`
	ReferenceID   patch.Field[string]               `json:"reference_id"`
	EquipmentType patch.Field[kernel.EquipmentType] `json:"equipment_type"`

	CustomerBroker patch.Field[kernel.UUID] `json:"customer_broker"`
	Dispatcher     patch.Field[kernel.UUID] `json:"dispatcher"`
	Driver         patch.Field[kernel.UUID] `json:"driver"`
	Truck          patch.Field[kernel.UUID] `json:"truck"`
	Trailer        patch.Field[kernel.UUID] `json:"trailer"`

	Mile       patch.Field[int] `json:"mile"`
	EmptyMile  patch.Field[int] `json:"empty_mile"`
	TotalMiles patch.Field[int] `json:"total_miles"`

	LoadPay   patch.Field[decimal.Decimal] `json:"load_pay"`
	DriverPay patch.Field[decimal.Decimal] `json:"driver_pay"`
	TotalPay  patch.Field[decimal.Decimal] `json:"total_pay"`

	Notes       patch.Field[string]    `json:"notes"`
	CreatedDate patch.Field[time.Time] `json:"created_date"`
	UpdatedDate patch.Field[time.Time] `json:"updated_date"`
}

func (r LoadChangesRequest) changes() load.Changes {
	return load.Changes{
		LoadNumber:       r.LoadNumber,
		ReferenceID:      r.ReferenceID,
		EquipmentType:    r.EquipmentType,
		CustomerBrokerID: r.CustomerBroker,
		DispatcherID:     r.Dispatcher,
		DriverID:         r.Driver,
		TruckID:          r.Truck,
		TrailerID:        r.Trailer,
		Mile:             r.Mile,
		EmptyMile:        r.EmptyMile,
		TotalMiles:       r.TotalMiles,
		LoadPay:          r.LoadPay,
		DriverPay:        r.DriverPay,
		TotalPay:         r.TotalPay,
		Notes:            r.Notes,
		CreatedDate:      r.CreatedDate,
		UpdatedDate:      r.UpdatedDate,
	}
}

type SetStatusRequest struct {
	Status string `json:"status"`
}

type CreateStopRequest struct {
	StopName    string     `json:"stop_name"`
	CompanyName string     `json:"company_name"`
	ContactName string     `json:"contact_name"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	ReferenceID string     `json:"reference_id"`
	Address1    string     `json:"address1"`
	Address2    string     `json:"address2"`
	City        string     `json:"city"`
	State       string     `json:"state"`
	ZipCode     string     `json:"zip_code"`
	Country     string     `json:"country"`
	Notes       string     `json:"notes"`
	Appointment *time.Time `json:"appointmentdate"`
	FCFS        *time.Time `json:"fcfs"`
	PlusHour    *time.Time `json:"plus_hour"`
}

func (r CreateStopRequest) details() stop.Details {
	return stop.Details{
		CompanyName: r.CompanyName,
		ContactName: r.ContactName,
		Phone:       r.Phone,
		Email:       r.Email,
		ReferenceID: r.ReferenceID,
		Address: stop.Address{
			Line1:   r.Address1,
			Line2:   r.Address2,
			City:    r.City,
			State:   r.State,
			ZipCode: r.ZipCode,
			Country: r.Country,
		},
		Notes: r.Notes,
	}
}

type UpdateStopRequest struct {
	StopName    *string                `json:"stop_name"`
	CompanyName patch.Field[string]    `json:"company_name"`
	ContactName patch.Field[string]    `json:"contact_name"`
	Phone       patch.Field[string]    `json:"phone"`
	Email       patch.Field[string]    `json:"email"`
	ReferenceID patch.Field[string]    `json:"reference_id"`
	Address1    patch.Field[string]    `json:"address1"`
	Address2    patch.Field[string]    `json:"address2"`
	City        patch.Field[string]    `json:"city"`
	State       patch.Field[string]    `json:"state"`
	ZipCode     patch.Field[string]    `json:"zip_code"`
	Country     patch.Field[string]    `json:"country"`
	Notes       patch.Field[string]    `json:"notes"`
	Appointment patch.Field[time.Time] `json:"appointmentdate"`
	FCFS        patch.Field[time.Time] `json:"fcfs"`
	PlusHour    patch.Field[time.Time] `json:"plus_hour"`
}

func (r UpdateStopRequest) detailsChange() stop.DetailsChange {
	return stop.DetailsChange{
		CompanyName: r.CompanyName,
		ContactName: r.ContactName,
		Phone:       r.Phone,
		Email:       r.Email,
		ReferenceID: r.ReferenceID,
		Line1:       r.Address1,
		Line2:       r.Address2,
		City:        r.City,
		State:       r.State,
		ZipCode:     r.ZipCode,
		Country:     r.Country,
		Notes:       r.Notes,
	}
}

func (r UpdateStopRequest) scheduleChange() stop.ScheduleChange {
	return stop.ScheduleChange{
		Appointment: r.Appointment,
		FCFS:        r.FCFS,
		PlusHour:    r.PlusHour,
	}
}

type AddOtherPayRequest struct {
	Amount  *decimal.Decimal `json:"amount"`
	PayType string           `json:"pay_type"`
	Note    string           `json:"note"`
}

type SelectUnitRequest struct {
	Unit kernel.UUID `json:"unit"`
}

type MessageRequest struct {
	Message *string `json:"message"`
}

type CreateUnitRequest struct {
	UnitNumber string       `json:"unit_number"`
	TeamID     *kernel.UUID `json:"team_id"`
}

type AssignResourceRequest struct {
	ID       kernel.UUID `json:"id"`
	Reassign bool        `json:"reassign"`
}

type RegisterTruckRequest struct {
	Number string `json:"number"`
}

type RegisterTrailerRequest struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

type RegisterDriverRequest struct {
	FullName string `json:"full_name"`
}

// Responses.

type FileResponse struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

func fileResponse(ref *kernel.FileRef) *FileResponse {
	if ref == nil {
		return nil
	}
	return &FileResponse{Key: ref.Key(), Name: ref.Name(), ContentType: ref.ContentType(), Size: ref.Size()}
}

type LoadResponse struct {
	ID             kernel.UUID          `json:"id"`
	LoadNumber     string               `json:"load_id"`
	ReferenceID    string               `json:"reference_id"`
	Status         string               `json:"status"`
	EquipmentType  kernel.EquipmentType `json:"equipment_type"`
	CustomerBroker *kernel.UUID         `json:"customer_broker"`
	Dispatcher     *kernel.UUID         `json:"dispatcher"`
	Driver         *kernel.UUID         `json:"driver"`
	Truck          *kernel.UUID         `json:"truck"`
	Trailer        *kernel.UUID         `json:"trailer"`
	Unit           *kernel.UUID         `json:"unit"`
	Team           *kernel.UUID         `json:"team"`

	Mile       *int `json:"mile"`
	EmptyMile  *int `json:"empty_mile"`
	TotalMiles *int `json:"total_miles"`

	LoadPay           *decimal.Decimal `json:"load_pay"`
	BaseLoadPay       *decimal.Decimal `json:"base_load_pay"`
	DriverPay         *decimal.Decimal `json:"driver_pay"`
	TotalPay          *decimal.Decimal `json:"total_pay"`
	PerMile           *decimal.Decimal `json:"per_mile"`
	TotalOtherPay     decimal.Decimal  `json:"total_other_pay"`
	AdditionalLoadPay decimal.Decimal  `json:"additional_load_pay"`
	PayIsReadOnly     bool             `json:"pay_is_read_only"`

	Notes       string     `json:"notes"`
	CreatedDate *time.Time `json:"created_date"`
	UpdatedDate *time.Time `json:"updated_date"`

	RateCon           *FileResponse `json:"rate_con"`
	BOL               *FileResponse `json:"bol"`
	POD               *FileResponse `json:"pod"`
	CommercialInvoice *FileResponse `json:"commercial_invoice"`

	Stops     []kernel.UUID `json:"stop"`
	OtherPays []kernel.UUID `json:"other_pay"`
	Version   int64         `json:"version"`
}

func loadResponse(r queries.GetLoadQueryResponse) LoadResponse {
	v := r.Load
	doc := func(slot load.DocumentSlot) *FileResponse {
		ref, ok := v.Documents[slot]
		if !ok {
			return nil
		}
		return fileResponse(&ref)
	}
	return LoadResponse{
		ID:                v.ID,
		LoadNumber:        v.LoadNumber,
		ReferenceID:       v.ReferenceID,
		Status:            v.Status.String(),
		EquipmentType:     v.EquipmentType,
		CustomerBroker:    v.CustomerBrokerID,
		Dispatcher:        v.DispatcherID,
		Driver:            v.DriverID,
		Truck:             v.TruckID,
		Trailer:           v.TrailerID,
		Unit:              v.UnitID,
		Team:              v.TeamID,
		Mile:              v.Mile,
		EmptyMile:         v.EmptyMile,
		TotalMiles:        v.TotalMiles,
		LoadPay:           v.LoadPay,
		BaseLoadPay:       v.BaseLoadPay,
		DriverPay:         v.DriverPay,
		TotalPay:          v.TotalPay,
		PerMile:           v.PerMile,
		TotalOtherPay:     r.Pay.TotalOtherPay,
		AdditionalLoadPay: r.Pay.AdditionalLoadPay,
		PayIsReadOnly:     r.Pay.HasOtherPay,
		Notes:             v.Notes,
		CreatedDate:       v.CreatedDate,
		UpdatedDate:       v.UpdatedDate,
		RateCon:           doc(load.DocRateConfirmation),
		BOL:               doc(load.DocBillOfLading),
		POD:               doc(load.DocProofOfDelivery),
		CommercialInvoice: doc(load.DocCommercialInvoice),
		Stops:             nonNil(v.StopIDs),
		OtherPays:         nonNil(v.OtherPayIDs),
		Version:           v.Version,
	}
}

type LoadBoardItemResponse struct {
	ID            kernel.UUID          `json:"id"`
	LoadNumber    string               `json:"load_id"`
	ReferenceID   string               `json:"reference_id"`
	Status        string               `json:"status"`
	EquipmentType kernel.EquipmentType `json:"equipment_type"`
	Driver        *kernel.UUID         `json:"driver"`
	Unit          *kernel.UUID         `json:"unit"`
	TotalMiles    *int                 `json:"total_miles"`
	TotalPay      *decimal.Decimal     `json:"total_pay"`
	PerMile       *decimal.Decimal     `json:"per_mile"`
	StopCount     int                  `json:"stop_count"`
	CreatedDate   *time.Time           `json:"created_date"`
}

func loadBoardResponse(items []queries.LoadBoardItem) []LoadBoardItemResponse {
	out := make([]LoadBoardItemResponse, len(items))
	for i, item := range items {
		out[i] = LoadBoardItemResponse{
			ID:            item.ID,
			LoadNumber:    item.LoadNumber,
			ReferenceID:   item.ReferenceID,
			Status:        item.Status.String(),
			EquipmentType: item.EquipmentType,
			Driver:        item.DriverID,
			Unit:          item.UnitID,
			TotalMiles:    item.TotalMiles,
			TotalPay:      item.TotalPay,
			PerMile:       item.PerMile,
			StopCount:     item.StopCount,
			CreatedDate:   item.CreatedDate,
		}
	}
	return out
}

// StopResponse always carries both schedule groups; the group that is not in
// use is null.
type StopResponse struct {
	ID          kernel.UUID `json:"id"`
	LoadID      kernel.UUID `json:"load_id"`
	StopName    string      `json:"stop_name"`
	CompanyName string      `json:"company_name"`
	ContactName string      `json:"contact_name"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	ReferenceID string      `json:"reference_id"`
	Address1    string      `json:"address1"`
	Address2    string      `json:"address2"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	ZipCode     string      `json:"zip_code"`
	Country     string      `json:"country"`
	Notes       string      `json:"notes"`
	Appointment *time.Time  `json:"appointmentdate"`
	FCFS        *time.Time  `json:"fcfs"`
	PlusHour    *time.Time  `json:"plus_hour"`
	CreatedAt   time.Time   `json:"created_at"`
}

func stopsResponse(views []queries.StopView) []StopResponse {
	out := make([]StopResponse, len(views))
	for i, v := range views {
		out[i] = StopResponse{
			ID:          v.ID,
			LoadID:      v.LoadID,
			StopName:    v.Name.String(),
			CompanyName: v.Details.CompanyName,
			ContactName: v.Details.ContactName,
			Phone:       v.Details.Phone,
			Email:       v.Details.Email,
			ReferenceID: v.Details.ReferenceID,
			Address1:    v.Details.Address.Line1,
			Address2:    v.Details.Address.Line2,
			City:        v.Details.Address.City,
			State:       v.Details.Address.State,
			ZipCode:     v.Details.Address.ZipCode,
			Country:     v.Details.Address.Country,
			Notes:       v.Details.Notes,
			Appointment: v.Appointment,
			FCFS:        v.FCFS,
			PlusHour:    v.PlusHour,
			CreatedAt:   v.CreatedAt,
		}
	}
	return out
}

type OtherPayResponse struct {
	ID        kernel.UUID     `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	PayType   string          `json:"pay_type"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

type PaySummaryResponse struct {
	TotalOtherPay     decimal.Decimal  `json:"total_other_pay"`
	AdditionalLoadPay decimal.Decimal  `json:"additional_load_pay"`
	LoadPay           *decimal.Decimal `json:"load_pay"`
	TotalPay          *decimal.Decimal `json:"total_pay"`
	TotalMiles        *int             `json:"total_miles"`
	PerMile           *decimal.Decimal `json:"per_mile"`
}

func paySummaryResponse(s pay.Summary) PaySummaryResponse {
	return PaySummaryResponse{
		TotalOtherPay:     s.TotalOtherPay,
		AdditionalLoadPay: s.AdditionalLoadPay,
		LoadPay:           s.LoadPay,
		TotalPay:          s.TotalPay,
		TotalMiles:        s.TotalMiles,
		PerMile:           s.PerMile,
	}
}

type OtherPayListResponse struct {
	Items   []OtherPayResponse `json:"items"`
	Summary PaySummaryResponse `json:"summary"`
}

func otherPayListResponse(r queries.ListOtherPayQueryResponse) OtherPayListResponse {
	items := make([]OtherPayResponse, len(r.Items))
	for i, v := range r.Items {
		items[i] = OtherPayResponse{
			ID:        v.ID,
			Amount:    v.Amount,
			PayType:   v.Type.String(),
			Note:      v.Note,
			CreatedAt: v.CreatedAt,
		}
	}
	return OtherPayListResponse{Items: items, Summary: paySummaryResponse(r.Summary)}
}

type MessageResponse struct {
	ID        kernel.UUID   `json:"id"`
	Author    string        `json:"author"`
	Message   *string       `json:"message"`
	File      *FileResponse `json:"file"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Date      string        `json:"date"`
	Edited    bool          `json:"edited"`
}

func messagesResponse(views []queries.MessageView) []MessageResponse {
	out := make([]MessageResponse, len(views))
	for i, v := range views {
		out[i] = MessageResponse{
			ID:        v.ID,
			Author:    v.Author,
			Message:   v.Text,
			File:      fileResponse(v.File),
			CreatedAt: v.CreatedAt,
			UpdatedAt: v.UpdatedAt,
			Date:      v.Date,
			Edited:    v.Edited,
		}
	}
	return out
}

func messageResponse(m *chat.Message, grace time.Duration) MessageResponse {
	return MessageResponse{
		ID:        m.ID(),
		Author:    m.Author(),
		Message:   m.Text(),
		File:      fileResponse(m.File()),
		CreatedAt: m.CreatedAt(),
		UpdatedAt: m.UpdatedAt(),
		Date:      m.CreatedAt().UTC().Format(queries.DateLayout),
		Edited:    m.IsEdited(grace),
	}
}

type TruckSlotResponse struct {
	ID     kernel.UUID `json:"id"`
	Number string      `json:"number"`
}

type DriverSlotResponse struct {
	ID       kernel.UUID `json:"id"`
	FullName string      `json:"full_name"`
}

type UnitResponse struct {
	ID         kernel.UUID          `json:"id"`
	UnitNumber string               `json:"unit_number"`
	TeamID     *kernel.UUID         `json:"team_id"`
	Trucks     []TruckSlotResponse  `json:"trucks"`
	Trailers   []TruckSlotResponse  `json:"trailers"`
	Drivers    []DriverSlotResponse `json:"drivers"`
	Version    int64                `json:"version"`
}

func unitsResponse(views []queries.UnitView) []UnitResponse {
	numbered := func(in []queries.ResourceView) []TruckSlotResponse {
		out := make([]TruckSlotResponse, len(in))
		for i, r := range in {
			out[i] = TruckSlotResponse{ID: r.ID, Number: r.Label}
		}
		return out
	}

	out := make([]UnitResponse, len(views))
	for i, v := range views {
		drivers := make([]DriverSlotResponse, len(v.Drivers))
		for j, d := range v.Drivers {
			drivers[j] = DriverSlotResponse{ID: d.ID, FullName: d.Label}
		}
		out[i] = UnitResponse{
			ID:         v.ID,
			UnitNumber: v.UnitNumber,
			TeamID:     v.TeamID,
			Trucks:     numbered(v.Trucks),
			Trailers:   numbered(v.Trailers),
			Drivers:    drivers,
			Version:    v.Version,
		}
	}
	return out
}

type CreatedResponse struct {
	ID kernel.UUID `json:"id"`
}

type ReconcileStopsResponse struct {
	Changed bool `json:"changed"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
