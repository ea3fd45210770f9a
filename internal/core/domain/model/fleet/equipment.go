package fleet

import (
	"errors"
	"strings"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// Truck is a power unit registered by its fleet number.
type Truck struct {
	id     kernel.UUID
	number string
}

func NewTruck(id kernel.UUID, number string) (*Truck, error) {
	number = strings.TrimSpace(number)
	if err := errors.Join(id.Validate(), requireText("number", number)); err != nil {
		return nil, err
	}
	return &Truck{id: id, number: number}, nil
}

func (t *Truck) ID() kernel.UUID { return t.id }
func (t *Truck) Number() string  { return t.number }

// Trailer is registered with the equipment type it provides; selecting a unit
// copies that type onto the load.
type Trailer struct {
	id     kernel.UUID
	number string
	typ    kernel.EquipmentType
}

func NewTrailer(id kernel.UUID, number string, typ kernel.EquipmentType) (*Trailer, error) {
	number = strings.TrimSpace(number)
	if err := errors.Join(id.Validate(), requireText("number", number), typ.Validate()); err != nil {
		return nil, err
	}
	return &Trailer{id: id, number: number, typ: typ}, nil
}

func (t *Trailer) ID() kernel.UUID            { return t.id }
func (t *Trailer) Number() string             { return t.number }
func (t *Trailer) Type() kernel.EquipmentType { return t.typ }

// Driver is the minimal driver record the unit resolver needs.
type Driver struct {
	id       kernel.UUID
	fullName string
}

func NewDriver(id kernel.UUID, fullName string) (*Driver, error) {
	fullName = strings.TrimSpace(fullName)
	if err := errors.Join(id.Validate(), requireText("full_name", fullName)); err != nil {
		return nil, err
	}
	return &Driver{id: id, fullName: fullName}, nil
}

func (d *Driver) ID() kernel.UUID  { return d.id }
func (d *Driver) FullName() string { return d.fullName }

func requireText(name, v string) error {
	if v == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
