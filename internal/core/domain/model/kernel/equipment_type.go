package kernel

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// EquipmentType is the trailer category a load needs and a trailer provides.
// The empty value means "not specified" and is valid on both sides.
type EquipmentType string

const (
	EquipmentUnspecified EquipmentType = ""
	EquipmentDryVan      EquipmentType = "DRYVAN"
	EquipmentReefer      EquipmentType = "REEFER"
	EquipmentFlatbed     EquipmentType = "FLATBED"
	EquipmentStepDeck    EquipmentType = "STEPDECK"
	EquipmentPowerOnly   EquipmentType = "POWERONLY"
	EquipmentConestoga   EquipmentType = "CONESTOGA"
	EquipmentBoxTruck    EquipmentType = "BOXTRUCK"
	EquipmentOther       EquipmentType = "OTHER"
)

var equipmentTypes = map[EquipmentType]struct{}{
	EquipmentUnspecified: {},
	EquipmentDryVan:      {},
	EquipmentReefer:      {},
	EquipmentFlatbed:     {},
	EquipmentStepDeck:    {},
	EquipmentPowerOnly:   {},
	EquipmentConestoga:   {},
	EquipmentBoxTruck:    {},
	EquipmentOther:       {},
}

// ParseEquipmentType accepts the wire token in any letter case.
func ParseEquipmentType(s string) (EquipmentType, error) {
	et := EquipmentType(strings.ToUpper(strings.TrimSpace(s)))
	if err := et.Validate(); err != nil {
		return EquipmentUnspecified, err
	}
	return et, nil
}

func (e EquipmentType) Validate() error {
	if _, ok := equipmentTypes[e]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"equipment_type",
			fmt.Errorf("%q is not a known equipment type", string(e)),
		)
	}
	return nil
}

func (e EquipmentType) String() string {
	return string(e)
}
