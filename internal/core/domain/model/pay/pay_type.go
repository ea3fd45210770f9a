package pay

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// Type classifies an other-pay item. The empty type is valid and counts as
// additional load pay.
type Type string

const (
	TypeUnspecified  Type = ""
	TypeDetention    Type = "DETENTION"
	TypeEquipment    Type = "EQUIPMENT"
	TypeLayover      Type = "LAYOVER"
	TypeLumper       Type = "LUMPER"
	TypeDriverAssist Type = "DRIVERASSIST"
	TypeTrailerWash  Type = "TRAILERWASH"
	TypeEscortFee    Type = "ESCORTFEE"
	TypeBonus        Type = "BONUS"
	TypeChargeback   Type = "CHARGEBACK"
	TypeOther        Type = "OTHER"
	TypeExtraMiles   Type = "EXTRAMILES"
)

var types = map[Type]struct{}{
	TypeUnspecified: {}, TypeDetention: {}, TypeEquipment: {}, TypeLayover: {},
	TypeLumper: {}, TypeDriverAssist: {}, TypeTrailerWash: {}, TypeEscortFee: {},
	TypeBonus: {}, TypeChargeback: {}, TypeOther: {}, TypeExtraMiles: {},
}

func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if err := t.Validate(); err != nil {
		return TypeUnspecified, err
	}
	return t, nil
}

func (t Type) Validate() error {
	if _, ok := types[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("pay_type", fmt.Errorf("%q is not a pay type", string(t)))
	}
	return nil
}

// AddsToLoadPay reports whether items of this type are shown as part of the
// load pay rather than as a separate adjustment.
func (t Type) AddsToLoadPay() bool {
	return t == TypeDetention || t == TypeUnspecified || t == TypeExtraMiles
}

func (t Type) String() string { return string(t) }
