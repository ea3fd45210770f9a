package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pay"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrAddOtherPayCommandIsNotConstructed = errors.New(
	"AddOtherPayCommand must be created via NewAddOtherPayCommand constructor",
)

// AddOtherPayCommand attaches an itemized pay adjustment to a load.
type AddOtherPayCommand struct {
	loadID  kernel.UUID
	payID   kernel.UUID
	amount  decimal.Decimal
	payType pay.Type
	note    string

	guard guard.ConstructorGuard
}

func NewAddOtherPayCommand(
	loadID, payID kernel.UUID,
	amount decimal.Decimal,
	payType pay.Type,
	note string,
) (AddOtherPayCommand, error) {
	if err := errors.Join(loadID.Validate(), payID.Validate(), payType.Validate()); err != nil {
		return AddOtherPayCommand{}, err
	}
	return AddOtherPayCommand{
		loadID:  loadID,
		payID:   payID,
		amount:  amount,
		payType: payType,
		note:    note,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c *AddOtherPayCommand) LoadID() kernel.UUID     { return c.loadID }
func (c *AddOtherPayCommand) PayID() kernel.UUID      { return c.payID }
func (c *AddOtherPayCommand) Amount() decimal.Decimal { return c.amount }
func (c *AddOtherPayCommand) Type() pay.Type          { return c.payType }
func (c *AddOtherPayCommand) Note() string            { return c.note }

func (c *AddOtherPayCommand) Validate() error {
	return c.guard.Validate(ErrAddOtherPayCommandIsNotConstructed)
}
