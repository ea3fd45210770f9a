package pay

import (
	"errors"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrOtherPayIsNotConstructed = errors.New("OtherPay must be created via NewOtherPay constructor")

// OtherPay is an itemized adjustment layered on a load's base pay. Amounts
// may be negative (chargebacks).
type OtherPay struct {
	id        kernel.UUID
	loadID    kernel.UUID
	amount    decimal.Decimal
	payType   Type
	note      string
	createdAt time.Time
	guard     guard.ConstructorGuard
}

func NewOtherPay(id, loadID kernel.UUID, amount decimal.Decimal, payType Type, note string, createdAt time.Time) (*OtherPay, error) {
	var loadErr, createdErr error
	if loadID.Validate() != nil {
		loadErr = errs.NewValueIsRequiredError("load_id")
	}
	if createdAt.IsZero() {
		createdErr = errs.NewValueIsRequiredError("created_at")
	}
	if err := errors.Join(id.Validate(), loadErr, payType.Validate(), createdErr); err != nil {
		return nil, err
	}

	return &OtherPay{
		id:        id,
		loadID:    loadID,
		amount:    amount,
		payType:   payType,
		note:      strings.TrimSpace(note),
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (p *OtherPay) Validate() error {
	if p == nil {
		return ErrOtherPayIsNotConstructed
	}
	return p.guard.Validate(ErrOtherPayIsNotConstructed)
}

func (p *OtherPay) ID() kernel.UUID         { return p.id }
func (p *OtherPay) LoadID() kernel.UUID     { return p.loadID }
func (p *OtherPay) Amount() decimal.Decimal { return p.amount }
func (p *OtherPay) Type() Type              { return p.payType }
func (p *OtherPay) Note() string            { return p.note }
func (p *OtherPay) CreatedAt() time.Time    { return p.createdAt }
