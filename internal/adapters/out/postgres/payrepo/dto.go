// Package payrepo maps other-pay items to the other_pays table.
package payrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pay"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OtherPayDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LoadID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null"`
	PayType   string          `gorm:"type:text"`
	Note      string
	CreatedAt time.Time `gorm:"not null"`
}

func (OtherPayDTO) TableName() string {
	return "other_pays"
}

func fromDomain(p *pay.OtherPay) OtherPayDTO {
	return OtherPayDTO{
		ID:        p.ID().Bytes(),
		LoadID:    p.LoadID().Bytes(),
		Amount:    p.Amount(),
		PayType:   p.Type().String(),
		Note:      p.Note(),
		CreatedAt: p.CreatedAt().UTC(),
	}
}

func toDomain(dto OtherPayDTO) (*pay.OtherPay, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	loadID, err := kernel.UUIDFromBytes(dto.LoadID[:])
	if err != nil {
		return nil, err
	}
	return pay.NewOtherPay(id, loadID, dto.Amount, pay.Type(dto.PayType), dto.Note, dto.CreatedAt)
}
