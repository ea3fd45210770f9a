package load

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// DocumentSlot names one of the fixed per-load document positions.
type DocumentSlot string

const (
	DocRateConfirmation  DocumentSlot = "rate_con"
	DocBillOfLading      DocumentSlot = "bol"
	DocProofOfDelivery   DocumentSlot = "pod"
	DocCommercialInvoice DocumentSlot = "commercial_invoice"
)

// DocumentSlots lists the slots in display order.
func DocumentSlots() []DocumentSlot {
	return []DocumentSlot{DocRateConfirmation, DocBillOfLading, DocProofOfDelivery, DocCommercialInvoice}
}

func ParseDocumentSlot(s string) (DocumentSlot, error) {
	slot := DocumentSlot(strings.ToLower(strings.TrimSpace(s)))
	if err := slot.Validate(); err != nil {
		return "", err
	}
	return slot, nil
}

func (d DocumentSlot) Validate() error {
	for _, known := range DocumentSlots() {
		if d == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("document_slot", fmt.Errorf("%q is not a document slot", string(d)))
}
