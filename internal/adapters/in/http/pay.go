package http

import (
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pay"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ListOtherPay handles GET /api/v1/loads/:id/other-pay.
func (s *Server) ListOtherPay(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	return s.respondOtherPay(c, http.StatusOK, loadID)
}

// AddOtherPay handles POST /api/v1/loads/:id/other-pay.
func (s *Server) AddOtherPay(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req AddOtherPayRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Amount == nil {
		return errs.NewValueIsRequiredError("amount")
	}
	payType, err := pay.ParseType(req.PayType)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAddOtherPayCommand(loadID, kernel.NewUUID(), *req.Amount, payType, req.Note)
	if err != nil {
		return err
	}
	if _, err := s.handlers.AddOtherPay.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOtherPay(c, http.StatusCreated, loadID)
}

// DeleteOtherPay handles DELETE /api/v1/loads/:id/other-pay/:payId.
func (s *Server) DeleteOtherPay(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	payID, err := uuidParam(c, "payId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteOtherPayCommand(loadID, payID)
	if err != nil {
		return err
	}
	if _, err := s.handlers.DeleteOtherPay.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondOtherPay(c, http.StatusOK, loadID)
}

func (s *Server) respondOtherPay(c echo.Context, code int, loadID kernel.UUID) error {
	query, err := queries.NewListOtherPayQuery(loadID)
	if err != nil {
		return err
	}
	resp, err := s.handlers.ListOtherPay.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(code, otherPayListResponse(resp))
}
