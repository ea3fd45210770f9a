package http

import (
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListStops handles GET /api/v1/loads/:id/stops.
func (s *Server) ListStops(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	return s.respondStops(c, http.StatusOK, loadID)
}

// CreateStop handles POST /api/v1/loads/:id/stops.
func (s *Server) CreateStop(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req CreateStopRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateStopCommand(
		loadID, kernel.NewUUID(),
		req.StopName,
		req.details(),
		req.Appointment, req.FCFS, req.PlusHour,
	)
	if err != nil {
		return err
	}
	if err := s.handlers.CreateStop.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondStops(c, http.StatusCreated, loadID)
}

// UpdateStop handles PATCH /api/v1/loads/:id/stops/:stopId.
func (s *Server) UpdateStop(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	stopID, err := uuidParam(c, "stopId")
	if err != nil {
		return err
	}
	var req UpdateStopRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateStopCommand(loadID, stopID, req.StopName, req.detailsChange(), req.scheduleChange())
	if err != nil {
		return err
	}
	if err := s.handlers.UpdateStop.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondStops(c, http.StatusOK, loadID)
}

// DeleteStop handles DELETE /api/v1/loads/:id/stops/:stopId.
func (s *Server) DeleteStop(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	stopID, err := uuidParam(c, "stopId")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteStopCommand(loadID, stopID)
	if err != nil {
		return err
	}
	if err := s.handlers.DeleteStop.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondStops(c, http.StatusOK, loadID)
}

// ReconcileStops handles POST /api/v1/loads/:id/stops/reconcile.
func (s *Server) ReconcileStops(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewReconcileStopsCommand(loadID)
	if err != nil {
		return err
	}
	changed, err := s.handlers.ReconcileStops.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ReconcileStopsResponse{Changed: changed})
}

func (s *Server) respondStops(c echo.Context, code int, loadID kernel.UUID) error {
	query, err := queries.NewListStopsQuery(loadID)
	if err != nil {
		return err
	}
	views, err := s.handlers.ListStops.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(code, stopsResponse(views))
}
