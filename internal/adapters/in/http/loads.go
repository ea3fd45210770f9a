package http

import (
	"context"
	"net/http"
	"strings"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"

	"github.com/labstack/echo/v4"
)

// CreateLoad handles POST /api/v1/loads.
func (s *Server) CreateLoad(c echo.Context) error {
	var req LoadChangesRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	loadID := kernel.NewUUID()
	cmd, err := commands.NewCreateLoadCommand(loadID, req.changes())
	if err != nil {
		return err
	}
	if err := s.handlers.CreateLoad.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondLoad(c, http.StatusCreated, loadID)
}

// GetLoadBoard handles GET /api/v1/loads. The status parameter may repeat or
// hold a comma separated list.
func (s *Server) GetLoadBoard(c echo.Context) error {
	var statuses []load.Status
	for _, raw := range c.QueryParams()["status"] {
		for _, token := range strings.Split(raw, ",") {
			if strings.TrimSpace(token) == "" {
				continue
			}
			status, err := load.ParseStatus(token)
			if err != nil {
				return err
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewGetLoadBoardQuery(statuses...)
	if err != nil {
		return err
	}
	items, err := s.handlers.GetLoadBoard.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loadBoardResponse(items))
}

// GetLoad handles GET /api/v1/loads/:id.
func (s *Server) GetLoad(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	return s.respondLoad(c, http.StatusOK, loadID)
}

// UpdateLoad handles PATCH /api/v1/loads/:id.
func (s *Server) UpdateLoad(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req LoadChangesRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateLoadCommand(loadID, req.changes())
	if err != nil {
		return err
	}
	if err := s.handlers.UpdateLoad.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondLoad(c, http.StatusOK, loadID)
}

// AdvanceStatus handles POST /api/v1/loads/:id/status/next.
func (s *Server) AdvanceStatus(c echo.Context) error {
	return s.changeStatus(c, commands.NewAdvanceStatusCommand)
}

// RevertStatus handles POST /api/v1/loads/:id/status/back.
func (s *Server) RevertStatus(c echo.Context) error {
	return s.changeStatus(c, commands.NewRevertStatusCommand)
}

// ToggleYard handles POST /api/v1/loads/:id/status/yard.
func (s *Server) ToggleYard(c echo.Context) error {
	return s.changeStatus(c, commands.NewToggleYardCommand)
}

// SetStatus handles PUT /api/v1/loads/:id/status.
func (s *Server) SetStatus(c echo.Context) error {
	var req SetStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	status, err := load.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	return s.changeStatus(c, func(loadID kernel.UUID) (commands.ChangeStatusCommand, error) {
		return commands.NewSetStatusCommand(loadID, status)
	})
}

func (s *Server) changeStatus(c echo.Context, newCommand func(kernel.UUID) (commands.ChangeStatusCommand, error)) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	cmd, err := newCommand(loadID)
	if err != nil {
		return err
	}
	if err := s.handlers.ChangeStatus.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondLoad(c, http.StatusOK, loadID)
}

// SelectUnit handles PUT /api/v1/loads/:id/unit.
func (s *Server) SelectUnit(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req SelectUnitRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewSelectUnitCommand(loadID, req.Unit)
	if err != nil {
		return err
	}
	if err := s.handlers.SelectUnit.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondLoad(c, http.StatusOK, loadID)
}

// ClearUnit handles DELETE /api/v1/loads/:id/unit.
func (s *Server) ClearUnit(c echo.Context) error {
	loadID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewClearUnitCommand(loadID)
	if err != nil {
		return err
	}
	if err := s.handlers.ClearUnit.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.respondLoad(c, http.StatusOK, loadID)
}

// respondLoad answers with the current aggregate view of the load.
func (s *Server) respondLoad(c echo.Context, code int, loadID kernel.UUID) error {
	view, err := s.loadView(c.Request().Context(), loadID)
	if err != nil {
		return err
	}
	return c.JSON(code, view)
}

func (s *Server) loadView(ctx context.Context, loadID kernel.UUID) (LoadResponse, error) {
	query, err := queries.NewGetLoadQuery(loadID)
	if err != nil {
		return LoadResponse{}, err
	}
	resp, err := s.handlers.GetLoad.Handle(ctx, query)
	if err != nil {
		return LoadResponse{}, err
	}
	return loadResponse(resp), nil
}
