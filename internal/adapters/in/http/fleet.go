package http

import (
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListUnits handles GET /api/v1/units.
func (s *Server) ListUnits(c echo.Context) error {
	units, err := s.handlers.ListUnits.Handle(c.Request().Context(), queries.NewListUnitsQuery())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, unitsResponse(units))
}

// CreateUnit handles POST /api/v1/units.
func (s *Server) CreateUnit(c echo.Context) error {
	var req CreateUnitRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateUnitCommand(id, req.UnitNumber, req.TeamID)
	if err != nil {
		return err
	}
	if err := s.handlers.CreateUnit.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// AssignResource handles PUT /api/v1/units/:id/resources/:kind.
func (s *Server) AssignResource(c echo.Context) error {
	unitID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	kind, err := fleet.ParseResourceKind(c.Param("kind"))
	if err != nil {
		return err
	}
	var req AssignResourceRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAssignResourceCommand(unitID, kind, req.ID, req.Reassign)
	if err != nil {
		return err
	}
	if err := s.handlers.AssignResource.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ReleaseResource handles DELETE /api/v1/units/:id/resources/:kind.
func (s *Server) ReleaseResource(c echo.Context) error {
	unitID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	kind, err := fleet.ParseResourceKind(c.Param("kind"))
	if err != nil {
		return err
	}

	cmd, err := commands.NewReleaseResourceCommand(unitID, kind)
	if err != nil {
		return err
	}
	if err := s.handlers.ReleaseResource.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterTruck handles POST /api/v1/trucks.
func (s *Server) RegisterTruck(c echo.Context) error {
	var req RegisterTruckRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return s.registerResource(c, func(id kernel.UUID) (commands.RegisterResourceCommand, error) {
		return commands.NewRegisterTruckCommand(id, req.Number)
	})
}

// RegisterTrailer handles POST /api/v1/trailers.
func (s *Server) RegisterTrailer(c echo.Context) error {
	var req RegisterTrailerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	typ, err := kernel.ParseEquipmentType(req.Type)
	if err != nil {
		return err
	}
	return s.registerResource(c, func(id kernel.UUID) (commands.RegisterResourceCommand, error) {
		return commands.NewRegisterTrailerCommand(id, req.Number, typ)
	})
}

// RegisterDriver handles POST /api/v1/drivers.
func (s *Server) RegisterDriver(c echo.Context) error {
	var req RegisterDriverRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return s.registerResource(c, func(id kernel.UUID) (commands.RegisterResourceCommand, error) {
		return commands.NewRegisterDriverCommand(id, req.FullName)
	})
}

func (s *Server) registerResource(c echo.Context, newCommand func(kernel.UUID) (commands.RegisterResourceCommand, error)) error {
	id := kernel.NewUUID()
	cmd, err := newCommand(id)
	if err != nil {
		return err
	}
	if err := s.handlers.RegisterResource.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}
