package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"freight/internal/core/application/actor"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/chat"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/pay"
	"freight/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handler is a use case that returns a result.
type Handler[Req, Resp any] interface {
	Handle(ctx context.Context, req Req) (Resp, error)
}

// Command is a use case that returns nothing but an error.
type Command[Req any] interface {
	Handle(ctx context.Context, req Req) error
}

// Handlers holds every use case the API exposes.
type Handlers struct {
	CreateLoad     Command[commands.CreateLoadCommand]
	UpdateLoad     Command[commands.UpdateLoadCommand]
	ChangeStatus   Command[commands.ChangeStatusCommand]
	CreateStop     Command[commands.CreateStopCommand]
	UpdateStop     Command[commands.UpdateStopCommand]
	DeleteStop     Command[commands.DeleteStopCommand]
	ReconcileStops Handler[commands.ReconcileStopsCommand, bool]
	AddOtherPay    Handler[commands.AddOtherPayCommand, pay.Summary]
	DeleteOtherPay Handler[commands.DeleteOtherPayCommand, pay.Summary]
	SelectUnit     Command[commands.SelectUnitCommand]
	ClearUnit      Command[commands.ClearUnitCommand]
	AttachDocument Handler[commands.AttachDocumentCommand, kernel.FileRef]
	AppendMessage  Handler[commands.AppendMessageCommand, *chat.Message]
	EditMessage    Handler[commands.EditMessageCommand, *chat.Message]

	CreateUnit       Command[commands.CreateUnitCommand]
	RegisterResource Command[commands.RegisterResourceCommand]
	AssignResource   Command[commands.AssignResourceCommand]
	ReleaseResource  Command[commands.ReleaseResourceCommand]

	GetLoad             Handler[queries.GetLoadQuery, queries.GetLoadQueryResponse]
	GetLoadBoard        Handler[queries.GetLoadBoardQuery, []queries.LoadBoardItem]
	ListStops           Handler[queries.ListStopsQuery, []queries.StopView]
	ListOtherPay        Handler[queries.ListOtherPayQuery, queries.ListOtherPayQueryResponse]
	ListMessages        Handler[queries.ListMessagesQuery, []queries.MessageView]
	DownloadDocument    Handler[queries.DownloadDocumentQuery, queries.FileDownload]
	DownloadMessageFile Handler[queries.DownloadMessageFileQuery, queries.FileDownload]
	ListUnits           Handler[queries.ListUnitsQuery, []queries.UnitView]
}

// Options configures the ambient parts of the API. Zero values are usable:
// no metrics, an always-healthy health check and a zero chat edit grace.
type Options struct {
	Logger        *slog.Logger
	Metrics       *HTTPMetrics
	Gatherer      prometheus.Gatherer
	HealthCheck   func(ctx context.Context) error
	ChatEditGrace time.Duration
	ServiceName   string
}

// Server maps HTTP requests onto use cases.
type Server struct {
	handlers Handlers
	checker  ports.PermissionChecker
	opts     Options
}

func NewServer(handlers Handlers, checker ports.PermissionChecker, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.ServiceName == "" {
		opts.ServiceName = "freight"
	}
	return &Server{handlers: handlers, checker: checker, opts: opts}
}

// Echo builds an echo instance with middleware and every route registered.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(s.opts.Logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, s.opts.ServiceName)
	}))
	e.Use(requestLogger(s.opts.Logger))
	if s.opts.Metrics != nil {
		e.Use(s.opts.Metrics.Middleware())
	}

	e.GET("/health", s.Health)
	if s.opts.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})))
	}

	RegisterHandlers(e.Group("/api/v1", actorMiddleware(s.checker)), s)
	return e
}

// RegisterHandlers binds the API routes to g.
func RegisterHandlers(g *echo.Group, s *Server) {
	read := requireUser
	loadUpdate := require(actor.LoadUpdate)
	statusUpdate := require(actor.StatusUpdate)
	fleetUpdate := require(actor.FleetUpdate)

	g.POST("/loads", s.CreateLoad, require(actor.LoadCreate))
	g.GET("/loads", s.GetLoadBoard, read)
	g.GET("/loads/:id", s.GetLoad, read)
	g.PATCH("/loads/:id", s.UpdateLoad, loadUpdate)

	g.POST("/loads/:id/status/next", s.AdvanceStatus, statusUpdate)
	g.POST("/loads/:id/status/back", s.RevertStatus, statusUpdate)
	g.POST("/loads/:id/status/yard", s.ToggleYard, statusUpdate)
	g.PUT("/loads/:id/status", s.SetStatus, statusUpdate)

	g.GET("/loads/:id/stops", s.ListStops, read)
	g.POST("/loads/:id/stops", s.CreateStop, loadUpdate)
	g.POST("/loads/:id/stops/reconcile", s.ReconcileStops, loadUpdate)
	g.PATCH("/loads/:id/stops/:stopId", s.UpdateStop, loadUpdate)
	g.DELETE("/loads/:id/stops/:stopId", s.DeleteStop, loadUpdate)

	g.GET("/loads/:id/other-pay", s.ListOtherPay, read)
	g.POST("/loads/:id/other-pay", s.AddOtherPay, loadUpdate)
	g.DELETE("/loads/:id/other-pay/:payId", s.DeleteOtherPay, loadUpdate)

	g.PUT("/loads/:id/unit", s.SelectUnit, loadUpdate)
	g.DELETE("/loads/:id/unit", s.ClearUnit, loadUpdate)

	g.PUT("/loads/:id/documents/:slot", s.AttachDocument, loadUpdate)
	g.GET("/loads/:id/documents/:slot", s.DownloadDocument, read)

	g.GET("/loads/:id/messages", s.ListMessages, read)
	g.POST("/loads/:id/messages", s.AppendMessage, require(actor.ChatCreate))
	g.PATCH("/loads/:id/messages/:messageId", s.EditMessage, require(actor.ChatUpdate))
	g.GET("/loads/:id/messages/:messageId/file", s.DownloadMessageFile, read)

	g.GET("/units", s.ListUnits, read)
	g.POST("/units", s.CreateUnit, fleetUpdate)
	g.PUT("/units/:id/resources/:kind", s.AssignResource, fleetUpdate)
	g.DELETE("/units/:id/resources/:kind", s.ReleaseResource, fleetUpdate)

	g.POST("/trucks", s.RegisterTruck, fleetUpdate)
	g.POST("/trailers", s.RegisterTrailer, fleetUpdate)
	g.POST("/drivers", s.RegisterDriver, fleetUpdate)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	if s.opts.HealthCheck != nil {
		if err := s.opts.HealthCheck(c.Request().Context()); err != nil {
			s.opts.Logger.WarnContext(c.Request().Context(), "health check failed", "error", err)
			return c.String(http.StatusServiceUnavailable, "Unhealthy")
		}
	}
	return c.String(http.StatusOK, "Healthy")
}

func uuidParam(c echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param(name))
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}

func authorOf(c echo.Context) string {
	return actor.FromContext(c.Request().Context()).UserID()
}
