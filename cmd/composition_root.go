package cmd

import (
	"log/slog"

	freighthttp "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/locking"
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/ports"
	"freight/internal/jobs"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/keylock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locker     ports.LoadLocker
	clock      clock.Clock
	storage    ports.FileStorage
	observer   commands.StatusObserver
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	storage ports.FileStorage,
	observer commands.StatusObserver,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		locker:     locking.NewLoadLocker(keylock.New()),
		clock:      clock.NewMonotonic(clock.System()),
		storage:    storage,
		observer:   observer,
		logger:     logger,
	}
}

func (c *CompositionRoot) loadUoWFactory() commands.LoadUoWFactory {
	return FuncLoadUoWFactory(func() commands.LoadUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) itineraryUoWFactory() commands.ItineraryUoWFactory {
	return FuncItineraryUoWFactory(func() commands.ItineraryUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) payUoWFactory() commands.PayUoWFactory {
	return FuncPayUoWFactory(func() commands.PayUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) chatUoWFactory() commands.ChatUoWFactory {
	return FuncChatUoWFactory(func() commands.ChatUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) fleetUoWFactory() commands.FleetUoWFactory {
	return FuncFleetUoWFactory(func() commands.FleetUoW { return c.uowFactory.Create() })
}

// Commands

func (c *CompositionRoot) CreateCreateLoadCommandHandler() commands.CreateLoadCommandHandler {
	return commands.NewCreateLoadCommandHandler(c.loadUoWFactory())
}

func (c *CompositionRoot) CreateUpdateLoadCommandHandler() commands.UpdateLoadCommandHandler {
	return commands.NewUpdateLoadCommandHandler(c.payUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateChangeStatusCommandHandler() commands.ChangeStatusCommandHandler {
	return commands.NewChangeStatusCommandHandler(c.loadUoWFactory(), c.locker, c.observer)
}

func (c *CompositionRoot) CreateCreateStopCommandHandler() commands.CreateStopCommandHandler {
	return commands.NewCreateStopCommandHandler(c.itineraryUoWFactory(), c.locker, c.clock)
}

func (c *CompositionRoot) CreateUpdateStopCommandHandler() commands.UpdateStopCommandHandler {
	return commands.NewUpdateStopCommandHandler(c.itineraryUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateDeleteStopCommandHandler() commands.DeleteStopCommandHandler {
	return commands.NewDeleteStopCommandHandler(c.itineraryUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateReconcileStopsCommandHandler() commands.ReconcileStopsCommandHandler {
	return commands.NewReconcileStopsCommandHandler(c.itineraryUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateAddOtherPayCommandHandler() commands.AddOtherPayCommandHandler {
	return commands.NewAddOtherPayCommandHandler(c.payUoWFactory(), c.locker, c.clock)
}

func (c *CompositionRoot) CreateDeleteOtherPayCommandHandler() commands.DeleteOtherPayCommandHandler {
	return commands.NewDeleteOtherPayCommandHandler(c.payUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateSelectUnitCommandHandler() commands.SelectUnitCommandHandler {
	return commands.NewSelectUnitCommandHandler(c.assignmentUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateClearUnitCommandHandler() commands.ClearUnitCommandHandler {
	return commands.NewClearUnitCommandHandler(c.loadUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateAttachDocumentCommandHandler() commands.AttachDocumentCommandHandler {
	return commands.NewAttachDocumentCommandHandler(c.loadUoWFactory(), c.locker, c.storage, c.logger)
}

func (c *CompositionRoot) CreateAppendMessageCommandHandler() commands.AppendMessageCommandHandler {
	return commands.NewAppendMessageCommandHandler(c.chatUoWFactory(), c.storage, c.clock, c.logger)
}

func (c *CompositionRoot) CreateEditMessageCommandHandler() commands.EditMessageCommandHandler {
	return commands.NewEditMessageCommandHandler(c.chatUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCreateUnitCommandHandler() commands.CreateUnitCommandHandler {
	return commands.NewCreateUnitCommandHandler(c.fleetUoWFactory())
}

func (c *CompositionRoot) CreateRegisterResourceCommandHandler() commands.RegisterResourceCommandHandler {
	return commands.NewRegisterResourceCommandHandler(c.fleetUoWFactory())
}

func (c *CompositionRoot) CreateAssignResourceCommandHandler() commands.AssignResourceCommandHandler {
	return commands.NewAssignResourceCommandHandler(c.fleetUoWFactory())
}

func (c *CompositionRoot) CreateReleaseResourceCommandHandler() commands.ReleaseResourceCommandHandler {
	return commands.NewReleaseResourceCommandHandler(c.fleetUoWFactory())
}

// Queries

func (c *CompositionRoot) CreateGetLoadQueryHandler() queries.GetLoadQueryHandler {
	return queries.NewGetLoadQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetLoadBoardQueryHandler() queries.GetLoadBoardQueryHandler {
	return queries.NewGetLoadBoardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListStopsQueryHandler() queries.ListStopsQueryHandler {
	return queries.NewListStopsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOtherPayQueryHandler() queries.ListOtherPayQueryHandler {
	return queries.NewListOtherPayQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListMessagesQueryHandler() queries.ListMessagesQueryHandler {
	return queries.NewListMessagesQueryHandler(c.gormDB, c.config.ChatEditGrace)
}

func (c *CompositionRoot) CreateDownloadDocumentQueryHandler() queries.DownloadDocumentQueryHandler {
	return queries.NewDownloadDocumentQueryHandler(c.gormDB, c.storage)
}

func (c *CompositionRoot) CreateDownloadMessageFileQueryHandler() queries.DownloadMessageFileQueryHandler {
	return queries.NewDownloadMessageFileQueryHandler(c.gormDB, c.storage)
}

func (c *CompositionRoot) CreateListUnitsQueryHandler() queries.ListUnitsQueryHandler {
	return queries.NewListUnitsQueryHandler(c.gormDB)
}

// HTTPHandlers wires every use case into the API.
func (c *CompositionRoot) HTTPHandlers() freighthttp.Handlers {
	return freighthttp.Handlers{
		CreateLoad:     c.CreateCreateLoadCommandHandler(),
		UpdateLoad:     c.CreateUpdateLoadCommandHandler(),
		ChangeStatus:   c.CreateChangeStatusCommandHandler(),
		CreateStop:     c.CreateCreateStopCommandHandler(),
		UpdateStop:     c.CreateUpdateStopCommandHandler(),
		DeleteStop:     c.CreateDeleteStopCommandHandler(),
		ReconcileStops: c.CreateReconcileStopsCommandHandler(),
		AddOtherPay:    c.CreateAddOtherPayCommandHandler(),
		DeleteOtherPay: c.CreateDeleteOtherPayCommandHandler(),
		SelectUnit:     c.CreateSelectUnitCommandHandler(),
		ClearUnit:      c.CreateClearUnitCommandHandler(),
		AttachDocument: c.CreateAttachDocumentCommandHandler(),
		AppendMessage:  c.CreateAppendMessageCommandHandler(),
		EditMessage:    c.CreateEditMessageCommandHandler(),

		CreateUnit:       c.CreateCreateUnitCommandHandler(),
		RegisterResource: c.CreateRegisterResourceCommandHandler(),
		AssignResource:   c.CreateAssignResourceCommandHandler(),
		ReleaseResource:  c.CreateReleaseResourceCommandHandler(),

		GetLoad:             c.CreateGetLoadQueryHandler(),
		GetLoadBoard:        c.CreateGetLoadBoardQueryHandler(),
		ListStops:           c.CreateListStopsQueryHandler(),
		ListOtherPay:        c.CreateListOtherPayQueryHandler(),
		ListMessages:        c.CreateListMessagesQueryHandler(),
		DownloadDocument:    c.CreateDownloadDocumentQueryHandler(),
		DownloadMessageFile: c.CreateDownloadMessageFileQueryHandler(),
		ListUnits:           c.CreateListUnitsQueryHandler(),
	}
}

// JobManager builds the background jobs. The stop reconciliation job reads
// active loads outside any transaction.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewStopReconciliationJob(
			c.uowFactory.Create().LoadRepository(),
			c.CreateReconcileStopsCommandHandler(),
			c.config.StopReconcileCron,
			c.logger,
		),
	)
}

type FuncLoadUoWFactory func() commands.LoadUoW

func (f FuncLoadUoWFactory) Create() commands.LoadUoW {
	return f()
}

type FuncItineraryUoWFactory func() commands.ItineraryUoW

func (f FuncItineraryUoWFactory) Create() commands.ItineraryUoW {
	return f()
}

type FuncPayUoWFactory func() commands.PayUoW

func (f FuncPayUoWFactory) Create() commands.PayUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncChatUoWFactory func() commands.ChatUoW

func (f FuncChatUoWFactory) Create() commands.ChatUoW {
	return f()
}

type FuncFleetUoWFactory func() commands.FleetUoW

func (f FuncFleetUoWFactory) Create() commands.FleetUoW {
	return f()
}
