package commands_test

import (
	"context"
	"io"
	"testing"

	"freight/internal/core/domain/model/chat"
	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/load"
	"freight/internal/core/domain/model/pay"
	"freight/internal/core/domain/model/stop"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockLoadRepository struct{ mock.Mock }

func (m *MockLoadRepository) Add(ctx context.Context, l *load.Load) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLoadRepository) Update(ctx context.Context, l *load.Load) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLoadRepository) Get(ctx context.Context, id kernel.UUID) (*load.Load, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*load.Load), args.Error(1)
}

func (m *MockLoadRepository) ListActiveIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockStopRepository struct{ mock.Mock }

func (m *MockStopRepository) Add(ctx context.Context, s *stop.Stop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStopRepository) Update(ctx context.Context, s *stop.Stop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStopRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStopRepository) Get(ctx context.Context, id kernel.UUID) (*stop.Stop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stop.Stop), args.Error(1)
}

func (m *MockStopRepository) ListByLoad(ctx context.Context, loadID kernel.UUID) ([]*stop.Stop, error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*stop.Stop), args.Error(1)
}

type MockOtherPayRepository struct{ mock.Mock }

func (m *MockOtherPayRepository) Add(ctx context.Context, p *pay.OtherPay) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockOtherPayRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOtherPayRepository) Get(ctx context.Context, id kernel.UUID) (*pay.OtherPay, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pay.OtherPay), args.Error(1)
}

func (m *MockOtherPayRepository) ListByLoad(ctx context.Context, loadID kernel.UUID) ([]*pay.OtherPay, error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pay.OtherPay), args.Error(1)
}

type MockChatRepository struct{ mock.Mock }

func (m *MockChatRepository) Append(ctx context.Context, msg *chat.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockChatRepository) Update(ctx context.Context, msg *chat.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockChatRepository) Get(ctx context.Context, id kernel.UUID) (*chat.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chat.Message), args.Error(1)
}

func (m *MockChatRepository) ListByLoad(ctx context.Context, loadID kernel.UUID) ([]*chat.Message, error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chat.Message), args.Error(1)
}

type MockUnitRepository struct{ mock.Mock }

func (m *MockUnitRepository) Add(ctx context.Context, u *fleet.Unit) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUnitRepository) Update(ctx context.Context, u *fleet.Unit) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUnitRepository) Get(ctx context.Context, id kernel.UUID) (*fleet.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindHolder(ctx context.Context, kind fleet.ResourceKind, resourceID kernel.UUID) (*fleet.Unit, error) {
	args := m.Called(ctx, kind, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Unit), args.Error(1)
}

func (m *MockUnitRepository) List(ctx context.Context) ([]*fleet.Unit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*fleet.Unit), args.Error(1)
}

type MockFleetRepository struct{ mock.Mock }

func (m *MockFleetRepository) AddTruck(ctx context.Context, t *fleet.Truck) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockFleetRepository) AddTrailer(ctx context.Context, t *fleet.Trailer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockFleetRepository) AddDriver(ctx context.Context, d *fleet.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockFleetRepository) GetTruck(ctx context.Context, id kernel.UUID) (*fleet.Truck, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Truck), args.Error(1)
}

func (m *MockFleetRepository) GetTrailer(ctx context.Context, id kernel.UUID) (*fleet.Trailer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Trailer), args.Error(1)
}

func (m *MockFleetRepository) GetDriver(ctx context.Context, id kernel.UUID) (*fleet.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Driver), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) LoadRepository() ports.LoadRepository {
	return m.Called().Get(0).(ports.LoadRepository)
}

func (m *MockUoW) StopRepository() ports.StopRepository {
	return m.Called().Get(0).(ports.StopRepository)
}

func (m *MockUoW) OtherPayRepository() ports.OtherPayRepository {
	return m.Called().Get(0).(ports.OtherPayRepository)
}

func (m *MockUoW) ChatRepository() ports.ChatRepository {
	return m.Called().Get(0).(ports.ChatRepository)
}

func (m *MockUoW) UnitRepository() ports.UnitRepository {
	return m.Called().Get(0).(ports.UnitRepository)
}

func (m *MockUoW) FleetRepository() ports.FleetRepository {
	return m.Called().Get(0).(ports.FleetRepository)
}

type MockUoWFactory[T any] struct{ mock.Mock }

func (m *MockUoWFactory[T]) Create() T {
	return m.Called().Get(0).(T)
}

type MockLoadLocker struct{ mock.Mock }

func (m *MockLoadLocker) Lock(ctx context.Context, loadID kernel.UUID) (func(), error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func()), args.Error(1)
}

type MockFileStorage struct{ mock.Mock }

func (m *MockFileStorage) Upload(ctx context.Context, name, contentType string, r io.Reader, size int64) (kernel.FileRef, error) {
	args := m.Called(ctx, name, contentType, r, size)
	return args.Get(0).(kernel.FileRef), args.Error(1)
}

func (m *MockFileStorage) Download(ctx context.Context, ref kernel.FileRef) (io.ReadCloser, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, ref kernel.FileRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

type MockStatusObserver struct{ mock.Mock }

func (m *MockStatusObserver) ObserveTransition(action string, from, to load.Status) {
	m.Called(action, from, to)
}

// harness wires one MockUoW to every repository mock. Transaction calls and
// repository getters may or may not happen; tests assert Commit explicitly.
type harness struct {
	uow      *MockUoW
	loads    *MockLoadRepository
	stops    *MockStopRepository
	payItems *MockOtherPayRepository
	messages *MockChatRepository
	units    *MockUnitRepository
	fleet    *MockFleetRepository
	locker   *MockLoadLocker
	storage  *MockFileStorage
	unlocks  int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		uow:      &MockUoW{},
		loads:    &MockLoadRepository{},
		stops:    &MockStopRepository{},
		payItems: &MockOtherPayRepository{},
		messages: &MockChatRepository{},
		units:    &MockUnitRepository{},
		fleet:    &MockFleetRepository{},
		locker:   &MockLoadLocker{},
		storage:  &MockFileStorage{},
	}

	h.uow.On("Begin", mock.Anything).Return(nil).Maybe()
	h.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	h.uow.On("LoadRepository").Return(h.loads).Maybe()
	h.uow.On("StopRepository").Return(h.stops).Maybe()
	h.uow.On("OtherPayRepository").Return(h.payItems).Maybe()
	h.uow.On("ChatRepository").Return(h.messages).Maybe()
	h.uow.On("UnitRepository").Return(h.units).Maybe()
	h.uow.On("FleetRepository").Return(h.fleet).Maybe()

	unlock := func() { h.unlocks++ }
	h.locker.On("Lock", mock.Anything, mock.Anything).Return(unlock, nil).Maybe()

	t.Cleanup(func() {
		h.loads.AssertExpectations(t)
		h.stops.AssertExpectations(t)
		h.payItems.AssertExpectations(t)
		h.messages.AssertExpectations(t)
		h.units.AssertExpectations(t)
		h.fleet.AssertExpectations(t)
		h.storage.AssertExpectations(t)
	})
	return h
}

func (h *harness) expectCommit() {
	h.uow.On("Commit", mock.Anything).Return(nil).Once()
}

func factoryOf[T any](uow T) *MockUoWFactory[T] {
	f := &MockUoWFactory[T]{}
	f.On("Create").Return(uow)
	return f
}
