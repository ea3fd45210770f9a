package fleetrepo_test

import (
	"context"
	"testing"

	"freight/internal/adapters/out/postgres/fleetrepo"
	"freight/internal/adapters/out/postgres/pgtest"
	"freight/internal/core/domain/model/fleet"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type FleetRepositoryIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	units    *fleetrepo.GormUnitRepository
	fleet    *fleetrepo.GormFleetRepository
	tracker  *MockAggregateTracker
}

func (suite *FleetRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *FleetRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.units = fleetrepo.NewGormUnitRepository(suite.database.DB, suite.tracker)
	suite.fleet = fleetrepo.NewGormFleetRepository(suite.database.DB)
}

func (suite *FleetRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate())
}

func (suite *FleetRepositoryIntegrationTestSuite) TestResources_RoundTrip() {
	ctx := context.Background()
	truck, err := fleet.NewTruck(kernel.NewUUID(), "T-10")
	suite.Require().NoError(err)
	trailer, err := fleet.NewTrailer(kernel.NewUUID(), "TR-4", kernel.EquipmentFlatbed)
	suite.Require().NoError(err)
	driver, err := fleet.NewDriver(kernel.NewUUID(), "Sam Rivera")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.fleet.AddTruck(ctx, truck))
	suite.Require().NoError(suite.fleet.AddTrailer(ctx, trailer))
	suite.Require().NoError(suite.fleet.AddDriver(ctx, driver))

	gotTruck, err := suite.fleet.GetTruck(ctx, truck.ID())
	suite.Require().NoError(err)
	suite.Equal("T-10", gotTruck.Number())

	gotTrailer, err := suite.fleet.GetTrailer(ctx, trailer.ID())
	suite.Require().NoError(err)
	suite.Equal(kernel.EquipmentFlatbed, gotTrailer.Type())

	gotDriver, err := suite.fleet.GetDriver(ctx, driver.ID())
	suite.Require().NoError(err)
	suite.Equal("Sam Rivera", gotDriver.FullName())

	_, err = suite.fleet.GetDriver(ctx, truck.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.Require().ErrorIs(suite.fleet.AddTruck(ctx, truck), errs.ErrConflict)
}

func (suite *FleetRepositoryIntegrationTestSuite) TestUnit_UpdateAndFindHolder() {
	ctx := context.Background()
	truckID, driverID := kernel.NewUUID(), kernel.NewUUID()

	u, err := fleet.NewUnit(kernel.NewUUID(), "U-1", nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.units.Add(ctx, u))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", u.ID(), u)

	suite.Require().NoError(u.Assign(fleet.KindTruck, truckID, false))
	suite.Require().NoError(u.Assign(fleet.KindDriver, driverID, false))
	suite.Require().NoError(suite.units.Update(ctx, u))

	holder, err := suite.units.FindHolder(ctx, fleet.KindDriver, driverID)
	suite.Require().NoError(err)
	suite.Require().NotNil(holder)
	suite.Equal(u.ID(), holder.ID())
	suite.Equal(int64(1), holder.Version())
	suite.True(kernel.UUIDPtrEqual(&truckID, holder.TruckID()))
	suite.Nil(holder.TrailerID())

	none, err := suite.units.FindHolder(ctx, fleet.KindTrailer, truckID)
	suite.Require().NoError(err)
	suite.Nil(none)
}

func (suite *FleetRepositoryIntegrationTestSuite) TestUnit_StaleVersion_Conflicts() {
	ctx := context.Background()
	u, err := fleet.NewUnit(kernel.NewUUID(), "U-2", nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.units.Add(ctx, u))
	suite.Require().NoError(suite.units.Update(ctx, u))

	err = suite.units.Update(ctx, u)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Require().ErrorIs(err, fleetrepo.ErrStaleVersion)
}

func (suite *FleetRepositoryIntegrationTestSuite) TestUnit_ResourceInTwoUnits_Conflicts() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	first, err := fleet.RestoreUnit(kernel.NewUUID(), "U-3", nil, nil, nil, &driverID, 0)
	suite.Require().NoError(err)
	second, err := fleet.RestoreUnit(kernel.NewUUID(), "U-4", nil, nil, nil, &driverID, 0)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.units.Add(ctx, first))
	err = suite.units.Add(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Require().ErrorIs(err, fleet.ErrResourceIsHeld)
}

func (suite *FleetRepositoryIntegrationTestSuite) TestUnit_ListOrdersByNumber() {
	ctx := context.Background()
	for _, number := range []string{"U-20", "U-03", "U-11"} {
		u, err := fleet.NewUnit(kernel.NewUUID(), number, nil)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.units.Add(ctx, u))
	}

	units, err := suite.units.List(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(units, 3)
	suite.Equal("U-03", units[0].UnitNumber())
	suite.Equal("U-11", units[1].UnitNumber())
	suite.Equal("U-20", units[2].UnitNumber())
}

func TestFleetRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(FleetRepositoryIntegrationTestSuite))
}
