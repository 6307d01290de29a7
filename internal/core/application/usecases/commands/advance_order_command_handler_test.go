package commands_test

import (
	"testing"

	"swiftdrop/internal/core/application/usecases/commands"
	"swiftdrop/internal/core/domain/model/kernel"
	"swiftdrop/internal/core/domain/model/order"
	"swiftdrop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	aggregate := newAssignedOrder(t, driverID)
	cmd, err := commands.NewAdvanceOrderCommand(
		aggregate.ID(), order.PickedUp, driverID, order.RoleDriver)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("UpdateIfStatus", mock.Anything, aggregate, order.Assigned).Return(nil).Once(),
		uow.On("Commit", mock.Anything).Return(nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	uow.On("OrderRepository").Return(repo).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, order.PickedUp, aggregate.Status())
	require.NotNil(t, aggregate.PickupTime())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_UnauthorizedActor(t *testing.T) {
	ctx := t.Context()
	aggregate := newAssignedOrder(t, kernel.NewUUID())
	cmd, err := commands.NewAdvanceOrderCommand(
		aggregate.ID(), order.PickedUp, kernel.NewUUID(), order.RoleDriver)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	uow.On("OrderRepository").Return(repo).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrActorNotAllowed)
	require.Equal(t, order.Assigned, aggregate.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_IllegalEdge(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	aggregate := newAssignedOrder(t, driverID)
	cmd, err := commands.NewAdvanceOrderCommand(
		aggregate.ID(), order.Delivered, driverID, order.RoleDriver)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	uow.On("OrderRepository").Return(repo).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrInvalidTransition)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAdvanceOrderCommandHandler_Handle_StaleState(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	aggregate := newAssignedOrder(t, driverID)
	cmd, err := commands.NewAdvanceOrderCommand(
		aggregate.ID(), order.PickedUp, driverID, order.RoleDriver)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", mock.Anything).Return(nil).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("UpdateIfStatus", mock.Anything, aggregate, order.Assigned).
			Return(errs.NewStateConflictError("order status")).Once(),
		uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)
	uow.On("OrderRepository").Return(repo).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAdvanceOrderCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrOrderStateChanged)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
