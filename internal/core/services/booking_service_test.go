package services_test

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/domain"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/ports/mocks"
	"github.com/nicoladitrani2/GestionaleCorfumania1-sub000/internal/core/services"
)

func TestSettle_Success(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockRefRepo := mocks.NewReferenceRepository(t)
	db, mockRedis := redismock.NewClientMock()

	ctx := context.Background()
	emptyReferenceExpectations(ctx, mockRefRepo)

	excID := uuid.New()
	bookingID := uuid.New()
	stored := &domain.Booking{
		ID:             bookingID,
		CreatedBy:      uuid.New(),
		Product:        domain.ProductRef{Kind: domain.KindExcursion, ExcursionID: &excID},
		Adults:         2,
		Price:          120,
		Deposit:        40,
		PaymentType:    domain.PaymentDeposit,
		IsOption:       true,
		ApprovalStatus: domain.ApprovalApproved,
	}

	mockBookingRepo.On("GetByID", ctx, bookingID).Return(stored, nil)
	mockBookingRepo.On("Update", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil)
	mockRedis.ExpectIncr("reports:generation").SetVal(1)

	svc := services.NewBookingService(mockBookingRepo, mockRefRepo, db, "Corfumania")

	booking, err := svc.Settle(ctx, bookingID)

	assert.NoError(t, err)
	if assert.NotNil(t, booking) {
		assert.Equal(t, domain.PaymentBalance, booking.PaymentType)
		assert.Equal(t, 120.0, booking.Deposit)
		assert.False(t, booking.IsOption)
	}

	if err := mockRedis.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRefund_NothingCollectedRejected(t *testing.T) {
	mockBookingRepo := mocks.NewBookingRepository(t)
	mockRefRepo := mocks.NewReferenceRepository(t)
	db, _ := redismock.NewClientMock()

	ctx := context.Background()
	bookingID := uuid.New()
	stored := &domain.Booking{
		ID:          bookingID,
		Price:       100,
		Deposit:     0,
		PaymentType: domain.PaymentDeposit,
	}

	mockBookingRepo.On("GetByID", ctx, bookingID).Return(stored, nil)

	svc := services.NewBookingService(mockBookingRepo, mockRefRepo, db, "Corfumania")

	booking, err := svc.Refund(ctx, bookingID, 10)

	assert.ErrorIs(t, err, services.ErrNothingToRefund)
	assert.Nil(t, booking)
	mockBookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
