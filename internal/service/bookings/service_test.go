package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/HMS-BookingService/internal/integrations/userservice"
	"github.com/m04kA/HMS-BookingService/internal/service/bookings/models"
	"github.com/m04kA/HMS-BookingService/pkg/ptr"
	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	byID          *domain.Booking
	byIDErr       error
	byUser        []*domain.Booking
	byDoctor      []*domain.Booking
	statusErr     error
	updatedID     int64
	updatedStatus domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.byUser, nil
}

func (f *fakeBookingRepo) GetByDoctorWithFilter(_ context.Context, _ domain.DoctorBookingsFilter) ([]*domain.Booking, error) {
	return f.byDoctor, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.updatedID = id
	f.updatedStatus = status
	return nil
}

type fakeUserClient struct {
	profile *userservice.DoctorProfile
	err     error
}

func (f *fakeUserClient) GetDoctorProfile(_ context.Context, _ int64) (*userservice.DoctorProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Хелперы

func tsPtr(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

// testBooking активная запись пользователя 42 к врачу 7
func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:              10,
		UserID:          ptr.Ptr(int64(42)),
		DoctorID:        7,
		BookingDate:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		AppointmentTime: tsPtr("10:00"),
		Status:          domain.StatusPending,
		PatientName:     "John Doe",
	}
}

func newTestService(repo *fakeBookingRepo, users *fakeUserClient) *Service {
	return NewService(repo, users, noopLogger{})
}

func TestGetByID_OwnerHasAccess(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{byID: testBooking()},
		&fakeUserClient{err: userservice.ErrNoDoctorProfile},
	)

	resp, err := svc.GetByID(context.Background(), 10, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "John Doe", resp.PatientName)
}

func TestGetByID_DoctorOfBookingHasAccess(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{byID: testBooking()},
		&fakeUserClient{profile: &userservice.DoctorProfile{UserID: 99, DoctorID: 7}},
	)

	_, err := svc.GetByID(context.Background(), 10, 99)

	require.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	// Чужая запись и нет профиля врача
	svc := newTestService(
		&fakeBookingRepo{byID: testBooking()},
		&fakeUserClient{err: userservice.ErrNoDoctorProfile},
	)

	_, err := svc.GetByID(context.Background(), 10, 99)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_OtherDoctorDenied(t *testing.T) {
	// Пользователь врач, но не врач этой записи
	svc := newTestService(
		&fakeBookingRepo{byID: testBooking()},
		&fakeUserClient{profile: &userservice.DoctorProfile{UserID: 99, DoctorID: 8}},
	)

	_, err := svc.GetByID(context.Background(), 10, 99)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{byIDErr: bookingRepo.ErrBookingNotFound},
		&fakeUserClient{},
	)

	_, err := svc.GetByID(context.Background(), 10, 42)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_FiltersByStatus(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{byUser: []*domain.Booking{testBooking()}},
		&fakeUserClient{},
	)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 42,
		Status: ptr.Ptr("pending"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "pending", resp.Bookings[0].Status)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, &fakeUserClient{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 42,
		Status: ptr.Ptr("unknown"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetDoctorBookings_RequiresDoctorProfile(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{byDoctor: []*domain.Booking{testBooking()}},
		&fakeUserClient{err: userservice.ErrNoDoctorProfile},
	)

	_, err := svc.GetDoctorBookings(context.Background(), &models.GetDoctorBookingsRequest{
		DoctorID: 7,
		UserID:   99,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetDoctorBookings_DoctorSeesOwnBookings(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{byDoctor: []*domain.Booking{testBooking()}},
		&fakeUserClient{profile: &userservice.DoctorProfile{UserID: 99, DoctorID: 7}},
	)

	resp, err := svc.GetDoctorBookings(context.Background(), &models.GetDoctorBookingsRequest{
		DoctorID: 7,
		UserID:   99,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestCancel_OwnerCancelsPendingBooking(t *testing.T) {
	repo := &fakeBookingRepo{byID: testBooking()}
	svc := newTestService(repo, &fakeUserClient{})

	err := svc.Cancel(context.Background(), 10, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(10), repo.updatedID)
	assert.Equal(t, domain.StatusCancelled, repo.updatedStatus)
}

func TestCancel_DoctorOfBookingCancels(t *testing.T) {
	repo := &fakeBookingRepo{byID: testBooking()}
	svc := newTestService(repo, &fakeUserClient{profile: &userservice.DoctorProfile{UserID: 99, DoctorID: 7}})

	err := svc.Cancel(context.Background(), 10, 99)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, repo.updatedStatus)
}

func TestCancel_StrangerDenied(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{byID: testBooking()},
		&fakeUserClient{err: userservice.ErrNoDoctorProfile},
	)

	err := svc.Cancel(context.Background(), 10, 99)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_CompletedBookingCannotBeCancelled(t *testing.T) {
	completed := testBooking()
	completed.Status = domain.StatusCompleted
	svc := newTestService(&fakeBookingRepo{byID: completed}, &fakeUserClient{})

	err := svc.Cancel(context.Background(), 10, 42)

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_DoctorAcceptsBooking(t *testing.T) {
	repo := &fakeBookingRepo{byID: testBooking()}
	svc := newTestService(repo, &fakeUserClient{profile: &userservice.DoctorProfile{UserID: 99, DoctorID: 7}})

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 99,
		Status: "accepted",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, repo.updatedStatus)
}

func TestUpdateStatus_NotDoctorOfBooking(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{byID: testBooking()},
		&fakeUserClient{profile: &userservice.DoctorProfile{UserID: 99, DoctorID: 8}},
	)

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 99,
		Status: "accepted",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := newTestService(
		&fakeBookingRepo{byID: testBooking()},
		&fakeUserClient{profile: &userservice.DoctorProfile{UserID: 99, DoctorID: 7}},
	)

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 99,
		Status: "archived",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_ReactivationHitsTakenSlot(t *testing.T) {
	rejected := testBooking()
	rejected.Status = domain.StatusRejected
	svc := newTestService(
		&fakeBookingRepo{byID: rejected, statusErr: bookingRepo.ErrSlotTaken},
		&fakeUserClient{profile: &userservice.DoctorProfile{UserID: 99, DoctorID: 7}},
	)

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 99,
		Status: "accepted",
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
}
