package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/HMS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/HMS-BookingService/internal/integrations/userservice"
	"github.com/m04kA/HMS-BookingService/internal/slotengine"
	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// Фиксированное "сегодня" для всех тестов: среда, 15 октября 2025
var testNow = time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)

var testPolicy = slotengine.Policy{
	SlotDurationMinutes: 15,
	HorizonDays:         60,
}

// Фейки зависимостей

type fakeBookingRepo struct {
	existing  []*domain.Booking
	created   *domain.Booking
	createErr error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	booking.ID = 101
	booking.BookedOn = testNow
	booking.CreatedAt = testNow
	booking.UpdatedAt = testNow
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetByDoctorWithFilter(_ context.Context, _ domain.DoctorBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

type fakeDoctorRepo struct {
	doctor    *domain.Doctor
	doctorErr error
	windows   []*domain.AvailabilityWindow
	leaves    []*domain.LeaveDay
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, _ int64) (*domain.Doctor, error) {
	if f.doctorErr != nil {
		return nil, f.doctorErr
	}
	return f.doctor, nil
}

func (f *fakeDoctorRepo) GetAvailability(_ context.Context, _ int64) ([]*domain.AvailabilityWindow, error) {
	return f.windows, nil
}

func (f *fakeDoctorRepo) GetLeavesByDate(_ context.Context, _ int64, _ time.Time) ([]*domain.LeaveDay, error) {
	return f.leaves, nil
}

type fakeUserClient struct {
	user *userservice.User
	err  error
}

func (f *fakeUserClient) GetUser(_ context.Context, _ int64) (*userservice.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{}

func (fixedTimeProvider) Now() time.Time { return testNow }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Хелперы

func tsPtr(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func testDoctor() *domain.Doctor {
	return &domain.Doctor{ID: 1, Name: "Dr. Smith", Specialization: "Cardiology", DepartmentID: 1}
}

func testUser() *userservice.User {
	return &userservice.User{
		ID:        42,
		Username:  "jdoe",
		FirstName: "John",
		LastName:  "Doe",
		Email:     "jdoe@example.com",
		Phone:     "+1234567",
	}
}

// wednesdayWindows окно приема в среду 09:00-12:00
func wednesdayWindows() []*domain.AvailabilityWindow {
	return []*domain.AvailabilityWindow{
		{ID: 1, DoctorID: 1, Day: 2, StartTime: "09:00", EndTime: "12:00"},
	}
}

func newTestUseCase(bookings *fakeBookingRepo, doctors *fakeDoctorRepo, users *fakeUserClient) *UseCase {
	uc := NewUseCase(bookings, doctors, users, &fakeTxManager{}, noopLogger{}, testPolicy)
	uc.timeProvider = fixedTimeProvider{}
	return uc
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	bookings := &fakeBookingRepo{}
	doctors := &fakeDoctorRepo{doctor: testDoctor(), windows: wednesdayWindows()}
	uc := newTestUseCase(bookings, doctors, &fakeUserClient{user: testUser()})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:   42,
		DoctorID: 1,
		Date:     testNow,
		Time:     tsPtr("10:00"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "Dr. Smith", resp.DoctorName)

	// Контакты пациента денормализованы из UserService
	require.NotNil(t, bookings.created)
	assert.Equal(t, "John Doe", bookings.created.PatientName)
	assert.Equal(t, "+1234567", bookings.created.PatientPhone)
	assert.Equal(t, "jdoe@example.com", bookings.created.PatientEmail)
}

func TestExecute_AllowsUntimedBooking(t *testing.T) {
	bookings := &fakeBookingRepo{}
	doctors := &fakeDoctorRepo{doctor: testDoctor(), windows: wednesdayWindows()}
	uc := newTestUseCase(bookings, doctors, &fakeUserClient{user: testUser()})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:   42,
		DoctorID: 1,
		Date:     testNow,
	})

	require.NoError(t, err)
	assert.Nil(t, resp.AppointmentTime)
}

func TestExecute_DoctorNotFound(t *testing.T) {
	doctors := &fakeDoctorRepo{doctorErr: ErrDoctorNotFound}
	uc := newTestUseCase(&fakeBookingRepo{}, doctors, &fakeUserClient{user: testUser()})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, DoctorID: 1, Date: testNow})

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_UserNotFound(t *testing.T) {
	doctors := &fakeDoctorRepo{doctor: testDoctor(), windows: wednesdayWindows()}
	uc := newTestUseCase(&fakeBookingRepo{}, doctors, &fakeUserClient{err: userservice.ErrUserNotFound})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, DoctorID: 1, Date: testNow})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_RejectsPastDate(t *testing.T) {
	doctors := &fakeDoctorRepo{doctor: testDoctor(), windows: wednesdayWindows()}
	uc := newTestUseCase(&fakeBookingRepo{}, doctors, &fakeUserClient{user: testUser()})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   42,
		DoctorID: 1,
		Date:     testNow.AddDate(0, 0, -1),
		Time:     tsPtr("10:00"),
	})

	assert.ErrorIs(t, err, ErrPastDate)
}

func TestExecute_RejectsLeaveDay(t *testing.T) {
	doctors := &fakeDoctorRepo{
		doctor:  testDoctor(),
		windows: wednesdayWindows(),
		leaves:  []*domain.LeaveDay{{ID: 1, DoctorID: 1, Date: testNow}},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, doctors, &fakeUserClient{user: testUser()})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   42,
		DoctorID: 1,
		Date:     testNow,
		Time:     tsPtr("10:00"),
	})

	assert.ErrorIs(t, err, ErrDoctorOnLeave)
}

func TestExecute_RejectsConflictingSlot(t *testing.T) {
	bookings := &fakeBookingRepo{
		existing: []*domain.Booking{
			{ID: 7, DoctorID: 1, BookingDate: testNow, AppointmentTime: tsPtr("10:00"), Status: domain.StatusAccepted},
		},
	}
	doctors := &fakeDoctorRepo{doctor: testDoctor(), windows: wednesdayWindows()}
	uc := newTestUseCase(bookings, doctors, &fakeUserClient{user: testUser()})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   42,
		DoctorID: 1,
		Date:     testNow,
		Time:     tsPtr("10:00"),
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_ConcurrentInsertLosesRace(t *testing.T) {
	// Конкурент успел занять слот между проверкой и вставкой:
	// нарушение уникального индекса транслируется в конфликт слота
	bookings := &fakeBookingRepo{createErr: bookingRepo.ErrSlotTaken}
	doctors := &fakeDoctorRepo{doctor: testDoctor(), windows: wednesdayWindows()}
	uc := newTestUseCase(bookings, doctors, &fakeUserClient{user: testUser()})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:   42,
		DoctorID: 1,
		Date:     testNow,
		Time:     tsPtr("10:00"),
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_RejectsInvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeDoctorRepo{}, &fakeUserClient{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, DoctorID: 0, Date: testNow})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
