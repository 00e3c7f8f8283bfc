package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	"github.com/m04kA/HMS-BookingService/internal/slotengine"
	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// Фиксированное "сегодня" для всех тестов: среда, 15 октября 2025
var testNow = time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)

// Политика просмотра: сетка слотов крупнее, чем шаг бронирования
var testPolicy = slotengine.Policy{
	SlotDurationMinutes: 20,
	HorizonDays:         60,
}

// Фейки зависимостей

type fakeBookingRepo struct {
	existing []*domain.Booking
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

func wednesdayWindows() []*domain.AvailabilityWindow {
	return []*domain.AvailabilityWindow{
		{ID: 1, DoctorID: 1, Day: 2, StartTime: "09:00", EndTime: "12:00"},
	}
}

func newTestUseCase(bookings *fakeBookingRepo, doctors *fakeDoctorRepo) *UseCase {
	uc := NewUseCase(bookings, doctors, noopLogger{}, testPolicy)
	uc.timeProvider = fixedTimeProvider{}
	return uc
}

func TestExecute_ListsDaySlots(t *testing.T) {
	bookings := &fakeBookingRepo{
		existing: []*domain.Booking{
			{ID: 7, DoctorID: 1, BookingDate: testNow, AppointmentTime: tsPtr("09:20"), Status: domain.StatusAccepted},
		},
	}
	doctors := &fakeDoctorRepo{doctor: testDoctor(), windows: wednesdayWindows()}
	uc := newTestUseCase(bookings, doctors)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: testNow})

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, "Dr. Smith", resp.DoctorName)
	assert.Equal(t, "Wednesday", resp.DayName)
	assert.Equal(t, "09:00 - 12:00", resp.WorkingHours)

	// 180 минут окна при 20-минутных слотах = 9 слотов, один занят
	assert.Equal(t, 9, resp.TotalSlots)
	assert.Equal(t, 8, resp.FreeSlots)
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].Time)
	assert.True(t, resp.Slots[0].IsFree)
	assert.Equal(t, types.TimeString("09:20"), resp.Slots[1].Time)
	assert.False(t, resp.Slots[1].IsFree)
}

func TestExecute_CancelledBookingDoesNotOccupySlot(t *testing.T) {
	bookings := &fakeBookingRepo{
		existing: []*domain.Booking{
			{ID: 7, DoctorID: 1, BookingDate: testNow, AppointmentTime: tsPtr("09:20"), Status: domain.StatusCancelled},
		},
	}
	doctors := &fakeDoctorRepo{doctor: testDoctor(), windows: wednesdayWindows()}
	uc := newTestUseCase(bookings, doctors)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: testNow})

	require.NoError(t, err)
	assert.Equal(t, resp.TotalSlots, resp.FreeSlots)
}

func TestExecute_LeaveDayIsUnavailableResponse(t *testing.T) {
	doctors := &fakeDoctorRepo{
		doctor:  testDoctor(),
		windows: wednesdayWindows(),
		leaves:  []*domain.LeaveDay{{ID: 1, DoctorID: 1, Date: testNow}},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, doctors)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: testNow})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, string(slotengine.CodeOnLeave), resp.Code)
	assert.NotEmpty(t, resp.Reason)
	assert.Empty(t, resp.Slots)
}

func TestExecute_UnscheduledDayIsUnavailableResponse(t *testing.T) {
	// У врача нет окон на запрошенный день недели
	doctors := &fakeDoctorRepo{doctor: testDoctor()}
	uc := newTestUseCase(&fakeBookingRepo{}, doctors)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: testNow})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, string(slotengine.CodeNotScheduled), resp.Code)
}

func TestExecute_PastDateIsUnavailableResponse(t *testing.T) {
	doctors := &fakeDoctorRepo{doctor: testDoctor(), windows: wednesdayWindows()}
	uc := newTestUseCase(&fakeBookingRepo{}, doctors)

	resp, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: testNow.AddDate(0, 0, -1)})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	assert.Equal(t, string(slotengine.CodePastDate), resp.Code)
}

func TestExecute_DoctorNotFound(t *testing.T) {
	doctors := &fakeDoctorRepo{doctorErr: ErrDoctorNotFound}
	uc := newTestUseCase(&fakeBookingRepo{}, doctors)

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 1, Date: testNow})

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestExecute_RejectsInvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeDoctorRepo{})

	_, err := uc.Execute(context.Background(), &Request{DoctorID: 0, Date: testNow})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
