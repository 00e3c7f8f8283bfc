package doctors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	doctorRepo "github.com/m04kA/HMS-BookingService/internal/infra/storage/doctor"
	"github.com/m04kA/HMS-BookingService/internal/integrations/userservice"
	"github.com/m04kA/HMS-BookingService/internal/service/doctors/models"
	"github.com/m04kA/HMS-BookingService/pkg/ptr"
)

// Фиксированное "сегодня" для всех тестов: среда, 15 октября 2025
var testNow = time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)

// Фейки зависимостей

type fakeDoctorRepo struct {
	doctor        *domain.Doctor
	doctorErr     error
	doctors       []*domain.Doctor
	windows       []*domain.AvailabilityWindow
	leaves        []*domain.LeaveDay
	createdWindow *domain.AvailabilityWindow
	createdLeave  *domain.LeaveDay
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, _ int64) (*domain.Doctor, error) {
	if f.doctorErr != nil {
		return nil, f.doctorErr
	}
	return f.doctor, nil
}

func (f *fakeDoctorRepo) List(_ context.Context, _ domain.DoctorsFilter) ([]*domain.Doctor, error) {
	return f.doctors, nil
}

func (f *fakeDoctorRepo) GetAvailability(_ context.Context, _ int64) ([]*domain.AvailabilityWindow, error) {
	return f.windows, nil
}

func (f *fakeDoctorRepo) CreateAvailability(_ context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	window.ID = 55
	f.createdWindow = window
	return window, nil
}

func (f *fakeDoctorRepo) GetLeavesByDate(_ context.Context, _ int64, _ time.Time) ([]*domain.LeaveDay, error) {
	return f.leaves, nil
}

func (f *fakeDoctorRepo) GetUpcomingLeaves(_ context.Context, _ int64, _ time.Time) ([]*domain.LeaveDay, error) {
	return f.leaves, nil
}

func (f *fakeDoctorRepo) CreateLeave(_ context.Context, leave *domain.LeaveDay) (*domain.LeaveDay, error) {
	leave.ID = 66
	f.createdLeave = leave
	return leave, nil
}

type fakeDepartmentRepo struct {
	departments []*domain.Department
}

func (f *fakeDepartmentRepo) List(_ context.Context) ([]*domain.Department, error) {
	return f.departments, nil
}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, _ int64) (*domain.Department, error) {
	if len(f.departments) == 0 {
		return nil, ErrDepartmentNotFound
	}
	return f.departments[0], nil
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

type fixedTimeProvider struct{}

func (fixedTimeProvider) Now() time.Time { return testNow }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Хелперы

func testDoctor() *domain.Doctor {
	return &domain.Doctor{
		ID:             7,
		Name:           "Dr. Smith",
		Specialization: "Cardiology",
		DepartmentID:   1,
		DepartmentName: "Cardiology",
	}
}

func wednesdayWindows() []*domain.AvailabilityWindow {
	return []*domain.AvailabilityWindow{
		{ID: 1, DoctorID: 7, Day: 2, StartTime: "09:00", EndTime: "12:00"},
	}
}

func doctorProfile() *userservice.DoctorProfile {
	return &userservice.DoctorProfile{UserID: 99, DoctorID: 7}
}

func newTestService(repo *fakeDoctorRepo, departments *fakeDepartmentRepo, users *fakeUserClient) *Service {
	svc := NewService(repo, departments, users, noopLogger{})
	svc.timeProvider = fixedTimeProvider{}
	return svc
}

func TestList_ReturnsDoctors(t *testing.T) {
	svc := newTestService(
		&fakeDoctorRepo{doctors: []*domain.Doctor{testDoctor()}},
		&fakeDepartmentRepo{},
		&fakeUserClient{},
	)

	resp, err := svc.List(context.Background(), &models.ListDoctorsRequest{
		Search: ptr.Ptr("smith"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Doctors, 1)
	assert.Equal(t, "Dr. Smith", resp.Doctors[0].Name)
	assert.Equal(t, "Cardiology", resp.Doctors[0].DepartmentName)
}

func TestGetByID_ReturnsScheduleAndPresence(t *testing.T) {
	svc := newTestService(
		&fakeDoctorRepo{doctor: testDoctor(), windows: wednesdayWindows()},
		&fakeDepartmentRepo{},
		&fakeUserClient{},
	)

	resp, err := svc.GetByID(context.Background(), 7)

	require.NoError(t, err)
	// Среда с окном приема и без отпуска - врач на месте
	assert.Equal(t, string(domain.PresencePresent), resp.Presence)
	require.Len(t, resp.Availability, 1)
	assert.Equal(t, "Wednesday", resp.Availability[0].DayName)
	assert.Equal(t, "09:00", resp.Availability[0].StartTime)
}

func TestGetByID_LeaveTodayMeansAbsent(t *testing.T) {
	svc := newTestService(
		&fakeDoctorRepo{
			doctor:  testDoctor(),
			windows: wednesdayWindows(),
			leaves:  []*domain.LeaveDay{{ID: 1, DoctorID: 7, Date: testNow}},
		},
		&fakeDepartmentRepo{},
		&fakeUserClient{},
	)

	resp, err := svc.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, string(domain.PresenceAbsent), resp.Presence)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(
		&fakeDoctorRepo{doctorErr: doctorRepo.ErrDoctorNotFound},
		&fakeDepartmentRepo{},
		&fakeUserClient{},
	)

	_, err := svc.GetByID(context.Background(), 7)

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestAddAvailability_CreatesWindow(t *testing.T) {
	repo := &fakeDoctorRepo{}
	svc := newTestService(repo, &fakeDepartmentRepo{}, &fakeUserClient{profile: doctorProfile()})

	resp, err := svc.AddAvailability(context.Background(), 7, &models.AddAvailabilityRequest{
		UserID:    99,
		Day:       2,
		StartTime: "09:00",
		EndTime:   "12:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(55), resp.ID)
	assert.Equal(t, "Wednesday", resp.DayName)
	require.NotNil(t, repo.createdWindow)
	assert.Equal(t, int64(7), repo.createdWindow.DoctorID)
}

func TestAddAvailability_NotOwnProfileDenied(t *testing.T) {
	svc := newTestService(
		&fakeDoctorRepo{},
		&fakeDepartmentRepo{},
		&fakeUserClient{profile: &userservice.DoctorProfile{UserID: 99, DoctorID: 8}},
	)

	_, err := svc.AddAvailability(context.Background(), 7, &models.AddAvailabilityRequest{
		UserID:    99,
		Day:       2,
		StartTime: "09:00",
		EndTime:   "12:00",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAddAvailability_RejectsInvalidDay(t *testing.T) {
	svc := newTestService(&fakeDoctorRepo{}, &fakeDepartmentRepo{}, &fakeUserClient{profile: doctorProfile()})

	_, err := svc.AddAvailability(context.Background(), 7, &models.AddAvailabilityRequest{
		UserID:    99,
		Day:       7,
		StartTime: "09:00",
		EndTime:   "12:00",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddAvailability_RejectsInvertedWindow(t *testing.T) {
	svc := newTestService(&fakeDoctorRepo{}, &fakeDepartmentRepo{}, &fakeUserClient{profile: doctorProfile()})

	_, err := svc.AddAvailability(context.Background(), 7, &models.AddAvailabilityRequest{
		UserID:    99,
		Day:       2,
		StartTime: "12:00",
		EndTime:   "09:00",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddLeave_CreatesLeave(t *testing.T) {
	repo := &fakeDoctorRepo{}
	svc := newTestService(repo, &fakeDepartmentRepo{}, &fakeUserClient{profile: doctorProfile()})

	resp, err := svc.AddLeave(context.Background(), 7, &models.AddLeaveRequest{
		UserID: 99,
		Date:   "2025-10-20",
		Reason: ptr.Ptr("Conference"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(66), resp.ID)
	assert.Equal(t, "2025-10-20", resp.Date)
	require.NotNil(t, repo.createdLeave)
	assert.Equal(t, int64(7), repo.createdLeave.DoctorID)
}

func TestAddLeave_RejectsInvalidDate(t *testing.T) {
	svc := newTestService(&fakeDoctorRepo{}, &fakeDepartmentRepo{}, &fakeUserClient{profile: doctorProfile()})

	_, err := svc.AddLeave(context.Background(), 7, &models.AddLeaveRequest{
		UserID: 99,
		Date:   "20-10-2025",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListDepartments_ReturnsDoctorCounts(t *testing.T) {
	svc := newTestService(
		&fakeDoctorRepo{},
		&fakeDepartmentRepo{departments: []*domain.Department{
			{ID: 1, Name: "Cardiology", Description: "Heart care", DoctorCount: 3},
		}},
		&fakeUserClient{},
	)

	resp, err := svc.ListDepartments(context.Background())

	require.NoError(t, err)
	require.Len(t, resp.Departments, 1)
	assert.Equal(t, 3, resp.Departments[0].DoctorCount)
}
