package domain

import (
	"time"

	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// Department represents a hospital department
type Department struct {
	ID          int64
	Name        string
	Description string
	DoctorCount int
}

// Doctor represents a doctor record
type Doctor struct {
	ID             int64
	UserID         *int64 // ID учетной записи во внешнем UserService (nil, если врач не привязан)
	Name           string
	Specialization string
	DepartmentID   int64
	DepartmentName string
	ImageURL       *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AvailabilityWindow represents a weekly working window of a doctor.
// Day uses the Monday=0 .. Sunday=6 convention (see DayOfWeek).
// Several windows per day are permitted and are not validated for overlap.
type AvailabilityWindow struct {
	ID        int64
	DoctorID  int64
	Day       int
	StartTime types.TimeString
	EndTime   types.TimeString
}

// LeaveDay represents a full-day absence of a doctor
type LeaveDay struct {
	ID       int64
	DoctorID int64
	Date     time.Time
	Reason   *string
}

// DoctorsFilter фильтр каталога врачей
type DoctorsFilter struct {
	DepartmentID   *int64  // Фильтр по отделению (опционально)
	Specialization *string // Точное совпадение специализации (опционально)
	Search         *string // Поиск по имени и специализации (опционально)
}

// PresenceStatus доступность врача на текущий день
type PresenceStatus string

const (
	PresenceAbsent       PresenceStatus = "Absent"
	PresencePresent      PresenceStatus = "Present"
	PresenceNotScheduled PresenceStatus = "Not Scheduled"
)

// DayOfWeek converts a calendar date to the stored day-of-week convention
// (Monday=0 .. Sunday=6); Go's time.Weekday is Sunday-based.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DoctorPresence computes the doctor's availability for the given day:
// a leave day wins over any availability window.
func DoctorPresence(windows []*AvailabilityWindow, leaves []*LeaveDay, now time.Time) PresenceStatus {
	for _, leave := range leaves {
		if isSameDate(leave.Date, now) {
			return PresenceAbsent
		}
	}

	day := DayOfWeek(now)
	for _, w := range windows {
		if w.Day == day {
			return PresencePresent
		}
	}

	return PresenceNotScheduled
}

func isSameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
