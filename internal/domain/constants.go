package domain

// Default booking policy values
const (
	// DefaultAppointmentDurationMinutes длительность слота при проверке конфликтов бронирования
	DefaultAppointmentDurationMinutes = 15

	// DefaultBrowseSlotDurationMinutes шаг нарезки слотов при просмотре доступности
	DefaultBrowseSlotDurationMinutes = 20

	// DefaultBookingHorizonDays максимум дней вперед для записи (0 = без ограничения)
	DefaultBookingHorizonDays = 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// dayNames названия дней недели в конвенции Monday=0
var dayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayName returns the english day name for the Monday=0 convention.
// Out-of-range values yield an empty string.
func DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return dayNames[day]
}

// OccupyingStatuses статусы, при которых запись занимает слот
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
}

// TerminalStatuses статусы, при которых запись больше не занимает слот
var TerminalStatuses = []BookingStatus{
	StatusRejected,
	StatusCompleted,
	StatusCancelled,
}

// ValidStatuses все допустимые статусы записи
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
	StatusRejected,
	StatusCompleted,
	StatusCancelled,
}

// IsValidStatus returns true if s is a known booking status
func IsValidStatus(s BookingStatus) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}
