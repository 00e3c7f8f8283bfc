package slotengine

import (
	"time"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// Code машиночитаемый код отказа
type Code string

const (
	CodePastDate     Code = "PAST_DATE"
	CodeTooFarAhead  Code = "TOO_FAR_AHEAD"
	CodeOnLeave      Code = "ON_LEAVE"
	CodeNotScheduled Code = "NOT_SCHEDULED"
	CodeOutsideHours Code = "OUTSIDE_HOURS"
	CodeConflict     Code = "CONFLICT"
)

// Outcome итог оценки слота
type Outcome string

const (
	// OutcomeRejected запись невозможна (см. Code и Reason)
	OutcomeRejected Outcome = "rejected"

	// OutcomeAvailable время не запрашивалось; возвращен список слотов дня
	OutcomeAvailable Outcome = "available"

	// OutcomeAccepted запрошенное время можно бронировать
	OutcomeAccepted Outcome = "accepted"
)

// Decision результат оценки: отказ с кодом и причиной, список слотов дня
// либо подтверждение конкретного времени
type Decision struct {
	Outcome Outcome
	Code    Code   // заполнен только при OutcomeRejected
	Reason  string // человекочитаемая причина отказа

	// ConflictTime время существующей записи, с которой найден конфликт
	ConflictTime *types.TimeString

	// Window первое окно расписания на запрошенный день
	// Заполнено при OutcomeAvailable и OutcomeAccepted
	Window *domain.AvailabilityWindow

	// Slots слоты дня в хронологическом порядке (только при OutcomeAvailable)
	Slots []domain.DaySlot
}

// Rejected возвращает true при отказе
func (d Decision) Rejected() bool {
	return d.Outcome == OutcomeRejected
}

// DateRelated возвращает true, если отказ относится к запрошенной дате,
// а не к запрошенному времени. Нужен вызывающим для привязки ошибок
// валидации к конкретному полю
func (d Decision) DateRelated() bool {
	switch d.Code {
	case CodePastDate, CodeTooFarAhead, CodeOnLeave, CodeNotScheduled:
		return true
	default:
		return false
	}
}

// Policy параметры оценки слота
// Длительность слота задается вызывающей стороной: путь бронирования и путь
// просмотра доступности используют разные значения
type Policy struct {
	// SlotDurationMinutes длительность слота в минутах (> 0)
	SlotDurationMinutes int

	// HorizonDays максимум дней вперед для записи; 0 отключает проверку
	HorizonDays int
}

// Schedule консистентный срез состояния врача, по которому принимается решение.
// Все данные считываются вызывающей стороной до вызова Evaluate
type Schedule struct {
	// Windows недельные окна приема, отсортированные по (day, start_time, id).
	// "Первое подходящее окно" определяется этим порядком
	Windows []*domain.AvailabilityWindow

	// Leaves дни отсутствия врача
	Leaves []*domain.LeaveDay

	// Bookings записи врача на запрошенную дату
	Bookings []*domain.Booking
}

// Request параметры запроса на оценку
type Request struct {
	// Date запрашиваемая дата записи
	Date time.Time

	// Time запрашиваемое время; nil = вернуть список слотов дня
	Time *types.TimeString

	// ExcludeBookingID запись, исключаемая из проверки конфликтов
	// (заполняется при редактировании существующей записи)
	ExcludeBookingID *int64
}
