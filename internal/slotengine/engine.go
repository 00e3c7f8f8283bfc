package slotengine

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// Evaluate прогоняет запрос через упорядоченную цепочку проверок:
// прошедшая дата → горизонт записи → отпуск → недельное расписание →
// (генерация слотов, если время не задано) → рабочие часы → конфликт.
// Каждая проверка завершает оценку при отказе.
//
// Функция чистая: все строки состояния передаются в Schedule, текущее время -
// параметром. Побочных эффектов нет; сохранение записи - забота вызывающего
func Evaluate(sched Schedule, req Request, now time.Time, policy Policy) Decision {
	// 1. Дата в прошлом
	if isDateInPast(req.Date, now) {
		return Decision{
			Outcome: OutcomeRejected,
			Code:    CodePastDate,
			Reason:  "Cannot book appointments in the past.",
		}
	}

	// 2. Горизонт записи (0 = без ограничения)
	if policy.HorizonDays > 0 && isDateBeyondHorizon(req.Date, now, policy.HorizonDays) {
		return Decision{
			Outcome: OutcomeRejected,
			Code:    CodeTooFarAhead,
			Reason:  fmt.Sprintf("Appointments can only be booked up to %d days in advance.", policy.HorizonDays),
		}
	}

	// 3. Отпуск врача: полный день недоступен независимо от расписания
	for _, leave := range sched.Leaves {
		if isSameDay(leave.Date, req.Date) {
			reason := "Doctor is on leave on this date."
			if leave.Reason != nil && *leave.Reason != "" {
				reason += " Reason: " + *leave.Reason
			}
			return Decision{
				Outcome: OutcomeRejected,
				Code:    CodeOnLeave,
				Reason:  reason,
			}
		}
	}

	// 4. Недельное расписание
	dayWindows := windowsForDay(sched.Windows, domain.DayOfWeek(req.Date))
	if len(dayWindows) == 0 {
		return Decision{
			Outcome: OutcomeRejected,
			Code:    CodeNotScheduled,
			Reason:  fmt.Sprintf("Doctor is not scheduled on %ss.", domain.DayName(domain.DayOfWeek(req.Date))),
		}
	}

	// 5. Время не запрошено: возвращаем нарезку дня по первому окну
	if req.Time == nil {
		return Decision{
			Outcome: OutcomeAvailable,
			Window:  dayWindows[0],
			Slots:   generateDaySlots(dayWindows[0], policy.SlotDurationMinutes, occupiedTimes(sched.Bookings, req.ExcludeBookingID)),
		}
	}

	// 6. Рабочие часы: время должно попадать в [start, end) хотя бы одного окна.
	// Используется первое подходящее окно; окна не сливаются и не дедуплицируются
	window := matchWindow(dayWindows, *req.Time)
	if window == nil {
		return Decision{
			Outcome: OutcomeRejected,
			Code:    CodeOutsideHours,
			Reason:  fmt.Sprintf("Appointment time must be between %s.", formatWindows(dayWindows)),
		}
	}

	// 7. Конфликт с существующими записями
	if conflict := findConflict(sched.Bookings, *req.Time, policy.SlotDurationMinutes, req.ExcludeBookingID); conflict != nil {
		t := *conflict
		return Decision{
			Outcome:      OutcomeRejected,
			Code:         CodeConflict,
			Reason:       fmt.Sprintf("This time slot is already booked (conflicts with %s). Please choose another time.", t),
			ConflictTime: &t,
		}
	}

	// 8. Все проверки пройдены
	return Decision{
		Outcome: OutcomeAccepted,
		Window:  window,
	}
}

// generateDaySlots нарезает окно приема на слоты фиксированной длительности.
// Слот попадает в список, пока его НАЧАЛО строго раньше конца окна: последний
// слот может выходить за время закрытия - это намеренное поведение, а не баг.
// Слот считается занятым при точном совпадении времени начала с существующей
// записью
func generateDaySlots(window *domain.AvailabilityWindow, durationMinutes int, occupied map[types.TimeString]struct{}) []domain.DaySlot {
	slots := make([]domain.DaySlot, 0)

	current := window.StartTime
	for current.IsBefore(window.EndTime) {
		_, taken := occupied[current]
		slots = append(slots, domain.DaySlot{
			Time:   current,
			IsFree: !taken,
		})

		next, err := current.AddMinutes(durationMinutes)
		if err != nil || !current.IsBefore(next) {
			break
		}
		current = next
	}

	return slots
}

// occupiedTimes собирает времена начала записей, занимающих слоты на дату
func occupiedTimes(bookings []*domain.Booking, excludeID *int64) map[types.TimeString]struct{} {
	occupied := make(map[types.TimeString]struct{})
	for _, b := range bookings {
		if !b.OccupiesSlot() || b.AppointmentTime == nil {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		occupied[*b.AppointmentTime] = struct{}{}
	}
	return occupied
}

// findConflict ищет запись, интервал которой пересекается со слотом
// [t, t+duration). Интервалы пересекаются, если start < otherEnd И end > otherStart
// (строгие неравенства: граничащие слоты не конфликтуют).
// Возвращает время конфликтующей записи либо nil
func findConflict(bookings []*domain.Booking, t types.TimeString, durationMinutes int, excludeID *int64) *types.TimeString {
	slotEnd, err := t.AddMinutes(durationMinutes)
	if err != nil {
		return nil
	}

	for _, b := range bookings {
		if !b.OccupiesSlot() || b.AppointmentTime == nil {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}

		existingStart := *b.AppointmentTime
		existingEnd, err := existingStart.AddMinutes(durationMinutes)
		if err != nil {
			continue
		}

		if existingStart.IsBefore(slotEnd) && existingEnd.IsAfter(t) {
			return b.AppointmentTime
		}
	}

	return nil
}

// matchWindow возвращает первое окно, в [start, end) которого попадает t
// Конец окна исключается: запись на время закрытия невозможна
func matchWindow(windows []*domain.AvailabilityWindow, t types.TimeString) *domain.AvailabilityWindow {
	for _, w := range windows {
		if !t.IsBefore(w.StartTime) && t.IsBefore(w.EndTime) {
			return w
		}
	}
	return nil
}

// windowsForDay отбирает окна на день недели, сохраняя исходный порядок
func windowsForDay(windows []*domain.AvailabilityWindow, day int) []*domain.AvailabilityWindow {
	result := make([]*domain.AvailabilityWindow, 0, len(windows))
	for _, w := range windows {
		if w.Day == day {
			result = append(result, w)
		}
	}
	return result
}

// formatWindows перечисляет допустимые интервалы для сообщения об ошибке
func formatWindows(windows []*domain.AvailabilityWindow) string {
	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = fmt.Sprintf("%s and %s", w.StartTime, w.EndTime)
	}
	return strings.Join(parts, " or ")
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// isDateBeyondHorizon проверяет, что дата дальше horizonDays дней от сегодня
func isDateBeyondHorizon(date, now time.Time, horizonDays int) bool {
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, horizonDays)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return dateOnly.After(maxDate)
}
