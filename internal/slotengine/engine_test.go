package slotengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	"github.com/m04kA/HMS-BookingService/pkg/ptr"
	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// Фиксированное "сегодня" для всех тестов: среда, 15 октября 2025
var testNow = time.Date(2025, 10, 15, 10, 30, 0, 0, time.UTC)

var defaultPolicy = Policy{
	SlotDurationMinutes: 20,
	HorizonDays:         60,
}

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func tsPtr(t *testing.T, s string) *types.TimeString {
	t.Helper()
	v := ts(t, s)
	return &v
}

func window(day int, start, end string) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		DoctorID:  1,
		Day:       day,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func booking(id int64, at string, status domain.BookingStatus) *domain.Booking {
	b := &domain.Booking{
		ID:          id,
		DoctorID:    1,
		BookingDate: testNow,
		Status:      status,
	}
	if at != "" {
		t := types.TimeString(at)
		b.AppointmentTime = &t
	}
	return b
}

// wednesdaySchedule расписание со средой 09:00-12:00
func wednesdaySchedule(bookings ...*domain.Booking) Schedule {
	return Schedule{
		Windows:  []*domain.AvailabilityWindow{window(2, "09:00", "12:00")},
		Bookings: bookings,
	}
}

func TestEvaluate_PastDate(t *testing.T) {
	sched := wednesdaySchedule()

	d := Evaluate(sched, Request{Date: testNow.AddDate(0, 0, -1)}, testNow, defaultPolicy)

	require.True(t, d.Rejected())
	assert.Equal(t, CodePastDate, d.Code)
	assert.True(t, d.DateRelated())
}

func TestEvaluate_PastDate_WinsOverEverything(t *testing.T) {
	// Дата в прошлом отклоняется даже при пустом расписании и отпуске
	sched := Schedule{
		Leaves: []*domain.LeaveDay{{DoctorID: 1, Date: testNow.AddDate(0, 0, -10)}},
	}

	d := Evaluate(sched, Request{Date: testNow.AddDate(0, 0, -10), Time: tsPtr(t, "09:00")}, testNow, defaultPolicy)

	assert.Equal(t, CodePastDate, d.Code)
}

func TestEvaluate_Horizon(t *testing.T) {
	sched := wednesdaySchedule()

	t.Run("beyond horizon", func(t *testing.T) {
		d := Evaluate(sched, Request{Date: testNow.AddDate(0, 0, 61)}, testNow, defaultPolicy)
		require.True(t, d.Rejected())
		assert.Equal(t, CodeTooFarAhead, d.Code)
		assert.Contains(t, d.Reason, "60 days")
	})

	t.Run("exactly at horizon", func(t *testing.T) {
		// 2025-12-14 - воскресенье, окна нет: важно, что это не TOO_FAR_AHEAD
		d := Evaluate(sched, Request{Date: testNow.AddDate(0, 0, 60)}, testNow, defaultPolicy)
		assert.NotEqual(t, CodeTooFarAhead, d.Code)
	})

	t.Run("horizon disabled", func(t *testing.T) {
		policy := Policy{SlotDurationMinutes: 20, HorizonDays: 0}
		// +70 дней от среды 15.10 - среда 24.12
		d := Evaluate(sched, Request{Date: testNow.AddDate(0, 0, 70)}, testNow, policy)
		assert.NotEqual(t, CodeTooFarAhead, d.Code)
		assert.Equal(t, OutcomeAvailable, d.Outcome)
	})
}

func TestEvaluate_OnLeave(t *testing.T) {
	sched := wednesdaySchedule()
	sched.Leaves = []*domain.LeaveDay{
		{DoctorID: 1, Date: testNow, Reason: ptr.Ptr("Medical conference")},
	}

	d := Evaluate(sched, Request{Date: testNow}, testNow, defaultPolicy)

	require.True(t, d.Rejected())
	assert.Equal(t, CodeOnLeave, d.Code)
	assert.Contains(t, d.Reason, "Medical conference")
	assert.True(t, d.DateRelated())
}

func TestEvaluate_OnLeave_NoReason(t *testing.T) {
	sched := wednesdaySchedule()
	sched.Leaves = []*domain.LeaveDay{{DoctorID: 1, Date: testNow}}

	d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "09:00")}, testNow, defaultPolicy)

	assert.Equal(t, CodeOnLeave, d.Code)
	assert.Equal(t, "Doctor is on leave on this date.", d.Reason)
}

func TestEvaluate_NotScheduled(t *testing.T) {
	// Окно только в среду; запрашиваем четверг
	sched := wednesdaySchedule()

	d := Evaluate(sched, Request{Date: testNow.AddDate(0, 0, 1)}, testNow, defaultPolicy)

	require.True(t, d.Rejected())
	assert.Equal(t, CodeNotScheduled, d.Code)
	assert.Contains(t, d.Reason, "Thursday")
}

func TestEvaluate_SlotGeneration(t *testing.T) {
	// Окно 09:00-12:00, шаг 20 минут: ровно 9 слотов 09:00 .. 11:40
	sched := wednesdaySchedule()

	d := Evaluate(sched, Request{Date: testNow}, testNow, defaultPolicy)

	require.Equal(t, OutcomeAvailable, d.Outcome)
	require.Len(t, d.Slots, 9)

	expected := []string{"09:00", "09:20", "09:40", "10:00", "10:20", "10:40", "11:00", "11:20", "11:40"}
	for i, s := range d.Slots {
		assert.Equal(t, expected[i], s.Time.String())
		assert.True(t, s.IsFree)
	}
	assert.Equal(t, 9, domain.CountFree(d.Slots))
}

func TestEvaluate_SlotGeneration_OccupiedMarked(t *testing.T) {
	sched := wednesdaySchedule(
		booking(1, "09:20", domain.StatusPending),
		booking(2, "10:00", domain.StatusAccepted),
		booking(3, "10:20", domain.StatusCancelled), // не занимает слот
	)

	d := Evaluate(sched, Request{Date: testNow}, testNow, defaultPolicy)

	require.Equal(t, OutcomeAvailable, d.Outcome)
	byTime := map[string]bool{}
	for _, s := range d.Slots {
		byTime[s.Time.String()] = s.IsFree
	}

	assert.False(t, byTime["09:20"])
	assert.False(t, byTime["10:00"])
	assert.True(t, byTime["10:20"])
	assert.Equal(t, 7, domain.CountFree(d.Slots))
}

func TestEvaluate_SlotGeneration_TrailingSlotKept(t *testing.T) {
	// Последний слот может выходить за конец окна: проверяется только начало
	sched := Schedule{
		Windows: []*domain.AvailabilityWindow{window(2, "09:00", "09:30")},
	}

	d := Evaluate(sched, Request{Date: testNow}, testNow, defaultPolicy)

	require.Equal(t, OutcomeAvailable, d.Outcome)
	require.Len(t, d.Slots, 2)
	assert.Equal(t, "09:00", d.Slots[0].Time.String())
	assert.Equal(t, "09:20", d.Slots[1].Time.String())
}

func TestEvaluate_OutsideHours(t *testing.T) {
	sched := wednesdaySchedule()

	t.Run("end time is exclusive", func(t *testing.T) {
		d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "12:00")}, testNow, defaultPolicy)
		require.True(t, d.Rejected())
		assert.Equal(t, CodeOutsideHours, d.Code)
		assert.Contains(t, d.Reason, "09:00 and 12:00")
		assert.False(t, d.DateRelated())
	})

	t.Run("before opening", func(t *testing.T) {
		d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "08:40")}, testNow, defaultPolicy)
		assert.Equal(t, CodeOutsideHours, d.Code)
	})

	t.Run("start time is inclusive", func(t *testing.T) {
		d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "09:00")}, testNow, defaultPolicy)
		assert.Equal(t, OutcomeAccepted, d.Outcome)
	})
}

func TestEvaluate_MultipleWindows(t *testing.T) {
	sched := Schedule{
		Windows: []*domain.AvailabilityWindow{
			window(2, "09:00", "12:00"),
			window(2, "14:00", "17:00"),
		},
	}

	t.Run("second window matches", func(t *testing.T) {
		d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "15:00")}, testNow, defaultPolicy)
		require.Equal(t, OutcomeAccepted, d.Outcome)
		assert.Equal(t, "14:00", d.Window.StartTime.String())
	})

	t.Run("gap between windows rejected with both listed", func(t *testing.T) {
		d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "13:00")}, testNow, defaultPolicy)
		require.Equal(t, CodeOutsideHours, d.Code)
		assert.Contains(t, d.Reason, "09:00 and 12:00")
		assert.Contains(t, d.Reason, "14:00 and 17:00")
	})

	t.Run("slot list uses first window only", func(t *testing.T) {
		d := Evaluate(sched, Request{Date: testNow}, testNow, defaultPolicy)
		require.Equal(t, OutcomeAvailable, d.Outcome)
		assert.Equal(t, "11:40", d.Slots[len(d.Slots)-1].Time.String())
	})
}

func TestEvaluate_Conflict(t *testing.T) {
	sched := wednesdaySchedule(booking(1, "09:20", domain.StatusPending))

	t.Run("exact match conflicts", func(t *testing.T) {
		d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "09:20")}, testNow, defaultPolicy)
		require.True(t, d.Rejected())
		assert.Equal(t, CodeConflict, d.Code)
		require.NotNil(t, d.ConflictTime)
		assert.Equal(t, "09:20", d.ConflictTime.String())
	})

	t.Run("adjacent slot does not conflict", func(t *testing.T) {
		// [09:00, 09:20) граничит с [09:20, 09:40) - пересечения нет
		d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "09:00")}, testNow, defaultPolicy)
		assert.Equal(t, OutcomeAccepted, d.Outcome)
	})

	t.Run("partial overlap conflicts", func(t *testing.T) {
		// [09:10, 09:30) пересекается с [09:20, 09:40)
		d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "09:10")}, testNow, defaultPolicy)
		assert.Equal(t, CodeConflict, d.Code)
	})

	t.Run("15-minute duration narrows the conflict range", func(t *testing.T) {
		policy := Policy{SlotDurationMinutes: 15, HorizonDays: 60}
		// [09:00, 09:15) не пересекается с [09:20, 09:35)
		d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "09:00")}, testNow, policy)
		assert.Equal(t, OutcomeAccepted, d.Outcome)

		// [09:10, 09:25) пересекается с [09:20, 09:35)
		d = Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "09:10")}, testNow, policy)
		assert.Equal(t, CodeConflict, d.Code)
	})
}

func TestEvaluate_CancelledBookingFreesSlot(t *testing.T) {
	// Пока запись pending - конфликт; после отмены слот снова доступен
	pending := booking(1, "09:20", domain.StatusPending)
	sched := wednesdaySchedule(pending)

	d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "09:20")}, testNow, defaultPolicy)
	require.Equal(t, CodeConflict, d.Code)

	pending.Status = domain.StatusCancelled
	d = Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "09:20")}, testNow, defaultPolicy)
	assert.Equal(t, OutcomeAccepted, d.Outcome)
}

func TestEvaluate_TerminalStatusesDoNotBlock(t *testing.T) {
	for _, status := range domain.TerminalStatuses {
		sched := wednesdaySchedule(booking(1, "09:20", status))
		d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "09:20")}, testNow, defaultPolicy)
		assert.Equal(t, OutcomeAccepted, d.Outcome, "status %s must not block the slot", status)
	}
}

func TestEvaluate_ExcludesEditedBooking(t *testing.T) {
	sched := wednesdaySchedule(
		booking(1, "09:20", domain.StatusAccepted),
		booking(2, "10:00", domain.StatusPending),
	)

	t.Run("own slot passes when editing", func(t *testing.T) {
		d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "09:20"), ExcludeBookingID: ptr.Ptr(int64(1))}, testNow, defaultPolicy)
		assert.Equal(t, OutcomeAccepted, d.Outcome)
	})

	t.Run("other bookings still conflict", func(t *testing.T) {
		d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "10:00"), ExcludeBookingID: ptr.Ptr(int64(1))}, testNow, defaultPolicy)
		assert.Equal(t, CodeConflict, d.Code)
	})
}

func TestEvaluate_UntimedBookingsDoNotConflict(t *testing.T) {
	// Записи без времени не занимают конкретный слот
	sched := wednesdaySchedule(booking(1, "", domain.StatusPending))

	d := Evaluate(sched, Request{Date: testNow, Time: tsPtr(t, "09:20")}, testNow, defaultPolicy)

	assert.Equal(t, OutcomeAccepted, d.Outcome)
}

func TestDayOfWeek_MondayBased(t *testing.T) {
	monday := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, domain.DayOfWeek(monday))
	assert.Equal(t, 2, domain.DayOfWeek(testNow))
	assert.Equal(t, 6, domain.DayOfWeek(sunday))
}
