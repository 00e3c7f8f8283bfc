package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrNotOwner возвращается, когда запись принадлежит другому пациенту
	ErrNotOwner = errors.New("update_booking: booking belongs to another user")

	// ErrNotEditable возвращается, когда запись в терминальном статусе
	ErrNotEditable = errors.New("update_booking: booking can no longer be updated")

	// ErrPastDate возвращается при попытке переноса на прошедшую дату
	ErrPastDate = errors.New("update_booking: date is in the past")

	// ErrTooFarAhead возвращается, когда дата превышает горизонт записи
	ErrTooFarAhead = errors.New("update_booking: date is too far in the future")

	// ErrDoctorOnLeave возвращается, когда врач отсутствует в указанную дату
	ErrDoctorOnLeave = errors.New("update_booking: doctor is on leave")

	// ErrNotScheduled возвращается, когда у врача нет приема в этот день недели
	ErrNotScheduled = errors.New("update_booking: doctor is not scheduled on this day")

	// ErrOutsideHours возвращается, когда время вне окон приема врача
	ErrOutsideHours = errors.New("update_booking: time is outside working hours")

	// ErrSlotConflict возвращается, когда новое время пересекается с другой записью
	ErrSlotConflict = errors.New("update_booking: slot conflicts with an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
