package create_booking

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("create_booking: doctor not found")

	// ErrUserNotFound возвращается, когда учетная запись пациента не найдена
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrPastDate возвращается при попытке записи на прошедшую дату
	ErrPastDate = errors.New("create_booking: date is in the past")

	// ErrTooFarAhead возвращается, когда дата превышает горизонт записи
	ErrTooFarAhead = errors.New("create_booking: date is too far in the future")

	// ErrDoctorOnLeave возвращается, когда врач отсутствует в указанную дату
	ErrDoctorOnLeave = errors.New("create_booking: doctor is on leave")

	// ErrNotScheduled возвращается, когда у врача нет приема в этот день недели
	ErrNotScheduled = errors.New("create_booking: doctor is not scheduled on this day")

	// ErrOutsideHours возвращается, когда время вне окон приема врача
	ErrOutsideHours = errors.New("create_booking: time is outside working hours")

	// ErrSlotConflict возвращается, когда запрошенное время пересекается с существующей записью
	ErrSlotConflict = errors.New("create_booking: slot conflicts with an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
