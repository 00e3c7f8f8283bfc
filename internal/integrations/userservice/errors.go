package userservice

import "errors"

var (
	// ErrUserNotFound возвращается, когда учетная запись не найдена
	ErrUserNotFound = errors.New("user not found")

	// ErrNoDoctorProfile возвращается, когда у пользователя нет профиля врача
	ErrNoDoctorProfile = errors.New("user has no doctor profile")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")
)
