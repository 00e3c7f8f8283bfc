package handlers

import "strings"

// ErrorDetail извлекает человекочитаемую часть ошибки, обернутой поверх
// sentinel через fmt.Errorf("%w: ..."). Если префикс не совпал,
// возвращает fallback
func ErrorDetail(err error, sentinel error, fallback string) string {
	prefix := sentinel.Error() + ": "
	if msg := err.Error(); strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return fallback
}
