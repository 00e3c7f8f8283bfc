package userservice

// User учетная запись пользователя из UserService
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// FullName возвращает полное имя либо username, если имя не заполнено
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// DoctorProfile профиль врача, привязанный к учетной записи
type DoctorProfile struct {
	UserID   int64 `json:"user_id"`
	DoctorID int64 `json:"doctor_id"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
