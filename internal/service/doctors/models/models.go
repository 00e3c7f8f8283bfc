package models

import (
	"time"

	"github.com/m04kA/HMS-BookingService/internal/domain"
)

// Request модели

// ListDoctorsRequest запрос на получение каталога врачей
type ListDoctorsRequest struct {
	DepartmentID   *int64  `json:"departmentId,omitempty"`   // Фильтр по отделению (опционально)
	Specialization *string `json:"specialization,omitempty"` // Точное совпадение специализации (опционально)
	Search         *string `json:"search,omitempty"`         // Поиск по имени и специализации (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListDoctorsRequest) ToDomainFilter() domain.DoctorsFilter {
	return domain.DoctorsFilter{
		DepartmentID:   r.DepartmentID,
		Specialization: r.Specialization,
		Search:         r.Search,
	}
}

// AddAvailabilityRequest запрос на добавление окна приема
type AddAvailabilityRequest struct {
	UserID    int64  `json:"userId"`
	Day       int    `json:"day"`       // Понедельник=0 .. Воскресенье=6
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// AddLeaveRequest запрос на добавление дня отсутствия
type AddLeaveRequest struct {
	UserID int64   `json:"userId"`
	Date   string  `json:"date"` // "2025-10-15"
	Reason *string `json:"reason,omitempty"`
}

// Response модели

// DoctorResponse ответ с данными врача
type DoctorResponse struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Specialization string  `json:"specialization"`
	DepartmentID   int64   `json:"departmentId"`
	DepartmentName string  `json:"departmentName"`
	ImageURL       *string `json:"imageUrl,omitempty"`
}

// DoctorDetailsResponse ответ с карточкой врача: расписание, ближайшие
// отпуска и доступность на сегодня
type DoctorDetailsResponse struct {
	DoctorResponse
	Presence     string                       `json:"presence"` // "Present" / "Absent" / "Not Scheduled"
	Availability []AvailabilityWindowResponse `json:"availability"`
	Leaves       []LeaveDayResponse           `json:"upcomingLeaves"`
}

// AvailabilityWindowResponse окно приема врача
type AvailabilityWindowResponse struct {
	ID        int64  `json:"id"`
	Day       int    `json:"day"`
	DayName   string `json:"dayName"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// LeaveDayResponse день отсутствия врача
type LeaveDayResponse struct {
	ID     int64   `json:"id"`
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// DoctorListResponse ответ со списком врачей
type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
}

// DepartmentResponse ответ с данными отделения
type DepartmentResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DoctorCount int    `json:"doctorCount"`
}

// DepartmentListResponse ответ со списком отделений
type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
}

// Методы конвертации

// FromDomainDoctor конвертирует domain модель в DTO
func FromDomainDoctor(d *domain.Doctor) *DoctorResponse {
	if d == nil {
		return nil
	}

	return &DoctorResponse{
		ID:             d.ID,
		Name:           d.Name,
		Specialization: d.Specialization,
		DepartmentID:   d.DepartmentID,
		DepartmentName: d.DepartmentName,
		ImageURL:       d.ImageURL,
	}
}

// FromDomainDoctorList конвертирует список domain моделей в DTO
func FromDomainDoctorList(doctors []*domain.Doctor) *DoctorListResponse {
	resp := &DoctorListResponse{
		Doctors: make([]DoctorResponse, 0, len(doctors)),
	}

	for _, d := range doctors {
		resp.Doctors = append(resp.Doctors, *FromDomainDoctor(d))
	}

	return resp
}

// FromDomainWindow конвертирует окно приема в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) AvailabilityWindowResponse {
	return AvailabilityWindowResponse{
		ID:        w.ID,
		Day:       w.Day,
		DayName:   domain.DayName(w.Day),
		StartTime: w.StartTime.String(),
		EndTime:   w.EndTime.String(),
	}
}

// FromDomainLeave конвертирует день отсутствия в DTO
func FromDomainLeave(l *domain.LeaveDay) LeaveDayResponse {
	return LeaveDayResponse{
		ID:     l.ID,
		Date:   l.Date.Format(domain.DateFormat),
		Reason: l.Reason,
	}
}

// FromDomainDepartmentList конвертирует список отделений в DTO
func FromDomainDepartmentList(departments []*domain.Department) *DepartmentListResponse {
	resp := &DepartmentListResponse{
		Departments: make([]DepartmentResponse, 0, len(departments)),
	}

	for _, d := range departments {
		resp.Departments = append(resp.Departments, DepartmentResponse{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			DoctorCount: d.DoctorCount,
		})
	}

	return resp
}

// ParseDate парсит дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}
