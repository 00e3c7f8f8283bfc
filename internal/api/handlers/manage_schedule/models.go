package manage_schedule

// AddAvailabilityRequest HTTP request model
type AddAvailabilityRequest struct {
	Day       int    `json:"day"`       // Понедельник=0 .. Воскресенье=6
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// AddLeaveRequest HTTP request model
type AddLeaveRequest struct {
	Date   string  `json:"date"` // "2025-10-15"
	Reason *string `json:"reason,omitempty"`
}
