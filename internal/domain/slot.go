package domain

import "github.com/m04kA/HMS-BookingService/pkg/types"

// DaySlot represents one candidate appointment slot within a day
type DaySlot struct {
	Time   types.TimeString
	IsFree bool
}

// CountFree returns the number of free slots in the list
func CountFree(slots []DaySlot) int {
	n := 0
	for _, s := range slots {
		if s.IsFree {
			n++
		}
	}
	return n
}
