package get_available_slots

import (
	"time"

	"github.com/m04kA/HMS-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	DoctorID int64     // ID врача
	Date     time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком слотов дня
// Недоступность дня (отпуск, нет приема, дата вне горизонта) - это не ошибка,
// а ответ с Available=false и причиной
type Response struct {
	DoctorID       int64     // ID врача
	DoctorName     string    // Имя врача
	Specialization string    // Специализация врача
	Date           time.Time // Дата, на которую запрашивались слоты
	DayName        string    // Название дня недели ("Monday", ...)

	Available bool   // Есть ли прием в этот день
	Reason    string // Причина недоступности (пусто при Available=true)
	Code      string // Машиночитаемый код причины (пусто при Available=true)

	// WorkingHours часы приема первого окна дня ("09:00 - 12:00"),
	// пусто при Available=false
	WorkingHours string

	TotalSlots int    // Общее количество слотов дня
	FreeSlots  int    // Количество свободных слотов
	Slots      []Slot // Слоты дня в хронологическом порядке
}

// Slot модель временного слота
type Slot struct {
	Time   types.TimeString // Время начала слота (например, "10:00")
	IsFree bool             // Свободен ли слот
}
