package doctor

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	"github.com/m04kA/HMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HMS-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// doctorColumns колонки выборки врача (с именем отделения)
var doctorColumns = []string{
	"d.id",
	"d.user_id",
	"d.name",
	"d.specialization",
	"d.department_id",
	"dep.name AS department_name",
	"d.image_url",
	"d.created_at",
	"d.updated_at",
}

// Repository репозиторий для работы с врачами, их расписанием и отпусками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория врачей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает врача по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(doctorColumns...).
		From("doctors d").
		Join("departments dep ON dep.id = d.department_id").
		Where(squirrel.Eq{"d.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	doctor, err := scanDoctor(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan doctor: %v", ErrScanRow, err)
	}

	return doctor, nil
}

// List получает каталог врачей с фильтрацией по отделению, специализации
// и текстовому поиску по имени/специализации
func (r *Repository) List(ctx context.Context, filter domain.DoctorsFilter) ([]*domain.Doctor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(doctorColumns...).
		From("doctors d").
		Join("departments dep ON dep.id = d.department_id").
		OrderBy("d.name ASC")

	if filter.DepartmentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"d.department_id": *filter.DepartmentID})
	}
	if filter.Specialization != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"d.specialization": *filter.Specialization})
	}
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"d.name": pattern},
			squirrel.ILike{"d.specialization": pattern},
		})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	doctors := make([]*domain.Doctor, 0)
	for rows.Next() {
		doctor, err := scanDoctor(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		doctors = append(doctors, doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return doctors, nil
}

// GetAvailability получает недельные окна приема врача
// Порядок (day, start_time, id) определяет "первое подходящее окно"
// при оценке слота
func (r *Repository) GetAvailability(ctx context.Context, doctorID int64) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"doctor_id",
		"day",
		"start_time",
		"end_time",
	).
		From("doctor_availability").
		Where(squirrel.Eq{"doctor_id": doctorID}).
		OrderBy("day ASC, start_time ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		if err := rows.Scan(&w.ID, &w.DoctorID, &w.Day, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("%w: GetAvailability - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailability - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// CreateAvailability добавляет окно приема
func (r *Repository) CreateAvailability(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("doctor_availability").
		Columns("doctor_id", "day", "start_time", "end_time").
		Values(window.DoctorID, window.Day, window.StartTime, window.EndTime).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateAvailability - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&window.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateAvailability - execute insert: %v", ErrExecQuery, err)
	}

	return window, nil
}

// GetLeavesByDate получает отпуска врача на конкретную дату
func (r *Repository) GetLeavesByDate(ctx context.Context, doctorID int64, date time.Time) ([]*domain.LeaveDay, error) {
	return r.getLeaves(ctx, squirrel.And{
		squirrel.Eq{"doctor_id": doctorID},
		squirrel.Eq{"date": date},
	})
}

// GetUpcomingLeaves получает отпуска врача начиная с указанной даты
func (r *Repository) GetUpcomingLeaves(ctx context.Context, doctorID int64, from time.Time) ([]*domain.LeaveDay, error) {
	return r.getLeaves(ctx, squirrel.And{
		squirrel.Eq{"doctor_id": doctorID},
		squirrel.GtOrEq{"date": from},
	})
}

func (r *Repository) getLeaves(ctx context.Context, where squirrel.Sqlizer) ([]*domain.LeaveDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"doctor_id",
		"date",
		"reason",
	).
		From("doctor_leaves").
		Where(where).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getLeaves - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getLeaves - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	leaves := make([]*domain.LeaveDay, 0)
	for rows.Next() {
		var l domain.LeaveDay
		if err := rows.Scan(&l.ID, &l.DoctorID, &l.Date, &l.Reason); err != nil {
			return nil, fmt.Errorf("%w: getLeaves - scan row: %v", ErrScanRow, err)
		}
		leaves = append(leaves, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getLeaves - rows error: %v", ErrScanRow, err)
	}

	return leaves, nil
}

// CreateLeave добавляет день отсутствия врача
func (r *Repository) CreateLeave(ctx context.Context, leave *domain.LeaveDay) (*domain.LeaveDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("doctor_leaves").
		Columns("doctor_id", "date", "reason").
		Values(leave.DoctorID, leave.Date, leave.Reason).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateLeave - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&leave.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateLeave - execute insert: %v", ErrExecQuery, err)
	}

	return leave, nil
}

// scanDoctor сканирует одну строку в domain.Doctor
func scanDoctor(scan func(dest ...interface{}) error) (*domain.Doctor, error) {
	var doctor domain.Doctor
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&doctor.ID,
		&doctor.UserID,
		&doctor.Name,
		&doctor.Specialization,
		&doctor.DepartmentID,
		&doctor.DepartmentName,
		&doctor.ImageURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	doctor.CreatedAt = createdAt.Time
	doctor.UpdatedAt = updatedAt.Time

	return &doctor, nil
}
