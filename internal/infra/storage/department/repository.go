package department

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/HMS-BookingService/internal/domain"
	"github.com/m04kA/HMS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/HMS-BookingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с отделениями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отделений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает все отделения с количеством врачей в каждом
func (r *Repository) List(ctx context.Context) ([]*domain.Department, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"dep.id",
		"dep.name",
		"dep.description",
		"COUNT(d.id) AS doctor_count",
	).
		From("departments dep").
		LeftJoin("doctors d ON d.department_id = dep.id").
		GroupBy("dep.id", "dep.name", "dep.description").
		OrderBy("dep.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	departments := make([]*domain.Department, 0)
	for rows.Next() {
		var dep domain.Department
		if err := rows.Scan(&dep.ID, &dep.Name, &dep.Description, &dep.DoctorCount); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		departments = append(departments, &dep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return departments, nil
}

// GetByID получает отделение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"dep.id",
		"dep.name",
		"dep.description",
		"COUNT(d.id) AS doctor_count",
	).
		From("departments dep").
		LeftJoin("doctors d ON d.department_id = dep.id").
		Where(squirrel.Eq{"dep.id": id}).
		GroupBy("dep.id", "dep.name", "dep.description").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var dep domain.Department
	err = executor.QueryRowContext(ctx, query, args...).Scan(&dep.ID, &dep.Name, &dep.Description, &dep.DoctorCount)
	if err == sql.ErrNoRows {
		return nil, ErrDepartmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan department: %v", ErrScanRow, err)
	}

	return &dep, nil
}
