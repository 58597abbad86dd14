package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/attendance-insights-api/internal/models"
)

type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// RecordRepository loads cumulative attendance rows for the analytics engine.
type RecordRepository struct {
	db      *sqlx.DB
	metrics queryObserver
}

// NewRecordRepository constructs a RecordRepository. metrics may be nil.
func NewRecordRepository(db *sqlx.DB, metrics queryObserver) *RecordRepository {
	return &RecordRepository{db: db, metrics: metrics}
}

// recordRow mirrors the record source schema. Subjects arrive as a Postgres
// text array; last_attendance may be NULL when the source row had no usable
// timestamp.
type recordRow struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	Department     string         `db:"department"`
	DepartmentCode string         `db:"department_code"`
	TotalClasses   int            `db:"total_classes"`
	Attended       int            `db:"attended"`
	Absent         int            `db:"absent"`
	Late           int            `db:"late"`
	AttendanceRate float64        `db:"attendance_rate"`
	RiskLevel      string         `db:"risk_level"`
	LastAttendance *time.Time     `db:"last_attendance"`
	Active         bool           `db:"active"`
	Subjects       pq.StringArray `db:"subjects"`
}

// ListByType returns every attendance row of the given record type. Rows with
// unparsable risk classifications are normalised to none rather than dropped.
func (r *RecordRepository) ListByType(ctx context.Context, recordType models.RecordType) ([]models.AttendanceRecord, error) {
	const query = `SELECT id, name, department, department_code, total_classes, attended, absent, late,
        attendance_rate, risk_level, last_attendance, active, subjects
        FROM attendance_records WHERE record_type = $1 ORDER BY name ASC`

	start := time.Now()
	var rows []recordRow
	err := r.db.SelectContext(ctx, &rows, query, string(recordType))
	if r.metrics != nil {
		r.metrics.ObserveDBQuery("list_attendance_records", time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}

	records := make([]models.AttendanceRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toModel())
	}
	return records, nil
}

// Departments returns the distinct department names present for a record type.
func (r *RecordRepository) Departments(ctx context.Context, recordType models.RecordType) ([]string, error) {
	const query = `SELECT DISTINCT department FROM attendance_records WHERE record_type = $1 ORDER BY department ASC`

	start := time.Now()
	var departments []string
	err := r.db.SelectContext(ctx, &departments, query, string(recordType))
	if r.metrics != nil {
		r.metrics.ObserveDBQuery("list_departments", time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

func (row recordRow) toModel() models.AttendanceRecord {
	level := models.RiskLevel(strings.ToLower(strings.TrimSpace(row.RiskLevel)))
	if !level.Valid() {
		level = models.RiskNone
	}
	return models.AttendanceRecord{
		ID:             row.ID,
		Name:           row.Name,
		Department:     row.Department,
		DepartmentCode: row.DepartmentCode,
		TotalClasses:   row.TotalClasses,
		Attended:       row.Attended,
		Absent:         row.Absent,
		Late:           row.Late,
		AttendanceRate: row.AttendanceRate,
		RiskLevel:      level,
		LastAttendance: row.LastAttendance,
		Active:         row.Active,
		Subjects:       []string(row.Subjects),
	}
}
