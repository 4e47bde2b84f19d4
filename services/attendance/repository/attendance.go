package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campus/domain"
)

type attendanceRepository struct {
	db *pgxpool.Pool
}

func NewAttendanceRepository(database *pgxpool.Pool) domain.AttendanceRepo {
	return &attendanceRepository{
		db: database,
	}
}

// Upsert writes the whole day's attendance in one statement. The unique
// constraint on (course_id, date) resolves concurrent marks to a single
// winner; the losing submission is overwritten wholesale, never merged.
func (ar *attendanceRepository) Upsert(ctx context.Context, record *domain.AttendanceRecord) error {
	entries, err := sonic.Marshal(record.Entries)
	if err != nil {
		return &domain.StoreError{Op: "upsert attendance", Err: fmt.Errorf("could not encode entries: %v", err)}
	}

	query := `
		INSERT INTO attendance_records (course_id, date, entries, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (course_id, date)
		DO UPDATE SET entries = EXCLUDED.entries, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at;
	`

	now := time.Now().UTC()

	err = ar.db.QueryRow(ctx, query, record.CourseID, record.Date, entries, now).
		Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return &domain.StoreError{Op: "upsert attendance", Err: err}
	}

	return nil
}

func (ar *attendanceRepository) GetByCourse(ctx context.Context, courseID int) ([]domain.AttendanceRecord, error) {
	query := `
		SELECT id, course_id, date, entries, created_at, updated_at
		FROM attendance_records
		WHERE course_id = $1
		ORDER BY date DESC;
	`

	rows, err := ar.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, &domain.StoreError{Op: "get attendance by course", Err: err}
	}
	defer rows.Close()

	records := []domain.AttendanceRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, &domain.StoreError{Op: "get attendance by course", Err: err}
		}
		records = append(records, *record)
	}

	if err = rows.Err(); err != nil {
		return nil, &domain.StoreError{Op: "get attendance by course", Err: err}
	}

	return records, nil
}

func (ar *attendanceRepository) GetByCourseAndDate(ctx context.Context, courseID int, date time.Time) (*domain.AttendanceRecord, error) {
	query := `
		SELECT id, course_id, date, entries, created_at, updated_at
		FROM attendance_records
		WHERE course_id = $1 AND date = $2;
	`

	row := ar.db.QueryRow(ctx, query, courseID, domain.NormalizeDate(date))

	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{
				Resource: "attendance record",
				Key:      fmt.Sprintf("course %d on %s", courseID, domain.NormalizeDate(date).Format("2006-01-02")),
			}
		}
		return nil, &domain.StoreError{Op: "get attendance by date", Err: err}
	}

	return record, nil
}

func scanRecord(row pgx.Row) (*domain.AttendanceRecord, error) {
	var record domain.AttendanceRecord
	var entries []byte

	err := row.Scan(&record.ID, &record.CourseID, &record.Date, &entries, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := sonic.Unmarshal(entries, &record.Entries); err != nil {
		return nil, fmt.Errorf("could not decode entries: %v", err)
	}

	record.Date = domain.NormalizeDate(record.Date)

	return &record, nil
}
