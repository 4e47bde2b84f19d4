package config

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"campus/domain"
)

func GetDatabaseURL() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"), os.Getenv("DB_DATABASE"))
	return dsn
}

// BootDB opens a plain database/sql connection, pings it and runs the
// bootstrap migration for the attendance table. The uniqueness of
// (course_id, date) lives here, in the schema, not in application checks.
func BootDB() (*sql.DB, error) {
	db, err := sql.Open("postgres", GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrateAttendance(db); err != nil {
		return db, err
	}

	return db, nil
}

func migrateAttendance(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS attendance_records (
		id SERIAL PRIMARY KEY,
		course_id INT NOT NULL,
		date DATE NOT NULL,
		entries JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT attendance_course_date_key UNIQUE (course_id, date)
	);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// BootPool builds the pgx pool the attendance repository runs on.
func BootPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// BootGorm opens the gorm connection used by the course/roster side and
// migrates its tables.
func BootGorm() (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(GetDatabaseURL()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	if err := db.AutoMigrate(&domain.Course{}, &domain.Student{}, &domain.Enrollment{}); err != nil {
		return nil, fmt.Errorf("failed to migrate course tables: %w", err)
	}

	return db, nil
}
