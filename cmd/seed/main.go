package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/hackgods/clinic-scheduling-assistant/internal/db"
	"github.com/hackgods/clinic-scheduling-assistant/pkg/logging"
)

const (
	patientCount = 50
	scheduleDays = 7
	firstHour    = 9
	lastHour     = 16
)

func main() {
	logger := logging.New("info", "dev")
	logger.Info().Msg("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		logger.Fatal().Msg("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := createTables(context.Background(), pool); err != nil {
		logger.Fatal().Err(err).Msg("create tables")
	}
	if err := seedPatients(context.Background(), pool, patientCount, logger); err != nil {
		logger.Fatal().Err(err).Msg("seed patients")
	}
	if err := seedSchedule(context.Background(), pool, logger); err != nil {
		logger.Fatal().Err(err).Msg("seed schedule")
	}

	logger.Info().Msg("seed complete")
}

func createTables(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS patients (
			patient_id    text PRIMARY KEY,
			name          text NOT NULL,
			date_of_birth date NOT NULL,
			is_returning  boolean NOT NULL
		);

		CREATE TABLE IF NOT EXISTS schedule_slots (
			slot_date    date NOT NULL,
			slot_time    text NOT NULL,
			is_available boolean NOT NULL,
			PRIMARY KEY (slot_date, slot_time)
		);

		CREATE TABLE IF NOT EXISTS appointment_log (
			id               bigserial PRIMARY KEY,
			name             text NOT NULL,
			patient_type     text NOT NULL,
			appointment_date date NOT NULL,
			appointment_time text NOT NULL,
			duration_minutes int NOT NULL,
			email            text NOT NULL,
			created_at       timestamptz NOT NULL DEFAULT now()
		);
	`)
	return err
}

func tableEmpty(ctx context.Context, pool *pgxpool.Pool, table string) (bool, error) {
	var count int
	err := pool.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", table)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int, logger zerolog.Logger) error {
	empty, err := tableEmpty(ctx, pool, "patients")
	if err != nil {
		return err
	}
	if !empty {
		logger.Info().Msg("patients already seeded, skipping")
		return nil
	}

	logger.Info().Int("count", count).Msg("seeding patients")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for i := 1; i <= count; i++ {
		id := fmt.Sprintf("P%03d", i)
		name := gofakeit.Name()
		dob := gofakeit.DateRange(now.AddDate(-90, 0, 0), now.AddDate(-18, 0, 0))
		// Roughly one in three patients has a prior visit.
		isReturning := gofakeit.Number(0, 2) == 0

		_, err := tx.Exec(ctx, `
			INSERT INTO patients (patient_id, name, date_of_birth, is_returning)
			VALUES ($1, $2, $3, $4)
		`, id, name, dob, isReturning)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func seedSchedule(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	empty, err := tableEmpty(ctx, pool, "schedule_slots")
	if err != nil {
		return err
	}
	if !empty {
		logger.Info().Msg("schedule already seeded, skipping")
		return nil
	}

	logger.Info().Int("days", scheduleDays).Msg("seeding schedule")

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	start := time.Now().AddDate(0, 0, 1)
	for day := 0; day < scheduleDays; day++ {
		date := start.AddDate(0, 0, day).Format("2006-01-02")
		for hour := firstHour; hour <= lastHour; hour++ {
			slotTime := fmt.Sprintf("%02d:00", hour)
			available := gofakeit.Number(0, 2) == 0

			_, err := tx.Exec(ctx, `
				INSERT INTO schedule_slots (slot_date, slot_time, is_available)
				VALUES ($1, $2, $3)
			`, date, slotTime, available)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}
