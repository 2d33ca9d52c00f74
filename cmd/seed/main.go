package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hackgods/doctor-booking-assistant/internal/config"
	"github.com/hackgods/doctor-booking-assistant/internal/db"
	"github.com/hackgods/doctor-booking-assistant/internal/roster"
	"github.com/hackgods/doctor-booking-assistant/pkg/logging"
)

const upsertDoctor = `
	INSERT INTO doctors (id, name, specialty, availability, rating, position)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		specialty = EXCLUDED.specialty,
		availability = EXCLUDED.availability,
		rating = EXCLUDED.rating,
		position = EXCLUDED.position`

var fakeSpecialties = []string{
	"General Physician",
	"Cardiologist",
	"Dermatologist",
	"Pediatrician",
	"Neurologist",
	"Orthopedist",
	"Psychiatrist",
	"Ophthalmologist",
}

var slotGrid = []string{
	"8:00 AM", "8:30 AM", "9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM",
	"11:00 AM", "11:30 AM", "1:00 PM", "1:30 PM", "2:00 PM", "2:30 PM",
	"3:00 PM", "3:30 PM", "4:00 PM", "4:30 PM",
}

type seedDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

func main() {
	fake := flag.Int("fake", 0, "number of generated doctors to add after the default roster")
	seed := flag.Uint64("seed", 0, "gofakeit seed, 0 picks one from the clock")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Default().Error("config load error", "error", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)

	if cfg.PostgresDSN == "" {
		logger.Error("POSTGRES_DSN is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	doctors := append(roster.DefaultDoctors(), fakeDoctors(gofakeit.New(*seed), *fake)...)

	logger.Info("seeding doctors", "default", len(roster.DefaultDoctors()), "fake", *fake)
	if err := seedDoctors(ctx, pool, doctors); err != nil {
		logger.Error("seed doctors", "error", err)
		os.Exit(1)
	}
	logger.Info("seed complete", "doctors", len(doctors))
}

// seedDoctors creates the table if needed and upserts doctors in one
// transaction, keeping their order in the position column.
func seedDoctors(ctx context.Context, conn seedDB, doctors []roster.Doctor) error {
	if _, err := conn.Exec(ctx, db.Schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	for i, d := range doctors {
		if _, err := tx.Exec(ctx, upsertDoctor, d.ID, d.Name, d.Specialty, d.Availability, d.Rating, i); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("upsert doctor %s: %w", d.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func fakeDoctors(f *gofakeit.Faker, n int) []roster.Doctor {
	out := make([]roster.Doctor, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, roster.Doctor{
			ID:           uuid.NewString(),
			Name:         "Dr. " + f.FirstName() + " " + f.LastName(),
			Specialty:    fakeSpecialties[f.Number(0, len(fakeSpecialties)-1)],
			Availability: fakeSlots(f),
			Rating:       math.Round(f.Float64Range(3.5, 5.0)*10) / 10,
		})
	}
	return out
}

// fakeSlots picks 2 to 5 distinct slots, kept in day order.
func fakeSlots(f *gofakeit.Faker) []string {
	idx := make([]int, len(slotGrid))
	for i := range idx {
		idx[i] = i
	}
	f.ShuffleInts(idx)
	idx = idx[:f.Number(2, 5)]
	sort.Ints(idx)

	slots := make([]string, len(idx))
	for i, j := range idx {
		slots[i] = slotGrid[j]
	}
	return slots
}
