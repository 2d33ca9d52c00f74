package roster

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is the part of pgxpool.Pool the source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgSource reads the doctors table.
type PgSource struct {
	db Querier
}

func NewPgSource(db Querier) *PgSource {
	return &PgSource{db: db}
}

func (s *PgSource) Load(ctx context.Context) ([]Doctor, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, specialty, availability, rating
		FROM doctors
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query doctors: %w", err)
	}
	defer rows.Close()

	var result []Doctor
	for rows.Next() {
		var d Doctor
		if err := rows.Scan(&d.ID, &d.Name, &d.Specialty, &d.Availability, &d.Rating); err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate doctors: %w", err)
	}

	return result, nil
}
