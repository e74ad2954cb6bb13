package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"schoolactivities/internal/domain"
)

// SQLSTATE codes returned by postgres that map to roster errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// Schema creates the activity tables when they are missing.
const Schema = `
CREATE TABLE IF NOT EXISTS activities (
	name             TEXT PRIMARY KEY,
	description      TEXT NOT NULL,
	schedule         TEXT NOT NULL,
	max_participants INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS activity_participants (
	id            BIGSERIAL,
	activity_name TEXT NOT NULL REFERENCES activities (name),
	email         TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (activity_name, email)
);
`

type activityRepository struct {
	DB *sql.DB
}

func NewActivityRepository(db *sql.DB) domain.ActivityRepository {
	return &activityRepository{
		DB: db,
	}
}

// Migrate applies Schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (r *activityRepository) Seed(ctx context.Context, activities []*domain.Activity) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, a := range activities {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO activities (name, description, schedule, max_participants)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO NOTHING
		`, a.Name, a.Description, a.Schedule, a.MaxParticipants)
		if err != nil {
			return fmt.Errorf("seed activity %q: %w", a.Name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("seed activity %q: rows affected: %w", a.Name, err)
		}
		// Existing activities keep their roster.
		if n == 0 {
			continue
		}
		for _, email := range a.Participants {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO activity_participants (activity_name, email)
				VALUES ($1, $2)
				ON CONFLICT (activity_name, email) DO NOTHING
			`, a.Name, email); err != nil {
				return fmt.Errorf("seed participant %q for %q: %w", email, a.Name, err)
			}
		}
	}
	return tx.Commit()
}

func (r *activityRepository) List(ctx context.Context) (map[string]*domain.Activity, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT name, description, schedule, max_participants
		FROM activities
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make(map[string]*domain.Activity)
	for rows.Next() {
		a := domain.NewActivity("", "", "", 0)
		if err := rows.Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants); err != nil {
			return nil, err
		}
		activities[a.Name] = a
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prows, err := r.DB.QueryContext(ctx, `
		SELECT activity_name, email
		FROM activity_participants
		ORDER BY activity_name, id
	`)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		var name, email string
		if err := prows.Scan(&name, &email); err != nil {
			return nil, err
		}
		if a, ok := activities[name]; ok {
			a.Participants = append(a.Participants, email)
		}
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *activityRepository) AddParticipant(ctx context.Context, activityName, email string) error {
	query := `
		INSERT INTO activity_participants (activity_name, email)
		VALUES ($1, $2)
	`
	_, err := r.DB.ExecContext(ctx, query, activityName, email)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqUniqueViolation:
				return domain.ErrAlreadySignedUp
			case pqForeignKeyViolation:
				return domain.ErrActivityNotFound
			}
		}
		return err
	}
	return nil
}

func (r *activityRepository) RemoveParticipant(ctx context.Context, activityName, email string) error {
	query := `DELETE FROM activity_participants WHERE activity_name = $1 AND email = $2`
	result, err := r.DB.ExecContext(ctx, query, activityName, email)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove participant: rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM activities WHERE name = $1)`, activityName).
		Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrActivityNotFound
	}
	return domain.ErrNotRegistered
}
