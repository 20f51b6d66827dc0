package settings

import (
	_ "embed"

	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/internal/timer"
	"github.com/2beens/fitcalc/internal/units"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SchemaSQL creates the user_settings and calculation tables.
//
//go:embed schema.sql
var SchemaSQL string

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, ErrSettingsNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (r *Repo) GetSettings(ctx context.Context, userID int64) (_ *Settings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.get")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int64("user-id", userID))

	var unitSystem, timerMode string
	s := &Settings{UserID: userID}
	err = r.db.QueryRow(ctx, `
		SELECT units, sex, birth_year, height_cm, weight_kg, activity_level,
		       default_timer_mode, sound, vibration, updated_at
		FROM user_settings
		WHERE user_id = $1
	`, userID).Scan(
		&unitSystem, &s.Sex, &s.BirthYear, &s.HeightCm, &s.WeightKg, &s.ActivityLevel,
		&timerMode, &s.Sound, &s.Vibration, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	s.Units = units.System(unitSystem)
	s.DefaultTimerMode = timer.Mode(timerMode)
	return s, nil
}

func (r *Repo) UpsertSettings(ctx context.Context, s *Settings) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.upsert")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int64("user-id", s.UserID))

	_, err = r.db.Exec(ctx, `
		INSERT INTO user_settings (
			user_id, units, sex, birth_year, height_cm, weight_kg, activity_level,
			default_timer_mode, sound, vibration, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			units = EXCLUDED.units,
			sex = EXCLUDED.sex,
			birth_year = EXCLUDED.birth_year,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			activity_level = EXCLUDED.activity_level,
			default_timer_mode = EXCLUDED.default_timer_mode,
			sound = EXCLUDED.sound,
			vibration = EXCLUDED.vibration,
			updated_at = EXCLUDED.updated_at
	`,
		s.UserID, string(s.Units), s.Sex, s.BirthYear, s.HeightCm, s.WeightKg, s.ActivityLevel,
		string(s.DefaultTimerMode), s.Sound, s.Vibration, s.UpdatedAt,
	)
	return err
}

func (r *Repo) AddCalculation(ctx context.Context, c *Calculation) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.calculation.add")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.String("calculator", c.Calculator))

	return r.db.QueryRow(ctx, `
		INSERT INTO calculation (user_id, calculator, title, input, result, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		c.UserID, c.Calculator, c.Title, string(c.Input), string(c.Result), c.Summary, c.CreatedAt,
	).Scan(&c.ID)
}

// ListCalculations returns one page of the user's history, newest first. Pages start at 1.
func (r *Repo) ListCalculations(ctx context.Context, userID int64, page, size int) (_ []*Calculation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.calculation.list")
	defer func() { endSpan(span, err) }()
	span.SetAttributes(attribute.Int("page", page), attribute.Int("size", size))

	rows, err := r.db.Query(ctx, `
		SELECT id, calculator, title, input, result, summary, created_at
		FROM calculation
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`, userID, size, size*(page-1))
	if err != nil {
		return nil, err
	}
	return scanCalculations(rows, userID)
}

func (r *Repo) AllCalculations(ctx context.Context, userID int64) (_ []*Calculation, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.calculation.all")
	defer func() { endSpan(span, err) }()

	rows, err := r.db.Query(ctx, `
		SELECT id, calculator, title, input, result, summary, created_at
		FROM calculation
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return scanCalculations(rows, userID)
}

func scanCalculations(rows pgx.Rows, userID int64) ([]*Calculation, error) {
	defer rows.Close()

	calculations := make([]*Calculation, 0)
	for rows.Next() {
		var input, result []byte
		c := &Calculation{UserID: userID}
		if err := rows.Scan(&c.ID, &c.Calculator, &c.Title, &input, &result, &c.Summary, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Input = input
		c.Result = result
		calculations = append(calculations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return calculations, nil
}

func (r *Repo) CountCalculations(ctx context.Context, userID int64) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.calculation.count")
	defer func() { endSpan(span, err) }()

	var count int
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM calculation WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return -1, err
	}
	return count, nil
}

// DeleteUser removes the user's settings and whole history in one transaction.
func (r *Repo) DeleteUser(ctx context.Context, userID int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.settings.user.delete")
	defer func() { endSpan(span, err) }()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM calculation WHERE user_id = $1`, userID); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM user_settings WHERE user_id = $1`, userID); err != nil {
		return err
	}
	return nil
}
