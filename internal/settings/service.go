package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/validation"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	maxHistoryInputSize = 16 * 1024
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=settings_test

type settingsRepo interface {
	GetSettings(ctx context.Context, userID int64) (*Settings, error)
	UpsertSettings(ctx context.Context, s *Settings) error
	AddCalculation(ctx context.Context, c *Calculation) error
	ListCalculations(ctx context.Context, userID int64, page, size int) ([]*Calculation, error)
	AllCalculations(ctx context.Context, userID int64) ([]*Calculation, error)
	CountCalculations(ctx context.Context, userID int64) (int, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type calculator interface {
	Calculate(slug string, raw []byte) (*calculators.Outcome, error)
}

type sessionRevoker interface {
	Revoke(ctx context.Context, token string) error
}

type Service struct {
	repo       settingsRepo
	calculator calculator
	sessions   sessionRevoker
	now        func() time.Time
}

func NewService(repo settingsRepo, calculator calculator, sessions sessionRevoker) *Service {
	return &Service{
		repo:       repo,
		calculator: calculator,
		sessions:   sessions,
		now:        time.Now,
	}
}

// Settings returns the stored settings, or the defaults for a user who never saved any.
func (s *Service) Settings(ctx context.Context, userID int64) (*Settings, error) {
	stored, err := s.repo.GetSettings(ctx, userID)
	if errors.Is(err, ErrSettingsNotFound) {
		return DefaultSettings(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return stored, nil
}

func (s *Service) UpdateSettings(ctx context.Context, userID int64, update Settings) (*Settings, error) {
	if err := validation.Struct(update); err != nil {
		return nil, err
	}
	now := s.now().UTC().Truncate(time.Second)
	if update.BirthYear > now.Year() {
		return nil, validation.NewError("birth_year", fmt.Sprintf("birth_year must be at most %d", now.Year()))
	}

	update.UserID = userID
	update.UpdatedAt = &now
	if err := s.repo.UpsertSettings(ctx, &update); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return &update, nil
}

// Record recomputes the calculation and appends it to the user's history.
func (s *Service) Record(ctx context.Context, userID int64, slug string, input json.RawMessage) (*Calculation, error) {
	if slug == "" {
		return nil, validation.NewError("calculator", "calculator is required")
	}
	if len(input) > maxHistoryInputSize {
		return nil, validation.NewError("input", "input is too large")
	}

	outcome, err := s.calculator.Calculate(slug, input)
	if err != nil {
		return nil, err
	}

	normalizedInput, err := json.Marshal(outcome.Input)
	if err != nil {
		return nil, fmt.Errorf("marshal input: %w", err)
	}
	result, err := json.Marshal(outcome.Result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	calculation := &Calculation{
		UserID:     userID,
		Calculator: outcome.Calculator,
		Title:      outcome.Title,
		Input:      normalizedInput,
		Result:     result,
		Summary:    outcome.Summary,
		CreatedAt:  s.now().UTC().Truncate(time.Second),
	}
	if err := s.repo.AddCalculation(ctx, calculation); err != nil {
		return nil, fmt.Errorf("add calculation: %w", err)
	}
	return calculation, nil
}

// History returns one page of the history. Page is 1-based; size falls back to
// DefaultPageSize and is capped at MaxPageSize.
func (s *Service) History(ctx context.Context, userID int64, page, size int) (*HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	total, err := s.repo.CountCalculations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count calculations: %w", err)
	}
	items := make([]*Calculation, 0)
	if total > 0 {
		items, err = s.repo.ListCalculations(ctx, userID, page, size)
		if err != nil {
			return nil, fmt.Errorf("list calculations: %w", err)
		}
	}

	return &HistoryPage{
		Items: items,
		Page:  page,
		Size:  size,
		Total: total,
	}, nil
}

func (s *Service) Export(ctx context.Context, userID int64) (*Export, error) {
	settings, err := s.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.AllCalculations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("all calculations: %w", err)
	}
	return &Export{
		Settings:   settings,
		History:    history,
		ExportedAt: s.now().UTC().Truncate(time.Second),
	}, nil
}

// DeleteAccount removes the stored data, then the session used for the request.
func (s *Service) DeleteAccount(ctx context.Context, userID int64, token string) error {
	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user data: %w", err)
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		// data is already gone, the session expires on its own
		log.Errorf("delete account [%d], revoke session: %s", userID, err)
	}
	return nil
}
