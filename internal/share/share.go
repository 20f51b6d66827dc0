package share

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/validation"

	"github.com/google/uuid"
)

type Record struct {
	ID         string          `json:"id"`
	Calculator string          `json:"calculator"`
	Title      string          `json:"title"`
	Input      json.RawMessage `json:"input"`
	Result     json.RawMessage `json:"result"`
	Summary    string          `json:"summary"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Links struct {
	URL       string `json:"url"`
	WhatsApp  string `json:"whatsapp"`
	Telegram  string `json:"telegram"`
	Email     string `json:"email"`
	Clipboard string `json:"clipboard"`
}

type Shared struct {
	*Record
	Links Links `json:"links"`
}

//go:generate mockgen -source=$GOFILE -destination=share_mocks_test.go -package=share_test

type calculator interface {
	Calculate(slug string, raw []byte) (*calculators.Outcome, error)
}

type recordStore interface {
	Save(ctx context.Context, record *Record) error
	Get(ctx context.Context, id string) (*Record, error)
}

type Service struct {
	calculator calculator
	store      recordStore
	baseURL    string
	now        func() time.Time
	newID      func() string
}

func NewService(calculator calculator, store recordStore, baseURL string) *Service {
	return &Service{
		calculator: calculator,
		store:      store,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Create recomputes the result from the input so a shared link always shows
// what the calculator really returns, then stores it.
func (s *Service) Create(ctx context.Context, slug string, input json.RawMessage) (*Shared, error) {
	if slug == "" {
		return nil, validation.NewError("calculator", "calculator is required")
	}
	if len(input) > maxStoredInputSize {
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

	record := &Record{
		ID:         s.newID(),
		Calculator: outcome.Calculator,
		Title:      outcome.Title,
		Input:      normalizedInput,
		Result:     result,
		Summary:    outcome.Summary,
		CreatedAt:  s.now().UTC().Truncate(time.Second),
	}
	if err := s.store.Save(ctx, record); err != nil {
		return nil, err
	}

	return &Shared{Record: record, Links: s.Links(record)}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Shared, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrShareNotFound
	}

	record, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Shared{Record: record, Links: s.Links(record)}, nil
}

func (s *Service) Links(record *Record) Links {
	shareURL := fmt.Sprintf("%s/share/%s", s.baseURL, record.ID)
	text := record.Summary + " " + shareURL
	return Links{
		URL:      shareURL,
		WhatsApp: "https://wa.me/?text=" + url.QueryEscape(text),
		Telegram: fmt.Sprintf("https://t.me/share/url?url=%s&text=%s",
			url.QueryEscape(shareURL), url.QueryEscape(record.Summary)),
		Email: fmt.Sprintf("mailto:?subject=%s&body=%s",
			mailtoEscape(record.Title), mailtoEscape(text)),
		Clipboard: text,
	}
}

// mailtoEscape encodes spaces as %20, mail clients do not decode + in mailto links
func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
