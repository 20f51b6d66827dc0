package share

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/telemetry/metrics"
	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/internal/validation"
	"github.com/2beens/fitcalc/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const maxRequestBytes = 32 * 1024

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=share_test

type shareService interface {
	Create(ctx context.Context, slug string, input json.RawMessage) (*Shared, error)
	Get(ctx context.Context, id string) (*Shared, error)
}

type CreateRequest struct {
	Calculator string          `json:"calculator"`
	Input      json.RawMessage `json:"input"`
}

type Handler struct {
	service        shareService
	metricsManager *metrics.Manager
}

func NewHandler(service shareService, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("", h.HandleCreate).Methods("POST", "OPTIONS").Name("share-create")
	r.HandleFunc("/{id}", h.HandleGet).Methods("GET", "OPTIONS").Name("share-get")
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.share.create")
	defer span.End()

	var req CreateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		log.Tracef("share create, decode request: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("calculator", req.Calculator))

	shared, err := h.service.Create(ctx, req.Calculator, req.Input)
	if err != nil {
		if vErr, ok := validation.AsError(err); ok {
			log.Tracef("share create %s: %s", req.Calculator, vErr)
			validation.WriteHTTPError(w, vErr)
			return
		}
		switch {
		case errors.Is(err, calculators.ErrUnknownCalculator):
			http.Error(w, "calculator not found", http.StatusNotFound)
		case errors.Is(err, calculators.ErrMalformedInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Errorf("share create %s: %s", req.Calculator, err)
			http.Error(w, "failed to create share", http.StatusInternalServerError)
		}
		return
	}

	if h.metricsManager != nil {
		h.metricsManager.CounterShares.WithLabelValues(shared.Calculator).Inc()
	}
	pkg.WriteJSON(w, http.StatusCreated, shared)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.share.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	shared, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrShareNotFound) {
			http.Error(w, "share not found", http.StatusNotFound)
			return
		}
		log.Errorf("get share %s: %s", id, err)
		http.Error(w, "failed to get share", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, shared)
}
