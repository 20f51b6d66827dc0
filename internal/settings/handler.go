package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/fitcalc/internal/auth"
	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/internal/validation"
	"github.com/2beens/fitcalc/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxBodySize = 64 * 1024

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=settings_test

type settingsService interface {
	Settings(ctx context.Context, userID int64) (*Settings, error)
	UpdateSettings(ctx context.Context, userID int64, update Settings) (*Settings, error)
	Record(ctx context.Context, userID int64, slug string, input json.RawMessage) (*Calculation, error)
	History(ctx context.Context, userID int64, page, size int) (*HistoryPage, error)
	Export(ctx context.Context, userID int64) (*Export, error)
	DeleteAccount(ctx context.Context, userID int64, token string) error
}

type RecordRequest struct {
	Calculator string          `json:"calculator"`
	Input      json.RawMessage `json:"input"`
}

type Handler struct {
	service settingsService
}

func NewHandler(service settingsService) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/settings", h.HandleGetSettings).Methods("GET", "OPTIONS").Name("user-settings-get")
	r.HandleFunc("/settings", h.HandleUpdateSettings).Methods("PUT", "OPTIONS").Name("user-settings-update")
	r.HandleFunc("/history", h.HandleHistory).Methods("GET", "OPTIONS").Name("user-history")
	r.HandleFunc("/history", h.HandleRecord).Methods("POST", "OPTIONS").Name("user-history-add")
	r.HandleFunc("/export", h.HandleExport).Methods("GET", "OPTIONS").Name("user-export")
	r.HandleFunc("/account", h.HandleDeleteAccount).Methods("DELETE", "OPTIONS").Name("user-account-delete")
}

// identity is set by the auth middleware; a request without one never reached auth
func identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
	}
	return id, ok
}

func (h *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.get")
	defer span.End()

	id, ok := identity(w, r)
	if !ok {
		return
	}

	s, err := h.service.Settings(ctx, id.UserID)
	if err != nil {
		log.Errorf("get settings [%d]: %s", id.UserID, err)
		http.Error(w, "failed to get settings", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.update")
	defer span.End()

	id, ok := identity(w, r)
	if !ok {
		return
	}

	var update Settings
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&update); err != nil {
		log.Tracef("update settings, decode: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.service.UpdateSettings(ctx, id.UserID, update)
	if err != nil {
		if vErr, ok := validation.AsError(err); ok {
			validation.WriteHTTPError(w, vErr)
			return
		}
		log.Errorf("update settings [%d]: %s", id.UserID, err)
		http.Error(w, "failed to update settings", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.history")
	defer span.End()

	id, ok := identity(w, r)
	if !ok {
		return
	}

	page, err := intQueryParam(r, "page", 1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	size, err := intQueryParam(r, "size", DefaultPageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	history, err := h.service.History(ctx, id.UserID, page, size)
	if err != nil {
		log.Errorf("history [%d]: %s", id.UserID, err)
		http.Error(w, "failed to get history", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, history)
}

func intQueryParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return v, nil
}

func (h *Handler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.record")
	defer span.End()

	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req RecordRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		log.Tracef("record calculation, decode: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	calculation, err := h.service.Record(ctx, id.UserID, req.Calculator, req.Input)
	if err != nil {
		if vErr, ok := validation.AsError(err); ok {
			validation.WriteHTTPError(w, vErr)
			return
		}
		switch {
		case errors.Is(err, calculators.ErrUnknownCalculator):
			http.Error(w, "calculator not found", http.StatusNotFound)
		case errors.Is(err, calculators.ErrMalformedInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Errorf("record calculation [%d]: %s", id.UserID, err)
			http.Error(w, "failed to record calculation", http.StatusInternalServerError)
		}
		return
	}

	pkg.WriteJSON(w, http.StatusCreated, calculation)
}

func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.export")
	defer span.End()

	id, ok := identity(w, r)
	if !ok {
		return
	}

	export, err := h.service.Export(ctx, id.UserID)
	if err != nil {
		log.Errorf("export [%d]: %s", id.UserID, err)
		http.Error(w, "failed to export data", http.StatusInternalServerError)
		return
	}

	exportJson, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		log.Errorf("export [%d], marshal: %s", id.UserID, err)
		http.Error(w, "failed to export data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="fitcalc-export.json"`)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exportJson, http.StatusOK)
}

func (h *Handler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.account.delete")
	defer span.End()

	id, ok := identity(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteAccount(ctx, id.UserID, id.Token); err != nil {
		log.Errorf("delete account [%d]: %s", id.UserID, err)
		http.Error(w, "failed to delete account", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
