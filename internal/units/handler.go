package units

import (
	"context"
	"net/http"

	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type defaultResolver interface {
	DefaultSystem(ctx context.Context, userIP string) Default
}

type Handler struct {
	resolver defaultResolver
}

func NewHandler(resolver defaultResolver) *Handler {
	return &Handler{
		resolver: resolver,
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/units/default", h.HandleDefault).Methods("GET", "OPTIONS").Name("units-default")
}

func (h *Handler) HandleDefault(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.units.default")
	defer span.End()

	userIP, err := pkg.ReadUserIP(r)
	if err != nil {
		log.Debugf("units default: read user ip: %s", err)
	}

	pkg.WriteJSON(w, http.StatusOK, h.resolver.DefaultSystem(ctx, userIP))
}
