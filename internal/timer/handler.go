package timer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/2beens/fitcalc/internal/telemetry/metrics"
	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/internal/validation"
	"github.com/2beens/fitcalc/pkg"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	wsWriteTimeout   = 5 * time.Second
	wsMaxMessageSize = 4 * 1024
)

type command struct {
	Action Action `json:"action"`
}

type Handler struct {
	frameInterval  time.Duration
	maxSessions    int64
	activeSessions atomic.Int64
	allowedOrigins map[string]bool
	metricsManager *metrics.Manager
	upgrader       websocket.Upgrader
}

func NewHandler(
	frameInterval time.Duration,
	maxSessions int,
	allowedOrigins []string,
	metricsManager *metrics.Manager,
) *Handler {
	h := &Handler{
		frameInterval:  frameInterval,
		maxSessions:    int64(maxSessions),
		allowedOrigins: map[string]bool{},
		metricsManager: metricsManager,
	}
	for _, o := range allowedOrigins {
		h.allowedOrigins[o] = true
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/plan", h.HandlePlan).Methods("POST", "OPTIONS").Name("timer-plan")
	r.HandleFunc("/ws", h.HandleWebsocket).Methods("GET").Name("timer-ws")
}

// checkOrigin lets through non-browser clients (no Origin header) and the configured origins.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || h.allowedOrigins[origin]
}

func (h *Handler) HandlePlan(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.timer.plan")
	defer span.End()

	var cfg Config
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, wsMaxMessageSize)).Decode(&cfg); err != nil {
		log.Tracef("timer plan, decode config: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	plan, err := PlanFor(cfg)
	if err != nil {
		if vErr, ok := validation.AsError(err); ok {
			validation.WriteHTTPError(w, vErr)
			return
		}
		log.Errorf("timer plan: %s", err)
		http.Error(w, "failed to plan timer", http.StatusBadRequest)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, plan)
}

// ConfigFromQuery reads a timer config from url query values: ?mode=tabata&work=20&rest=10
func ConfigFromQuery(q url.Values) (Config, error) {
	cfg := Config{Mode: Mode(q.Get("mode"))}
	vErr := &validation.Error{}

	intParam := func(name string) *int {
		raw := q.Get(name)
		if raw == "" {
			return nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			vErr.Add(name, fmt.Sprintf("%s must be a whole number", name))
			return nil
		}
		return &v
	}
	valueOf := func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	}

	cfg.Work = valueOf(intParam("work"))
	cfg.Rest = intParam("rest")
	cfg.Rounds = valueOf(intParam("rounds"))
	cfg.Total = valueOf(intParam("total"))
	cfg.Interval = valueOf(intParam("interval"))
	cfg.Countdown = intParam("countdown")

	if len(vErr.Fields) > 0 {
		return Config{}, vErr
	}
	return cfg, nil
}

func (h *Handler) HandleWebsocket(w http.ResponseWriter, r *http.Request) {
	var t *Timer
	cfg, err := ConfigFromQuery(r.URL.Query())
	if err == nil {
		t, err = New(cfg)
	}
	if err != nil {
		if vErr, ok := validation.AsError(err); ok {
			validation.WriteHTTPError(w, vErr)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	active := h.activeSessions.Add(1)
	defer h.activeSessions.Add(-1)
	if h.maxSessions > 0 && active > h.maxSessions {
		log.Warnf("timer sessions limit reached [%d]", h.maxSessions)
		http.Error(w, "too many timer sessions", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already answered the client
		log.Debugf("timer websocket upgrade: %s", err)
		return
	}
	defer conn.Close()

	started := time.Now()
	if h.metricsManager != nil {
		h.metricsManager.GaugeTimerSessions.Inc()
		h.metricsManager.CounterTimerSessions.WithLabelValues(string(cfg.Mode)).Inc()
		defer func() {
			h.metricsManager.GaugeTimerSessions.Dec()
			h.metricsManager.HistogramTimerSession.Observe(time.Since(started).Seconds())
		}()
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	runner := NewRunner(t, h.frameInterval)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		runner.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		defer cancel()
		h.readCommands(ctx, conn, runner)
	}()

	for upd := range runner.Updates() {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(upd); err != nil {
			log.Debugf("timer websocket write: %s", err)
			cancel()
			break
		}
	}

	cancel()
	// unblocks the reader
	_ = conn.Close()
	// drain so Run can return if it was publishing
	for range runner.Updates() {
	}
	wg.Wait()
}

func (h *Handler) readCommands(ctx context.Context, conn *websocket.Conn, runner *Runner) {
	conn.SetReadLimit(wsMaxMessageSize)
	// the http server read timeout would otherwise end long sessions
	_ = conn.SetReadDeadline(time.Time{})
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debugf("timer websocket read: %s", err)
			}
			return
		}

		var cmd command
		if err := json.Unmarshal(msg, &cmd); err != nil {
			log.Tracef("timer websocket, bad command [%s]: %s", msg, err)
			// the runner answers unknown actions with an error update
			cmd.Action = ""
		}
		if err := runner.Send(ctx, cmd.Action); err != nil {
			return
		}
	}
}
