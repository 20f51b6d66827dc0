package calculators

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/2beens/fitcalc/internal/telemetry/metrics"
	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/internal/validation"
	"github.com/2beens/fitcalc/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const maxInputBytes = 64 << 10

type EmbedSnippet struct {
	Slug    string `json:"slug"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

type Handler struct {
	registry       *Registry
	metricsManager *metrics.Manager
	baseURL        string
}

func NewHandler(registry *Registry, metricsManager *metrics.Manager, baseURL string) *Handler {
	return &Handler{
		registry:       registry,
		metricsManager: metricsManager,
		baseURL:        strings.TrimSuffix(baseURL, "/"),
	}
}

func (h *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/calculators", h.HandleList).Methods("GET", "OPTIONS").Name("list-calculators")
	r.HandleFunc("/calculators/{slug}", h.HandleDescribe).Methods("GET", "OPTIONS").Name("describe-calculator")
	r.HandleFunc("/calculators/{slug}", h.HandleCalculate).Methods("POST", "OPTIONS").Name("calculate")
	r.HandleFunc("/calculators/{slug}/embed", h.HandleEmbedSnippet).Methods("GET", "OPTIONS").Name("embed-snippet")
	r.HandleFunc("/embed/{slug}", h.HandleEmbedPage).Methods("GET", "OPTIONS").Name("embed-page")
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculators.list")
	defer span.End()

	pkg.WriteJSON(w, http.StatusOK, h.registry.List())
}

func (h *Handler) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculators.describe")
	defer span.End()

	slug := mux.Vars(r)["slug"]
	desc, err := h.registry.Describe(slug)
	if err != nil {
		h.writeError(w, slug, err)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, desc)
}

func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculators.calculate")
	defer span.End()

	slug := mux.Vars(r)["slug"]
	span.SetAttributes(attribute.String("calculator", slug))

	calculator, err := h.registry.Get(slug)
	if err != nil {
		h.writeError(w, slug, err)
		return
	}

	raw, err := ReadInput(w, r, calculator.Meta())
	if err != nil {
		h.writeError(w, slug, err)
		return
	}

	outcome, err := calculator.Calculate(raw)
	if err != nil {
		h.writeError(w, slug, err)
		return
	}

	if h.metricsManager != nil {
		h.metricsManager.CounterCalculations.WithLabelValues(slug).Inc()
	}
	pkg.WriteJSON(w, http.StatusOK, outcome)
}

func (h *Handler) embedURL(slug string) string {
	return fmt.Sprintf("%s/embed/%s", h.baseURL, slug)
}

func (h *Handler) HandleEmbedSnippet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculators.embedSnippet")
	defer span.End()

	slug := mux.Vars(r)["slug"]
	calculator, err := h.registry.Get(slug)
	if err != nil {
		h.writeError(w, slug, err)
		return
	}

	embedURL := h.embedURL(slug)
	pkg.WriteJSON(w, http.StatusOK, EmbedSnippet{
		Slug: slug,
		URL:  embedURL,
		Snippet: fmt.Sprintf(
			`<iframe src="%s" title="%s" width="100%%" height="640" style="border:0" loading="lazy"></iframe>`,
			template.HTMLEscapeString(embedURL),
			template.HTMLEscapeString(calculator.Meta().Title),
		),
	})
}

var embedPageTmpl = template.Must(template.New("embed").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<main class="fitcalc-embed" data-slug="{{.Slug}}">
<h1>{{.Title}}</h1>
<form method="post" action="{{.Action}}">
{{- range .Fields}}
<label>{{.Label}}{{if .Unit}} ({{.Unit}}){{end}}
{{- if .Options}}
<select name="{{.Name}}">{{range .Options}}<option>{{.}}</option>{{end}}</select>
{{- else if eq .Type "boolean"}}
<input type="checkbox" name="{{.Name}}">
{{- else if eq .Type "date"}}
<input type="date" name="{{.Name}}"{{if .Required}} required{{end}}>
{{- else}}
<input type="text" name="{{.Name}}"{{if .Required}} required{{end}}>
{{- end}}
</label>
{{- end}}
<button type="submit">Calculate</button>
</form>
<section class="fitcalc-about">{{.HTML}}</section>
</main>
</body>
</html>
`))

type embedPage struct {
	*Description
	Action string
	HTML   template.HTML
}

func (h *Handler) HandleEmbedPage(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.calculators.embedPage")
	defer span.End()

	slug := mux.Vars(r)["slug"]
	desc, err := h.registry.Describe(slug)
	if err != nil {
		h.writeError(w, slug, err)
		return
	}

	var sb strings.Builder
	if err := embedPageTmpl.Execute(&sb, embedPage{
		Description: desc,
		Action:      h.baseURL + desc.Path,
		// rendered from our own markdown, not user input
		HTML: template.HTML(desc.HTML),
	}); err != nil {
		log.Errorf("render embed page for %s: %s", slug, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Security-Policy", "frame-ancestors *")
	pkg.WriteResponse(w, pkg.ContentType.HTML, sb.String(), http.StatusOK)
}

// ReadInput returns the calculator input as JSON, converting urlencoded forms when needed.
func ReadInput(w http.ResponseWriter, r *http.Request, meta Meta) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxInputBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedInput, err)
		}
		return FormToJSON(meta, r.PostForm)
	default:
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedInput, err)
		}
		return raw, nil
	}
}

func (h *Handler) writeError(w http.ResponseWriter, slug string, err error) {
	if vErr, ok := validation.AsError(err); ok {
		log.Tracef("calculator %s: %s", slug, vErr)
		if h.metricsManager != nil {
			h.metricsManager.CounterValidationFailures.WithLabelValues(slug).Inc()
		}
		validation.WriteHTTPError(w, vErr)
		return
	}

	switch {
	case errors.Is(err, ErrUnknownCalculator):
		http.Error(w, "calculator not found", http.StatusNotFound)
	case errors.Is(err, ErrMalformedInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("calculator %s: %s", slug, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
