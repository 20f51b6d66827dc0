package calculators

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Description is the full public view of a calculator: its meta data plus
// the rendered long-form explanation.
type Description struct {
	Meta
	HTML string `json:"html"`
}

type Registry struct {
	bySlug map[string]Calculator
	order  []string

	md         goldmark.Markdown
	htmlMu     sync.Mutex
	htmlBySlug map[string]string
}

func NewRegistry(calcs ...Calculator) *Registry {
	r := &Registry{
		bySlug: make(map[string]Calculator, len(calcs)),
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		htmlBySlug: map[string]string{},
	}
	for _, c := range calcs {
		slug := c.Meta().Slug
		if _, exists := r.bySlug[slug]; exists {
			panic(fmt.Sprintf("calculator registered twice: %s", slug))
		}
		r.bySlug[slug] = c
		r.order = append(r.order, slug)
	}
	return r
}

// NewDefaultRegistry holds every calculator the site offers.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		NewBMI(),
		NewBodyFat(),
		NewBMR(),
		NewTDEE(),
		NewMacros(),
		NewProtein(),
		NewFFMI(),
		NewHeartRateCalories(),
		NewHeartRateZones(),
		NewVDOT(),
		NewCarbLoading(),
		NewTirePressure(),
		NewTrainingVolume(),
		NewTaper(),
		NewOneRepMax(),
		NewWeightLoss(),
	)
}

// List returns the meta data of all calculators, without field lists, ordered by category and registration.
func (r *Registry) List() []Meta {
	metas := make([]Meta, 0, len(r.order))
	for _, slug := range r.order {
		m := r.bySlug[slug].Meta()
		m.Fields = nil
		metas = append(metas, m)
	}
	sort.SliceStable(metas, func(i, j int) bool {
		return metas[i].Category < metas[j].Category
	})
	return metas
}

func (r *Registry) Slugs() []string {
	slugs := make([]string, len(r.order))
	copy(slugs, r.order)
	return slugs
}

func (r *Registry) Get(slug string) (Calculator, error) {
	c, ok := r.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCalculator, slug)
	}
	return c, nil
}

func (r *Registry) Calculate(slug string, raw []byte) (*Outcome, error) {
	c, err := r.Get(slug)
	if err != nil {
		return nil, err
	}
	return c.Calculate(raw)
}

func (r *Registry) Describe(slug string) (*Description, error) {
	c, err := r.Get(slug)
	if err != nil {
		return nil, err
	}

	meta := c.Meta()
	html, err := r.renderDescription(meta)
	if err != nil {
		return nil, err
	}
	return &Description{Meta: meta, HTML: html}, nil
}

func (r *Registry) renderDescription(meta Meta) (string, error) {
	r.htmlMu.Lock()
	defer r.htmlMu.Unlock()

	if html, ok := r.htmlBySlug[meta.Slug]; ok {
		return html, nil
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(meta.description), &buf); err != nil {
		return "", fmt.Errorf("render %s description: %w", meta.Slug, err)
	}
	r.htmlBySlug[meta.Slug] = buf.String()
	return buf.String(), nil
}
