package summary

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formwizard/pkg/model"
)

//go:embed templates/*
var templateFS embed.FS

// TemplatesFS exposes the built-in summary templates so callers can copy or
// extend them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return templateFS
	}
	return sub
}

const (
	textTemplateName = "templates/summary.txt"
	htmlTemplateName = "templates/summary.html"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithFormatter overrides the amount formatter.
func WithFormatter(f *Formatter) Option {
	return func(r *Renderer) {
		if f != nil {
			r.formatter = f
		}
	}
}

// Renderer turns summary documents into text or HTML using pongo2
// templates.
type Renderer struct {
	mu        sync.Mutex
	set       *pongo2.TemplateSet
	formatter *Formatter
	text      *pongo2.Template
	html      *pongo2.Template
	cache     map[string]*pongo2.Template
}

// NewRenderer compiles the built-in templates.
func NewRenderer(options ...Option) (*Renderer, error) {
	r := &Renderer{
		set:       pongo2.NewSet("formwizard", pongo2.NewFSLoader(templateFS)),
		formatter: defaultFormatter,
		cache:     make(map[string]*pongo2.Template),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}

	var err error
	if r.text, err = r.set.FromFile(textTemplateName); err != nil {
		return nil, fmt.Errorf("summary: load text template: %w", err)
	}
	if r.html, err = r.set.FromFile(htmlTemplateName); err != nil {
		return nil, fmt.Errorf("summary: load html template: %w", err)
	}
	return r, nil
}

// Text renders doc as plain text.
func (r *Renderer) Text(doc Document) (string, error) {
	return r.execute(r.text, doc)
}

// HTML renders doc as an HTML fragment. User values are stripped of markup
// before they reach the template.
func (r *Renderer) HTML(doc Document) (string, error) {
	return r.execute(r.html, doc.Sanitized())
}

// String renders doc through a template supplied at runtime, typically a
// definition's summary.template. Compiled templates are cached by source.
func (r *Renderer) String(source string, doc Document) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", errors.New("summary: template source is empty")
	}
	tmpl, err := r.compile(source)
	if err != nil {
		return "", err
	}
	return r.execute(tmpl, doc)
}

// Definition renders doc with the definition's own template when it has
// one and the built-in text template otherwise.
func (r *Renderer) Definition(def model.Definition, doc Document) (string, error) {
	if strings.TrimSpace(def.Summary.Template) != "" {
		return r.String(def.Summary.Template, doc)
	}
	return r.Text(doc)
}

func (r *Renderer) compile(source string) (*pongo2.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if tmpl, ok := r.cache[source]; ok {
		return tmpl, nil
	}
	tmpl, err := r.set.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("summary: parse template: %w", err)
	}
	r.cache[source] = tmpl
	return tmpl, nil
}

func (r *Renderer) execute(tmpl *pongo2.Template, doc Document) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(r.context(doc), &buf); err != nil {
		return "", fmt.Errorf("summary: execute template: %w", err)
	}
	return buf.String(), nil
}

func (r *Renderer) context(doc Document) pongo2.Context {
	lines := make([]map[string]any, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		lines = append(lines, map[string]any{
			"field": line.Field,
			"label": line.Label,
			"value": line.Value,
		})
	}

	p := doc.Price
	return pongo2.Context{
		"form_id": doc.FormID,
		"title":   doc.Title,
		"lines":   lines,
		"priced":  doc.HasPrice(),
		"price": map[string]any{
			"strategy":         string(p.Strategy),
			"group":            p.Strategy == model.PricingGroup,
			"base":             r.formatter.Money(p.BasePrice, p.Currency),
			"quantity":         p.Quantity,
			"multiplier":       p.Multiplier,
			"subtotal":         r.formatter.Money(p.Subtotal, p.Currency),
			"has_discount":     p.DiscountAmount > 0,
			"discount_percent": int(p.DiscountPercent()),
			"discount":         r.formatter.Money(p.DiscountAmount, p.Currency),
			"total":            r.formatter.Money(p.Total, p.Currency),
		},
	}
}
