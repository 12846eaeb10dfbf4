// Package reference issues the human-readable numbers handed back to users
// after a successful submission, e.g. CONS-20260310-042.
package reference

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// DefaultPrefix is used when a definition declares no reference prefix.
const DefaultPrefix = "REF"

// Generator builds reference numbers of the form PREFIX-YYYYMMDD-NNN.
type Generator struct {
	prefix string
	intN   func(n int) int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource replaces the random source. intN must return a value in [0, n).
func WithSource(intN func(n int) int) Option {
	return func(g *Generator) {
		if intN != nil {
			g.intN = intN
		}
	}
}

// New returns a generator for prefix.
func New(prefix string, opts ...Option) *Generator {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		prefix = DefaultPrefix
	}
	g := &Generator{prefix: prefix, intN: rand.IntN}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Next returns a reference dated at.
func (g *Generator) Next(at time.Time) string {
	return fmt.Sprintf("%s-%s-%03d", g.prefix, at.Format("20060102"), g.intN(1000))
}
