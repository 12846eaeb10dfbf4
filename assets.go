package formwizard

import (
	"io/fs"

	"github.com/goliatone/go-formwizard/pkg/registry"
	"github.com/goliatone/go-formwizard/pkg/summary"
)

// DefinitionsFS exposes the bundled form definitions (one YAML file per
// site section) so callers can inspect or re-register them.
func DefinitionsFS() fs.FS {
	return registry.EmbeddedFS()
}

// SummaryTemplatesFS exposes the built-in summary templates (summary.txt and
// summary.html) so callers can reuse or extend them without importing the
// summary package directly.
func SummaryTemplatesFS() fs.FS {
	return summary.TemplatesFS()
}
