package formwizard

import (
	"io/fs"
	"strings"
	"testing"
)

func TestDefinitionsFSContainsBundledForms(t *testing.T) {
	data, err := fs.ReadFile(DefinitionsFS(), "consulting.yaml")
	if err != nil {
		t.Fatalf("expected consulting definition to be readable: %v", err)
	}
	if !strings.Contains(string(data), "booking-form") {
		t.Fatalf("expected consulting definition to declare booking-form")
	}
}

func TestSummaryTemplatesFSIncludesTextTemplate(t *testing.T) {
	data, err := fs.ReadFile(SummaryTemplatesFS(), "summary.txt")
	if err != nil {
		t.Fatalf("expected text template to be readable: %v", err)
	}
	if !strings.Contains(string(data), "autoescape off") {
		t.Fatalf("expected text template to disable autoescaping")
	}
}
