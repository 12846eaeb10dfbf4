package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/persistence"
	"github.com/goliatone/go-formwizard/pkg/testsupport"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSectionsListsBuiltins(t *testing.T) {
	out, err := execute(t, "sections", "--store", "memory")
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	for _, want := range []string{"consulting", "booking-form", "business-tourism", "real-estate"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPriceRendersGroupSummary(t *testing.T) {
	out, err := execute(t, "price", "business-tourism", "--store", "memory",
		"destination=france", "program-duration=8-days", "travelers=6-10")
	if err != nil {
		t.Fatalf("price: %v", err)
	}
	for _, want := range []string{"€2,200", "€17,600", "(10%): -€1,760", "€15,840"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestPriceRejectsUnknownField(t *testing.T) {
	if _, err := execute(t, "price", "consulting", "--store", "memory", "colour=red"); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := execute(t, "price", "bakery", "--store", "memory"); err == nil {
		t.Fatalf("expected unknown form error")
	}
}

func TestValidateReportsEachFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, good, "id: good\nsteps: [{fields: [{name: a, kind: text}]}]\n")
	writeFile(t, bad, "id: bad\nsteps: [{fields: [{name: a, kind: slider}]}]\n")

	out, err := execute(t, "validate", "--store", "memory", good, bad)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if !strings.Contains(out, "ok   "+good) || !strings.Contains(out, "FAIL "+bad) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestClearUsesFileStore(t *testing.T) {
	dir := t.TempDir()
	store, err := persistence.NewFileStore(dir)
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	def := testsupport.MustBuiltin(t, "consulting")
	testsupport.SeedBlob(t, store, def.StorageKey(), model.Values{"consultant": "ahmed"}, 2, time.Now())

	out, err := execute(t, "clear", "consulting", "--store", "file", "--store-dir", dir)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !strings.Contains(out, "cleared booking-formData") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	testsupport.RequireNoBlob(t, store, def.StorageKey())
}

func TestUnknownStoreFails(t *testing.T) {
	if _, err := execute(t, "sections", "--store", "s3"); err == nil {
		t.Fatalf("expected invalid store error")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
