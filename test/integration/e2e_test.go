//go:build integration

package integration_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/docshelf/docshelf/internal/catalog"
	"github.com/docshelf/docshelf/internal/registry"
	"github.com/docshelf/docshelf/internal/userdata"
)

// TestFullFlowInitImportResolve tests the complete flow:
// init home -> list bundle -> import -> resolve rows -> refresh -> export.
func TestFullFlowInitImportResolve(t *testing.T) {
	env := setupTestEnv(t)

	// Step 1: Initialize the home layout.
	var out bytes.Buffer
	if err := userdata.InitHome(&out); err != nil {
		t.Fatalf("InitHome: %v", err)
	}
	setupBundle(t, env.BundleDir)

	reg := newRegistry(t, env, registry.CollisionFail)

	// Step 2: Initial catalog holds only the bundle, clutter filtered.
	cat := reg.Refresh()
	wantBundled := []string{"Guide.pdf", "cover.png", "notes.txt"}
	if got := titles(cat.Bundled); !slices.Equal(got, wantBundled) {
		t.Fatalf("bundled = %v, want %v", got, wantBundled)
	}
	if len(cat.Imported) != 0 {
		t.Fatalf("imported = %v, want empty", titles(cat.Imported))
	}

	// Step 3: Import two picked files.
	writeFile(t, filepath.Join(env.PickDir, "report.pdf"), "%PDF-1.4\nreport body")
	writeFile(t, filepath.Join(env.PickDir, "photo.jpg"), "\xff\xd8\xff\xe0\x00\x10JFIF")

	for _, name := range []string{"report.pdf", "photo.jpg"} {
		rec, err := reg.Import(filepath.Join(env.PickDir, name))
		if err != nil {
			t.Fatalf("Import(%s): %v", name, err)
		}
		if rec.Origin != catalog.OriginImported {
			t.Errorf("%s origin = %s", name, rec.Origin)
		}
		assertFileContent(t, rec.Location, map[string]string{
			"report.pdf": "%PDF-1.4\nreport body",
			"photo.jpg":  "\xff\xd8\xff\xe0\x00\x10JFIF",
		}[name])
	}

	// Step 4: Rows are bundled first, then imports in append order.
	cat = reg.Catalog()
	if cat.Len() != 5 {
		t.Fatalf("Len = %d, want 5", cat.Len())
	}
	for row := 0; row < cat.Len(); row++ {
		rec, err := cat.Resolve(row)
		if err != nil {
			t.Fatalf("Resolve(%d): %v", row, err)
		}
		wantOrigin := catalog.OriginBundled
		if row >= len(cat.Bundled) {
			wantOrigin = catalog.OriginImported
		}
		if rec.Origin != wantOrigin {
			t.Errorf("row %d origin = %s, want %s", row, rec.Origin, wantOrigin)
		}
		if back, ok := cat.FindByLocation(rec.Location); !ok || back != row {
			t.Errorf("FindByLocation(row %d) = %d, %v", row, back, ok)
		}
	}
	last, _ := cat.Resolve(4)
	if last.Title != "photo.jpg" {
		t.Errorf("last row = %s, want photo.jpg", last.Title)
	}
	if _, err := cat.Resolve(5); !errors.Is(err, catalog.ErrIndexOutOfRange) {
		t.Errorf("Resolve(5) = %v, want ErrIndexOutOfRange", err)
	}

	// Step 5: A fresh registry over the same directories sees the imports,
	// re-sorted by title.
	cat = newRegistry(t, env, registry.CollisionFail).Refresh()
	if got := titles(cat.Imported); !slices.Equal(got, []string{"photo.jpg", "report.pdf"}) {
		t.Errorf("imported after restart = %v", got)
	}

	// Step 6: Export round-trips the row numbers.
	var exported bytes.Buffer
	if err := catalog.Export(&exported, cat, catalog.FormatYAML, catalog.OriginImported); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.Contains(exported.Bytes(), []byte("row: 3")) {
		t.Errorf("export missing row 3:\n%s", exported.String())
	}
}

// TestCollisionPolicies checks that fail leaves storage untouched and rename
// keeps both copies.
func TestCollisionPolicies(t *testing.T) {
	env := setupTestEnv(t)
	setupBundle(t, env.BundleDir)

	first := filepath.Join(env.PickDir, "a", "scan.pdf")
	second := filepath.Join(env.PickDir, "b", "scan.pdf")
	writeFile(t, first, "%PDF-1.4\nfirst")
	writeFile(t, second, "%PDF-1.4\nsecond")

	strict := newRegistry(t, env, registry.CollisionFail)
	if _, err := strict.Import(first); err != nil {
		t.Fatalf("first import: %v", err)
	}
	before := strict.Catalog()

	_, err := strict.Import(second)
	if !errors.Is(err, registry.ErrImportCollision) {
		t.Fatalf("second import = %v, want ErrImportCollision", err)
	}
	after := strict.Catalog()
	if after.ID != before.ID || len(after.Imported) != len(before.Imported) {
		t.Error("failed import changed the catalog")
	}
	assertFileContent(t, filepath.Join(env.StorageDir, "scan.pdf"), "%PDF-1.4\nfirst")

	lenient := newRegistry(t, env, registry.CollisionRename)
	rec, err := lenient.Import(second)
	if err != nil {
		t.Fatalf("rename import: %v", err)
	}
	if rec.Title != "scan-1.pdf" {
		t.Errorf("renamed title = %s, want scan-1.pdf", rec.Title)
	}
	assertFileContent(t, filepath.Join(env.StorageDir, "scan-1.pdf"), "%PDF-1.4\nsecond")
	assertFileContent(t, filepath.Join(env.StorageDir, "scan.pdf"), "%PDF-1.4\nfirst")
}

// TestDoctorAfterInit verifies the layout check passes on a fresh home.
func TestDoctorAfterInit(t *testing.T) {
	env := setupTestEnv(t)

	var out bytes.Buffer
	if err := userdata.InitHome(&out); err != nil {
		t.Fatalf("InitHome: %v", err)
	}
	out.Reset()
	if failures := userdata.CheckLayout(&out, env.BundleDir, env.StorageDir, false); failures != 0 {
		t.Errorf("CheckLayout failures = %d\n%s", failures, out.String())
	}
}
