package gotemplate_test

import (
	"embed"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-regform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

//go:embed testdata/templates/*.tmpl
var embeddedTemplates embed.FS

func newEngine(t *testing.T, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()
	sub, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}
	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(sub)}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_GlobalsAndErrorIDFilter(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{"app": "regform"}))

	got, err := engine.RenderTemplate("globals.tmpl", struct {
		Field string `json:"field"`
	}{Field: "dni"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "regform: dniError\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_RenderStringEscapes(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderString("<p>{{ body }}</p>", map[string]any{"body": `<b>"x"</b>`})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "<p>&lt;b&gt;&quot;x&quot;&lt;/b&gt;</p>" {
		t.Fatalf("expected autoescaped output, got %q", got)
	}
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestEngine_BaseDirTakesPrecedenceOverFS(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hello.tmpl"), []byte("Hi {{ name }} from disk\n"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	diskOnly, err := gotemplate.New(gotemplate.WithBaseDir(dir))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	got, err := diskOnly.RenderTemplate("hello", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "Hi Ada from disk\n" {
		t.Fatalf("unexpected output %q", got)
	}

	layered := newEngine(t, gotemplate.WithBaseDir(dir))
	if got, _ := layered.RenderTemplate("hello", map[string]any{"name": "Ada"}); got != "Hi Ada from disk\n" {
		t.Fatalf("expected disk template first, got %q", got)
	}
	got, err = layered.RenderTemplate("globals", map[string]any{"app": "regform", "field": "city"})
	if err != nil {
		t.Fatalf("render fallback: %v", err)
	}
	if got != "regform: cityError\n" {
		t.Fatalf("expected embedded fallback, got %q", got)
	}
}
