package testsupport

import (
	"bytes"
	"embed"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-sitegen/pkg/section"
)

//go:embed fixtures/index.html fixtures/data/*.json
var fixtureFiles embed.FS

// DataDir is the directory holding section documents inside DataFS.
const DataDir = "data"

// PageTemplate returns the fixture page shell with every placeholder present.
func PageTemplate(t testing.TB) string {
	t.Helper()
	data, err := fs.ReadFile(fixtureFiles, "fixtures/index.html")
	if err != nil {
		t.Fatalf("read page template: %v", err)
	}
	return string(data)
}

// SectionJSON returns the well-formed fixture document for name.
func SectionJSON(t testing.TB, name section.Name) []byte {
	t.Helper()
	data, err := fs.ReadFile(fixtureFiles, path.Join("fixtures", DataDir, name.FileName()))
	if err != nil {
		t.Fatalf("read section fixture %s: %v", name, err)
	}
	return data
}

// DataFS returns a fresh in-memory filesystem holding all seven fixture
// documents under DataDir. Tests mutate the returned map to inject faults.
func DataFS(t testing.TB) fstest.MapFS {
	t.Helper()
	files := fstest.MapFS{}
	for _, name := range section.Order {
		files[path.Join(DataDir, name.FileName())] = &fstest.MapFile{Data: SectionJSON(t, name)}
	}
	return files
}

// WriteDataDir materialises the fixture documents into a temporary directory
// and returns its path.
func WriteDataDir(t testing.TB) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range section.Order {
		if err := os.WriteFile(filepath.Join(dir, name.FileName()), SectionJSON(t, name), 0o644); err != nil {
			t.Fatalf("write fixture %s: %v", name, err)
		}
	}
	return dir
}

// Aggregate decodes every fixture document into an aggregate.
func Aggregate(t testing.TB) section.Aggregate {
	t.Helper()
	aggregate := make(section.Aggregate, len(section.Order))
	for _, name := range section.Order {
		aggregate[name] = Document(t, name, string(SectionJSON(t, name)))
	}
	return aggregate
}

// Document builds a section document from inline JSON.
func Document(t testing.TB, name section.Name, raw string) section.Document {
	t.Helper()
	doc, err := section.NewDocument(name, section.SourceFromFS(path.Join(DataDir, name.FileName())), []byte(raw))
	if err != nil {
		t.Fatalf("new document %s: %v", name, err)
	}
	return doc
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
