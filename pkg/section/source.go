package section

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Source identifies where a section document lives so loaders can operate on
// files, fs.FS entries, or URLs without leaking implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(p string) Source {
	return fileSource{path: filepath.Clean(p)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: path.Clean(name)}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() SourceKind { return SourceKindURL }

// SourceFromURL parses the supplied URL string and returns a Source. It panics
// if the URL is invalid to surface configuration mistakes early.
func SourceFromURL(raw string) Source {
	if raw == "" {
		panic("section: empty URL source")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		panic(fmt.Sprintf("section: invalid URL %q: %v", raw, err))
	}
	return urlSource{raw: raw}
}

// Locator maps a section name to the Source its document is fetched from.
type Locator func(Name) Source

// DirLocator resolves documents as <dir>/<name>.json on disk.
func DirLocator(dir string) Locator {
	return func(name Name) Source {
		return SourceFromFile(filepath.Join(dir, name.FileName()))
	}
}

// FSLocator resolves documents as <root>/<name>.json inside an fs.FS.
func FSLocator(root string) Locator {
	root = strings.Trim(root, "/")
	if root == "" {
		root = "."
	}
	return func(name Name) Source {
		return SourceFromFS(path.Join(root, name.FileName()))
	}
}

// URLLocator resolves documents relative to an HTTP(S) base URL.
func URLLocator(base string) (Locator, error) {
	parsed, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return nil, fmt.Errorf("section: invalid base url %q: %w", base, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("section: base url %q must be http or https", base)
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}
	return func(name Name) Source {
		ref := &url.URL{Path: name.FileName()}
		return SourceFromURL(parsed.ResolveReference(ref).String())
	}, nil
}

// LocatorFor picks a URL locator for http(s) bases and a directory locator
// for everything else.
func LocatorFor(base string) (Locator, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("section: data base is required")
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return URLLocator(trimmed)
	}
	return DirLocator(trimmed), nil
}
