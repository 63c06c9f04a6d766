package loader

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-sitegen/pkg/section"
)

// Loader implements section.Loader by delegating to file, fs.FS, or HTTP
// strategies.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	logger    *slog.Logger
}

var _ section.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options section.LoaderOptions) section.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
		logger:    logger,
	}
}

// Load fetches the document for name from src. Retrieval failures surface as
// *section.FetchError and decode failures as *section.ParseError.
func (l *Loader) Load(ctx context.Context, name section.Name, src section.Source) (section.Document, error) {
	if src == nil {
		return section.Document{}, errors.New("section loader: source is nil")
	}

	location := src.Location()
	l.logger.Debug("fetching section", "section", name, "source", location)

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case section.SourceKindFile:
		data, err = loadFile(ctx, location)
	case section.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, location)
	case section.SourceKindURL:
		if !l.allowHTTP {
			return section.Document{}, &section.FetchError{
				Section: name,
				Source:  location,
				Err:     errors.New("http support disabled"),
			}
		}
		var result httpResult
		result, err = loadHTTP(ctx, l.http, location, l.timeout)
		if err == nil && !result.ok() {
			return section.Document{}, &section.FetchError{
				Section:    name,
				Source:     location,
				StatusCode: result.statusCode,
				Status:     result.status,
			}
		}
		if err == nil && !isJSONContentType(result.contentType) {
			l.logger.Warn("received non-JSON content type, attempting to parse anyway",
				"section", name, "source", location, "content_type", result.contentType)
		}
		data = result.body
	default:
		err = errors.New("unsupported source kind")
	}
	if err != nil {
		return section.Document{}, &section.FetchError{Section: name, Source: location, Err: err}
	}

	doc, err := section.NewDocument(name, src, data)
	if err != nil {
		return section.Document{}, err
	}
	l.logger.Debug("section fetched and parsed", "section", name, "bytes", len(data))
	return doc, nil
}

func isJSONContentType(value string) bool {
	return strings.Contains(strings.ToLower(value), "application/json")
}
