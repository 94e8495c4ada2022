package ingestion

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; InterviewBot/1.0)"

// DefaultMaxBytes caps the size of a downloaded resume.
const DefaultMaxBytes = 10 << 20

// FetchError represents an error while downloading a resume.
type FetchError struct {
	URL        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// FetchOptions configures remote fetching.
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	Client    *http.Client // optional; overrides Timeout
}

// DefaultFetchOptions returns sensible defaults for fetching.
func DefaultFetchOptions() *FetchOptions {
	return &FetchOptions{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxBytes:  DefaultMaxBytes,
	}
}

// IsURL reports whether source is an http or https URL rather than a file path.
func IsURL(source string) bool {
	lower := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Load extracts text from a local file or, for http(s) sources, a downloaded document.
func Load(ctx context.Context, source string) (string, *Metadata, error) {
	if IsURL(source) {
		return ExtractURL(ctx, source, nil)
	}
	return ExtractText(source)
}

// ExtractURL downloads a resume and extracts its text. The format comes from the
// Content-Type header, falling back to the URL's extension.
func ExtractURL(ctx context.Context, rawURL string, opts *FetchOptions) (string, *Metadata, error) {
	if opts == nil {
		opts = DefaultFetchOptions()
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", nil, &FetchError{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	body, contentType, err := download(ctx, rawURL, opts)
	if err != nil {
		return "", nil, err
	}

	format, err := formatFromContentType(contentType, parsed.Path)
	if err != nil {
		return "", nil, err
	}

	var raw string
	switch format {
	case FormatPDF:
		raw, err = extractPDFBytes(body)
	case FormatHTML:
		raw, err = ExtractHTML(strings.NewReader(string(body)))
	default:
		raw = string(body)
	}
	if err != nil {
		return "", nil, &ExtractionError{Path: rawURL, Format: format, Cause: err}
	}

	cleaned := CleanText(raw)
	if cleaned == "" {
		return "", nil, &ExtractionError{Path: rawURL, Format: format, Cause: ErrEmptyDocument}
	}
	return cleaned, NewMetadata(cleaned, rawURL, format), nil
}

func download(ctx context.Context, rawURL string, opts *FetchOptions) ([]byte, string, error) {
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", &FetchError{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", &FetchError{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &FetchError{
			URL:        rawURL,
			Message:    fmt.Sprintf("HTTP status %d", resp.StatusCode),
			StatusCode: resp.StatusCode,
		}
	}

	var reader io.Reader = resp.Body
	if opts.MaxBytes > 0 {
		reader = io.LimitReader(resp.Body, opts.MaxBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", &FetchError{URL: rawURL, Message: "failed to read response body", Cause: err}
	}
	if opts.MaxBytes > 0 && int64(len(body)) > opts.MaxBytes {
		return nil, "", &FetchError{URL: rawURL, Message: fmt.Sprintf("document larger than %d bytes", opts.MaxBytes)}
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func formatFromContentType(contentType, urlPath string) (Format, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "application/pdf":
		return FormatPDF, nil
	case "text/html", "application/xhtml+xml":
		return FormatHTML, nil
	case "text/plain", "text/markdown":
		return FormatText, nil
	}
	return DetectFormat(path.Base(urlPath))
}
