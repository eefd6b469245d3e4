package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inovacc/petgallery/internal/common"
	"github.com/inovacc/petgallery/internal/model"
)

const (
	// DefaultURL is the public catalog endpoint
	DefaultURL = "https://eulerity-hackathon.appspot.com/pets"

	// DefaultTimeout bounds each HTTP request
	DefaultTimeout = 10 * time.Second

	maxCatalogBytes = 16 << 20
	maxImageBytes   = 64 << 20
	maxErrorBody    = 512
)

// ErrResponseTooLarge is returned when a body exceeds the read limit
var ErrResponseTooLarge = errors.New("response too large")

// Client talks to the catalog source
type Client struct {
	HTTP   *http.Client
	URL    string
	Logger *slog.Logger

	catalogLimit int64
	imageLimit   int64
}

// Options configures a Client
type Options struct {
	URL       string
	Timeout   time.Duration
	Transport http.RoundTripper // optional, mainly for tests
	Logger    *slog.Logger
}

// NewClient creates a Client. An empty URL selects DefaultURL.
func NewClient(opts Options) (*Client, error) {
	rawURL := strings.TrimSpace(opts.URL)
	if rawURL == "" {
		rawURL = DefaultURL
	}

	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid catalog url: unsupported scheme %q", u.Scheme)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: opts.Transport,
		},
		URL:    rawURL,
		Logger: logger,

		catalogLimit: maxCatalogBytes,
		imageLimit:   maxImageBytes,
	}, nil
}

// FetchPets retrieves and normalizes the whole catalog.
// Any failure returns a *FetchError and no pets.
func (c *Client) FetchPets(ctx context.Context) ([]model.Pet, error) {
	start := time.Now()

	body, err := c.get(ctx, c.URL, "application/json", c.catalogLimit)
	if err != nil {
		fe := &FetchError{Err: err}

		var se *StatusError
		if errors.As(err, &se) {
			fe.StatusCode = se.StatusCode
		}

		c.Logger.Warn("catalog fetch failed",
			slog.String("url", common.SanitizeURL(c.URL)),
			slog.String("detail", fe.Detail()),
		)

		return nil, fe
	}

	pets, err := Decode(body)
	if err != nil {
		c.Logger.Warn("catalog payload rejected",
			slog.String("url", common.SanitizeURL(c.URL)),
			slog.String("error", err.Error()),
		)

		return nil, &FetchError{Err: err}
	}

	c.Logger.Debug("catalog fetched",
		slog.Int("pets", len(pets)),
		slog.Duration("duration", time.Since(start)),
	)

	return pets, nil
}

// FetchImage retrieves the binary resource at imageURL
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	data, err := c.get(ctx, imageURL, "image/*", c.imageLimit)
	if err != nil {
		ie := &ImageError{URL: common.SanitizeURL(imageURL), Err: err}

		var se *StatusError
		if errors.As(err, &se) {
			ie.StatusCode = se.StatusCode
		}

		return nil, ie
	}

	return data, nil
}

func (c *Client) get(ctx context.Context, rawURL, accept string, limit int64) ([]byte, error) {
	if c == nil || c.HTTP == nil {
		return nil, errors.New("catalog: nil client")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("Accept", accept)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := readAtMost(resp.Body, maxErrorBody)

		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	data, err := readLimited(resp.Body, limit)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return data, nil
}

// readLimited reads the whole body and fails instead of truncating past limit
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = 1 << 20
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, limit)
	}

	return data, nil
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = 1 << 20
	}
	lr := io.LimitReader(r, max)
	return io.ReadAll(lr)
}
