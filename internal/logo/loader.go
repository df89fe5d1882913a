package logo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

const maxLogoBytes = 4 << 20

// ErrEmptyURL is returned for companies without a logo
var ErrEmptyURL = errors.New("logo: empty url")

// Option configures a Loader
type Option func(*Loader)

// WithHTTPClient replaces the HTTP client used for downloads
func WithHTTPClient(hc *http.Client) Option {
	return func(l *Loader) { l.http = hc }
}

// WithTimeout bounds each download
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) { l.timeout = d }
}

// WithSize sets the thumbnail size in terminal cells
func WithSize(width, height int) Option {
	return func(l *Loader) {
		if width > 0 {
			l.width = width
		}
		if height > 0 {
			l.height = height
		}
	}
}

// WithLogger sets the logger used for failed downloads
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Result is a cached load outcome
type Result struct {
	Art string
	Err error
}

// Loader downloads logos and renders them as half-block thumbnails.
// Results, failures included, are cached per URL for the loader's lifetime.
type Loader struct {
	http    *http.Client
	timeout time.Duration
	width   int
	height  int
	logger  *zap.Logger

	mu    sync.Mutex
	cache map[string]Result
}

// NewLoader creates a loader producing 4x2 cell thumbnails by default
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		http:    http.DefaultClient,
		timeout: 3 * time.Second,
		width:   4,
		height:  2,
		logger:  zap.NewNop(),
		cache:   make(map[string]Result),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Size returns the thumbnail size in cells
func (l *Loader) Size() (width, height int) {
	return l.width, l.height
}

// Cached reports a previously loaded result for url
func (l *Loader) Cached(url string) (Result, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.cache[url]
	return r, ok
}

// Load returns the rendered thumbnail for url
func (l *Loader) Load(ctx context.Context, url string) (string, error) {
	if r, ok := l.Cached(url); ok {
		return r.Art, r.Err
	}

	art, err := l.load(ctx, url)
	if err != nil {
		l.logger.Debug("logo unavailable", zap.String("url", url), zap.Error(err))
	}
	// cancellation is not a property of the url
	if err != nil && ctx.Err() != nil {
		return "", err
	}

	l.mu.Lock()
	l.cache[url] = Result{Art: art, Err: err}
	l.mu.Unlock()
	return art, err
}

func (l *Loader) load(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", ErrEmptyURL
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("logo: build request: %w", err)
	}

	resp, err := l.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("logo: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("logo: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes+1))
	if err != nil {
		return "", fmt.Errorf("logo: read: %w", err)
	}
	if len(raw) > maxLogoBytes {
		return "", fmt.Errorf("logo: image larger than %d bytes", maxLogoBytes)
	}

	img, err := decodeImage(raw)
	if err != nil {
		return "", err
	}
	return Render(img, l.width, l.height), nil
}

func decodeImage(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err == nil {
		return img, nil
	}
	if webpImg, webpErr := webp.Decode(bytes.NewReader(raw)); webpErr == nil {
		return webpImg, nil
	}
	return nil, fmt.Errorf("logo: decode: %w", err)
}

// Render scales img to width x 2*height pixels and draws it with upper
// half-block cells, two pixel rows per line. Transparent pixels are
// composited over white.
func Render(img image.Image, width, height int) string {
	canvas := image.NewNRGBA(image.Rect(0, 0, width, height*2))
	stddraw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, stddraw.Src)
	xdraw.ApproxBiLinear.Scale(canvas, canvas.Bounds(), img, img.Bounds(), stddraw.Over, nil)

	lines := make([]string, height)
	for y := 0; y < height; y++ {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			top := hex(canvas.NRGBAAt(x, 2*y))
			bottom := hex(canvas.NRGBAAt(x, 2*y+1))
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
