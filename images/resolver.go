// Package images resolves an illustration for a search term: cache
// first, then an ordered list of image backends until one succeeds.
package images

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/MVinothkumarAWS/k2-Quiz/config"
)

// Backend is one image source. Backends requiring a credential report
// Available() == false when it is not configured and are skipped
// without error.
type Backend interface {
	Name() string
	Available() bool
	// ImageURL returns a downloadable URL for the query, or an error
	// when the backend has no result.
	ImageURL(ctx context.Context, query string) (string, error)
}

type Resolver struct {
	cacheDir string
	backends []Backend
	client   *http.Client
}

// NewResolver builds the resolver with the default backend order:
// Pixabay (keyed, skipped without PIXABAY_API_KEY) then Pollinations
// (keyless).
func NewResolver(cfg *config.Config) *Resolver {
	client := &http.Client{Timeout: 60 * time.Second}
	return &Resolver{
		cacheDir: cfg.Images.CacheDir,
		backends: []Backend{
			NewPixabay(cfg.Images.PixabayURL, client),
			NewPollinations(client),
		},
		client: client,
	}
}

var (
	dropRunes    = regexp.MustCompile(`[^\w\s-]`)
	collapseRuns = regexp.MustCompile(`[\s-]+`)
)

// CacheKey converts a query into its cache filename: lowercase,
// non-alphanumeric runs collapsed to single underscores.
func CacheKey(query string) string {
	key := dropRunes.ReplaceAllString(strings.ToLower(query), "")
	key = collapseRuns.ReplaceAllString(key, "_")
	return strings.Trim(key, "_") + ".jpg"
}

// Resolve returns a local path to an illustration for the query, or
// ok == false when no backend produced one. A populated cache entry is
// returned without any network activity.
func (r *Resolver) Resolve(ctx context.Context, query string) (string, bool) {
	if err := os.MkdirAll(r.cacheDir, 0755); err != nil {
		log.Warnf("[images] cannot create cache dir %s: %v", r.cacheDir, err)
		return "", false
	}

	cachePath := filepath.Join(r.cacheDir, CacheKey(query))
	if _, err := os.Stat(cachePath); err == nil {
		log.Infof("[images] cache hit for %q", query)
		return cachePath, true
	}

	for _, backend := range r.backends {
		if !backend.Available() {
			continue
		}
		imageURL, err := backend.ImageURL(ctx, query)
		if err != nil {
			log.Warnf("[images] %s: no result for %q: %v", backend.Name(), query, err)
			continue
		}
		if err := r.download(ctx, imageURL, cachePath); err != nil {
			log.Warnf("[images] %s: download failed for %q: %v", backend.Name(), query, err)
			continue
		}
		log.Infof("[images] %s: cached %q -> %s", backend.Name(), query, cachePath)
		return cachePath, true
	}

	log.Warnf("[images] no illustration found for %q", query)
	return "", false
}

// ResolveDirective applies a question's illustration directive and
// decodes the result: "" means none, "auto" resolves by query, anything
// else is a local path (as given, then relative to the cache dir).
func (r *Resolver) ResolveDirective(ctx context.Context, directive, query string) (image.Image, bool) {
	var path string
	switch directive {
	case "":
		return nil, false
	case "auto":
		p, ok := r.Resolve(ctx, query)
		if !ok {
			return nil, false
		}
		path = p
	default:
		if _, err := os.Stat(directive); err == nil {
			path = directive
		} else if p := filepath.Join(r.cacheDir, directive); fileExists(p) {
			path = p
		} else {
			log.Warnf("[images] illustration path %q not found", directive)
			return nil, false
		}
	}

	img, err := loadImage(path)
	if err != nil {
		log.Warnf("[images] cannot decode %s: %v", path, err)
		return nil, false
	}
	return img, true
}

func (r *Resolver) download(ctx context.Context, imageURL, outFile string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; K2Quiz/1.0)")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	// An error page is not an image.
	if len(data) < 100 {
		return fmt.Errorf("response too small (%d bytes)", len(data))
	}
	return os.WriteFile(outFile, data, 0644)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
