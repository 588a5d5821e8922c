package images

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	name      string
	available bool
	url       string
	err       error
	calls     int
}

func (f *fakeBackend) Name() string    { return f.name }
func (f *fakeBackend) Available() bool { return f.available }

func (f *fakeBackend) ImageURL(context.Context, string) (string, error) {
	f.calls++
	return f.url, f.err
}

func newTestResolver(dir string, backends ...Backend) *Resolver {
	return &Resolver{
		cacheDir: dir,
		backends: backends,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 4, 4))))
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "tiger.jpg", CacheKey("Tiger"))
	assert.Equal(t, "what_is_a_tiger.jpg", CacheKey("What is a Tiger?"))
	assert.Equal(t, "new_delhi.jpg", CacheKey("  New-Delhi!  "))
}

func TestResolveCacheHitSkipsNetwork(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{name: "fake", available: true}
	r := newTestResolver(dir, backend)

	cached := filepath.Join(dir, CacheKey("tiger"))
	require.NoError(t, os.WriteFile(cached, []byte("cached image bytes"), 0644))

	path, ok := r.Resolve(context.Background(), "tiger")
	require.True(t, ok)
	assert.Equal(t, cached, path)
	assert.Zero(t, backend.calls, "populated cache must not touch any backend")
}

func TestResolveOrderedFallback(t *testing.T) {
	payload := make([]byte, 512)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	skipped := &fakeBackend{name: "keyed", available: false}
	failing := &fakeBackend{name: "down", available: true, err: fmt.Errorf("no hits")}
	working := &fakeBackend{name: "up", available: true, url: srv.URL + "/img.jpg"}
	r := newTestResolver(dir, skipped, failing, working)

	path, ok := r.Resolve(context.Background(), "taj mahal")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "taj_mahal.jpg"), path)
	assert.Zero(t, skipped.calls, "backend without credential is skipped without error")
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, working.calls)

	// Second call is served from cache.
	_, ok = r.Resolve(context.Background(), "taj mahal")
	require.True(t, ok)
	assert.Equal(t, 1, working.calls)
}

func TestResolveAllBackendsFail(t *testing.T) {
	r := newTestResolver(t.TempDir(),
		&fakeBackend{name: "a", available: true, err: fmt.Errorf("nope")},
		&fakeBackend{name: "b", available: false},
	)

	path, ok := r.Resolve(context.Background(), "anything")
	assert.False(t, ok)
	assert.Empty(t, path)
}

func TestResolveRejectsTinyResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("err"))
	}))
	defer srv.Close()

	backend := &fakeBackend{name: "tiny", available: true, url: srv.URL}
	r := newTestResolver(t.TempDir(), backend)

	_, ok := r.Resolve(context.Background(), "anything")
	assert.False(t, ok)
}

func TestResolveDirective(t *testing.T) {
	dir := t.TempDir()
	r := newTestResolver(dir, &fakeBackend{name: "down", available: true, err: fmt.Errorf("nope")})

	// Absent directive: no illustration, no error.
	img, ok := r.ResolveDirective(context.Background(), "", "tiger")
	assert.False(t, ok)
	assert.Nil(t, img)

	// Auto with every backend failing: proceed without illustration.
	_, ok = r.ResolveDirective(context.Background(), "auto", "tiger")
	assert.False(t, ok)

	// Explicit local path.
	local := filepath.Join(dir, "lion.png")
	writePNG(t, local)
	img, ok = r.ResolveDirective(context.Background(), local, "lion")
	require.True(t, ok)
	assert.NotNil(t, img)

	// Path relative to the cache dir.
	img, ok = r.ResolveDirective(context.Background(), "lion.png", "lion")
	require.True(t, ok)
	assert.NotNil(t, img)

	// Missing explicit path: no illustration.
	_, ok = r.ResolveDirective(context.Background(), "missing.png", "lion")
	assert.False(t, ok)
}

func TestPollinationsURLDeterministic(t *testing.T) {
	p := NewPollinations(http.DefaultClient)
	first, err := p.ImageURL(context.Background(), "taj mahal")
	require.NoError(t, err)
	second, err := p.ImageURL(context.Background(), "taj mahal")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "image.pollinations.ai")
}

func TestPixabayAvailability(t *testing.T) {
	p := NewPixabay("https://pixabay.com/api/", http.DefaultClient)
	t.Setenv("PIXABAY_API_KEY", "")
	assert.False(t, p.Available())
	t.Setenv("PIXABAY_API_KEY", "k")
	assert.True(t, p.Available())
}
