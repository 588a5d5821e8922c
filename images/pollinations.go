package images

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
)

// Pollinations generates an image via Pollinations.ai. Free, no key
// needed; the image is produced server-side on GET.
type Pollinations struct {
	client *http.Client
}

func NewPollinations(client *http.Client) *Pollinations {
	return &Pollinations{client: client}
}

func (p *Pollinations) Name() string { return "pollinations" }

func (p *Pollinations) Available() bool { return true }

func (p *Pollinations) ImageURL(_ context.Context, query string) (string, error) {
	prompt := fmt.Sprintf("%s, photorealistic, high quality, no text, no watermark", query)
	// Deterministic seed per query so repeated runs fetch the same image.
	h := fnv.New32a()
	h.Write([]byte(query))
	seed := h.Sum32() % 100000

	return fmt.Sprintf(
		"https://image.pollinations.ai/prompt/%s?width=1280&height=720&nologo=true&model=flux&seed=%d",
		url.PathEscape(prompt), seed,
	), nil
}
