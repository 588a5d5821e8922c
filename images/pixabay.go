package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
)

// Pixabay searches the Pixabay photo API. Requires PIXABAY_API_KEY.
type Pixabay struct {
	apiURL string
	client *http.Client
}

func NewPixabay(apiURL string, client *http.Client) *Pixabay {
	return &Pixabay{apiURL: apiURL, client: client}
}

func (p *Pixabay) Name() string { return "pixabay" }

func (p *Pixabay) Available() bool {
	return os.Getenv("PIXABAY_API_KEY") != ""
}

func (p *Pixabay) ImageURL(ctx context.Context, query string) (string, error) {
	params := url.Values{
		"key":        {os.Getenv("PIXABAY_API_KEY")},
		"q":          {query},
		"image_type": {"photo"},
		"per_page":   {"3"},
		"safesearch": {"true"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from Pixabay", resp.StatusCode)
	}

	var result struct {
		Hits []struct {
			WebformatURL string `json:"webformatURL"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode Pixabay response: %w", err)
	}
	if len(result.Hits) == 0 || result.Hits[0].WebformatURL == "" {
		return "", fmt.Errorf("no hits")
	}
	return result.Hits[0].WebformatURL, nil
}
