package mediadata

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var (
	ErrVideoNotFound      = errors.New("video not found")
	ErrVideoNotEmbeddable = errors.New("video is not embeddable")
)

// VideoData is best-effort metadata for a media url. Duration of 0 means the
// duration is unknown and clients are expected to report it once discovered.
type VideoData struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"`
}

type Resolver struct {
	client *http.Client
}

func NewResolver() *Resolver {
	return &Resolver{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Get resolves a media url into title and duration. Metadata lookups are
// best-effort: a resolvable page with no parsable duration yields duration 0.
func (r *Resolver) Get(videoURL string) (*VideoData, error) {
	videoData, err := r.getWithOEmbed(videoURL)
	if err != nil {
		if !errors.Is(err, ErrVideoNotEmbeddable) {
			return nil, fmt.Errorf("failed to get video data with oembed: %w", err)
		}

		videoData, err = r.getFromPage(videoURL)
		if err != nil {
			return nil, fmt.Errorf("failed to get video data from page: %w", err)
		}
	}

	if duration, err := r.getDurationFromPage(videoURL); err == nil {
		videoData.Duration = duration
	}

	return videoData, nil
}

func (r *Resolver) getWithOEmbed(videoURL string) (*VideoData, error) {
	oembedURL := fmt.Sprintf("https://www.youtube.com/oembed?url=%s", url.QueryEscape(videoURL))
	resp, err := r.client.Get(oembedURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return nil, ErrVideoNotFound
		case http.StatusUnauthorized:
			return nil, ErrVideoNotEmbeddable
		default:
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
	}

	var result VideoData
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}
