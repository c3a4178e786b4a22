// Package jamendo queries the Jamendo music catalog (api.jamendo.com/v3.0).
// Catalog failures never surface to the caller: every track lookup falls
// back to a built-in featured list so the music screen always has content.
package jamendo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const DefaultBaseURL = "https://api.jamendo.com/v3.0"

// Track is one catalog entry, matching Jamendo's JSON field names.
type Track struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ArtistName string `json:"artist_name"`
	Duration   int    `json:"duration"`
	Audio      string `json:"audio"`
	Image      string `json:"image"`
	AlbumName  string `json:"album_name"`
}

type Client struct {
	baseURL  string
	clientID string
	limit    int
	httpc    *http.Client
}

func New(clientID string, limit int) *Client {
	if limit <= 0 {
		limit = 20
	}
	return &Client{
		baseURL:  DefaultBaseURL,
		clientID: clientID,
		limit:    limit,
		httpc:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewWithBaseURL is used by tests to point the client at a fake catalog.
func NewWithBaseURL(baseURL, clientID string, limit int) *Client {
	c := New(clientID, limit)
	c.baseURL = baseURL
	return c
}

// tracks performs one catalog request with the shared query parameters.
func (c *Client) tracks(ctx context.Context, params url.Values) ([]Track, error) {
	params.Set("client_id", c.clientID)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("include", "musicinfo")
	params.Set("groupby", "artist_id")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tracks?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned HTTP %d", resp.StatusCode)
	}

	var data struct {
		Results []Track `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	return data.Results, nil
}

func (c *Client) withFallback(tracks []Track, err error) []Track {
	if err != nil || len(tracks) == 0 {
		return FeaturedTracks()
	}
	return tracks
}

// SearchTracks looks up tracks matching query.
func (c *Client) SearchTracks(ctx context.Context, query string) []Track {
	params := url.Values{}
	params.Set("search", query)
	return c.withFallback(c.tracks(ctx, params))
}

// TracksByTag returns tracks tagged with the given genre tag.
func (c *Client) TracksByTag(ctx context.Context, tag string) []Track {
	params := url.Values{}
	params.Set("tags", tag)
	return c.withFallback(c.tracks(ctx, params))
}

// PopularTracks returns the catalog's most popular tracks.
func (c *Client) PopularTracks(ctx context.Context) []Track {
	params := url.Values{}
	params.Set("order", "popularity_total")
	return c.withFallback(c.tracks(ctx, params))
}

// LatestTracks returns the most recently released tracks.
func (c *Client) LatestTracks(ctx context.Context) []Track {
	params := url.Values{}
	params.Set("order", "releasedate_desc")
	return c.withFallback(c.tracks(ctx, params))
}

// FeaturedTracks is the built-in list served when the catalog is not
// reachable or returns nothing.
func FeaturedTracks() []Track {
	return []Track{
		{
			ID:         "1",
			Name:       "Sample Track 1",
			ArtistName: "Sample Artist",
			Duration:   180,
			Audio:      "https://example.com/sample1.mp3",
		},
		{
			ID:         "2",
			Name:       "Sample Track 2",
			ArtistName: "Another Artist",
			Duration:   240,
			Audio:      "https://example.com/sample2.mp3",
		},
	}
}
