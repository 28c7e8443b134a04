package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/models"
)

// DefaultBaseURL is the public Nominatim search endpoint
const DefaultBaseURL = "https://nominatim.openstreetmap.org/search"

// maxResults caps how many matches a search returns
const maxResults = 10

// Client searches city coordinates via the Nominatim geocoding API
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a geocoding client. Nominatim's usage policy requires
// an identifying User-Agent on every request.
func NewClient(baseURL, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
	}
}

// searchResult represents a single Nominatim match. Coordinates are
// returned as strings by the API.
type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search returns up to ten coordinate matches for a free-form city query
func (c *Client) Search(ctx context.Context, query string) (*models.CitySearchResults, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := url.Values{}
	q.Add("q", query)
	q.Add("format", "json")
	q.Add("limit", strconv.Itoa(maxResults))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from Nominatim: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var matches []searchResult
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, fmt.Errorf("failed to parse Nominatim response: %w", err)
	}

	results := &models.CitySearchResults{Results: []models.CitySearchResult{}}
	for _, match := range matches {
		lat, err := strconv.ParseFloat(match.Lat, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(match.Lon, 64)
		if err != nil {
			continue
		}
		results.Results = append(results.Results, models.CitySearchResult{
			DisplayName: match.DisplayName,
			Latitude:    lat,
			Longitude:   lon,
		})
	}

	return results, nil
}
