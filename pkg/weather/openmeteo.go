package weather

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

// Client fetches live conditions from the open-meteo forecast API
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a weather API client. baseURL points at the
// forecast endpoint, e.g. https://api.open-meteo.com/v1/forecast.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: baseURL,
	}
}

// forecastResponse represents the open-meteo forecast response
type forecastResponse struct {
	Current struct {
		Time          string   `json:"time"`
		Temperature2M *float64 `json:"temperature_2m"`
		WeatherCode   *int     `json:"weather_code"`
	} `json:"current"`
}

// Current retrieves the current temperature and condition at a coordinate
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (*models.CurrentWeather, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := url.Values{}
	q.Add("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Add("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Add("current", "temperature_2m,weather_code")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from open-meteo: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo API returned status %d: %s", resp.StatusCode, string(body))
	}

	var forecast forecastResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		return nil, fmt.Errorf("failed to parse open-meteo response: %w", err)
	}

	if forecast.Current.Temperature2M == nil || forecast.Current.WeatherCode == nil {
		return nil, fmt.Errorf("open-meteo response is missing current conditions")
	}

	return &models.CurrentWeather{
		Temperature:      *forecast.Current.Temperature2M,
		WeatherCondition: models.WeatherCondition(*forecast.Current.WeatherCode),
		Location:         fmt.Sprintf("%.4f,%.4f", latitude, longitude),
		Timestamp:        forecast.Current.Time,
	}, nil
}
