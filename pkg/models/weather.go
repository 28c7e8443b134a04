package models

// CurrentWeather is a live reading from the external weather provider
type CurrentWeather struct {
	Temperature      float64 `json:"temperature"`
	WeatherCondition string  `json:"weather_condition"`
	Location         string  `json:"location"`
	Timestamp        string  `json:"timestamp"`
}

// CitySearchResult is a single geocoding match
type CitySearchResult struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// CitySearchResults wraps geocoding matches for the API response
type CitySearchResults struct {
	Results []CitySearchResult `json:"results"`
}

// weatherCodes maps WMO weather codes (as reported by open-meteo) to
// human-readable conditions.
var weatherCodes = map[int]string{
	0:  "Clear Sky",
	1:  "Mainly Clear",
	2:  "Partly Cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Foggy",
	51: "Light Drizzle",
	53: "Moderate Drizzle",
	55: "Dense Drizzle",
	61: "Slight Rain",
	63: "Moderate Rain",
	65: "Heavy Rain",
	71: "Slight Snow",
	73: "Moderate Snow",
	75: "Heavy Snow",
	77: "Snow Grains",
	80: "Slight Showers",
	81: "Moderate Showers",
	82: "Violent Showers",
	85: "Slight Snow Showers",
	86: "Heavy Snow Showers",
	95: "Thunderstorm",
	96: "Thunderstorm with Hail",
	99: "Thunderstorm with Hail",
}

// WeatherCondition translates a WMO weather code to a description
func WeatherCondition(code int) string {
	if condition, ok := weatherCodes[code]; ok {
		return condition
	}
	return "Unknown"
}
