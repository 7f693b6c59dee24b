// internal/weather/domain.go
package weather

// Snapshot is the site forecast returned to the dashboard.
type Snapshot struct {
	Location    string        `json:"location"`
	Temperature int           `json:"temperature"`
	Condition   string        `json:"condition"`
	Humidity    int           `json:"humidity"`
	Wind        string        `json:"wind"`
	Forecast    []ForecastDay `json:"forecast"`
	Source      string        `json:"source"`
}

// ForecastDay is a single day in the short-range forecast.
type ForecastDay struct {
	Day       string `json:"day"`
	High      int    `json:"high"`
	Low       int    `json:"low"`
	Condition string `json:"condition"`
}

// fallbackSnapshot serves when both the upstream provider and the cache
// are unreachable, so the dashboard always has something to show.
func fallbackSnapshot(location string) *Snapshot {
	return &Snapshot{
		Location:    location,
		Temperature: 22,
		Condition:   "Partly Cloudy",
		Humidity:    65,
		Wind:        "5 mph NE",
		Forecast: []ForecastDay{
			{Day: "Today", High: 24, Low: 15, Condition: "Partly Cloudy"},
			{Day: "Tomorrow", High: 26, Low: 16, Condition: "Sunny"},
			{Day: "Wednesday", High: 21, Low: 14, Condition: "Light Rain"},
		},
		Source: "fallback",
	}
}

// conditionForCode maps WMO weather interpretation codes to the display
// strings the dashboard expects.
func conditionForCode(code int) string {
	switch {
	case code == 0:
		return "Sunny"
	case code <= 2:
		return "Partly Cloudy"
	case code == 3:
		return "Overcast"
	case code <= 48:
		return "Fog"
	case code <= 57:
		return "Drizzle"
	case code <= 67:
		return "Light Rain"
	case code <= 77:
		return "Snow"
	case code <= 82:
		return "Rain Showers"
	case code <= 86:
		return "Snow Showers"
	default:
		return "Thunderstorm"
	}
}

// compassPoint converts a wind direction in degrees to a 8-point
// compass label.
func compassPoint(degrees float64) string {
	points := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	idx := int((degrees+22.5)/45.0) % 8
	if idx < 0 {
		idx += 8
	}
	return points[idx]
}
