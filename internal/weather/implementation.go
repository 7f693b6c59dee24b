// internal/weather/implementation.go
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/go-redis/redis/v8"
	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"growingtogether/internal/config"
)

const (
	defaultUpstreamURL = "https://api.open-meteo.com/v1/forecast"
	cacheKey           = "weather:current"
)

// openMeteoResponse is the subset of the Open-Meteo forecast payload we
// consume.
type openMeteoResponse struct {
	CurrentWeather struct {
		Temperature   float64 `json:"temperature"`
		WindSpeed     float64 `json:"windspeed"`
		WindDirection float64 `json:"winddirection"`
		WeatherCode   int     `json:"weathercode"`
	} `json:"current_weather"`
	Hourly struct {
		RelativeHumidity []int `json:"relativehumidity_2m"`
	} `json:"hourly"`
	Daily struct {
		Time           []string  `json:"time"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
		WeatherCode    []int     `json:"weathercode"`
	} `json:"daily"`
}

type service struct {
	cfg     config.WeatherConfig
	client  *resty.Client
	cache   *redis.Client
	breaker *gobreaker.CircuitBreaker
}

func newService(cfg config.WeatherConfig, cache *redis.Client) *service {
	if cfg.UpstreamURL == "" {
		cfg.UpstreamURL = defaultUpstreamURL
	}
	return &service{
		cfg:    cfg,
		client: resty.New().SetTimeout(5 * time.Second),
		cache:  cache,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "weather-upstream",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

func (s *service) Current(ctx context.Context) *Snapshot {
	if cached := s.fromCache(ctx); cached != nil {
		return cached
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		return fallbackSnapshot(s.cfg.Location)
	}

	snapshot := result.(*Snapshot)
	s.toCache(ctx, snapshot)
	return snapshot
}

// fetch calls the upstream provider with exponential-backoff retries.
func (s *service) fetch(ctx context.Context) (*Snapshot, error) {
	return backoff.Retry(ctx, func() (*Snapshot, error) {
		var payload openMeteoResponse
		resp, err := s.client.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"latitude":        strconv.FormatFloat(s.cfg.Latitude, 'f', 2, 64),
				"longitude":       strconv.FormatFloat(s.cfg.Longitude, 'f', 2, 64),
				"current_weather": "true",
				"hourly":          "relativehumidity_2m",
				"daily":           "temperature_2m_max,temperature_2m_min,weathercode",
				"forecast_days":   "3",
				"timezone":        "Europe/London",
			}).
			SetResult(&payload).
			Get(s.cfg.UpstreamURL)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("upstream returned %s", resp.Status())
		}
		return s.toSnapshot(&payload), nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(3))
}

func (s *service) toSnapshot(payload *openMeteoResponse) *Snapshot {
	humidity := 65
	if len(payload.Hourly.RelativeHumidity) > 0 {
		humidity = payload.Hourly.RelativeHumidity[0]
	}

	snapshot := &Snapshot{
		Location:    s.cfg.Location,
		Temperature: int(math.Round(payload.CurrentWeather.Temperature)),
		Condition:   conditionForCode(payload.CurrentWeather.WeatherCode),
		Humidity:    humidity,
		Wind: fmt.Sprintf("%d mph %s",
			int(math.Round(payload.CurrentWeather.WindSpeed*0.621371)),
			compassPoint(payload.CurrentWeather.WindDirection)),
		Forecast: []ForecastDay{},
		Source:   "open-meteo",
	}

	for i, day := range payload.Daily.Time {
		if i >= len(payload.Daily.TemperatureMax) || i >= len(payload.Daily.TemperatureMin) || i >= len(payload.Daily.WeatherCode) {
			break
		}
		snapshot.Forecast = append(snapshot.Forecast, ForecastDay{
			Day:       dayLabel(day, i),
			High:      int(math.Round(payload.Daily.TemperatureMax[i])),
			Low:       int(math.Round(payload.Daily.TemperatureMin[i])),
			Condition: conditionForCode(payload.Daily.WeatherCode[i]),
		})
	}
	return snapshot
}

// dayLabel renders the first two forecast days as Today/Tomorrow and the
// rest as weekday names.
func dayLabel(isoDate string, index int) string {
	switch index {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}
	parsed, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return parsed.Weekday().String()
}

func (s *service) fromCache(ctx context.Context) *Snapshot {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, cacheKey).Result()
	if err != nil {
		return nil
	}
	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil
	}
	return &snapshot
}

func (s *service) toCache(ctx context.Context, snapshot *Snapshot) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	// Cache failures are non-fatal; the next lookup just refetches.
	s.cache.Set(ctx, cacheKey, raw, s.cfg.CacheTTL)
}
