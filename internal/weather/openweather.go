package weather

import (
	"agrotech-backend/internal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultOpenWeatherURL is the OpenWeather 2.5 API root.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5"

// forecastSampleCount is 5 days of 3-hour samples.
const forecastSampleCount = 40

// Ensure OpenWeatherProvider implements Provider.
var _ Provider = (*OpenWeatherProvider)(nil)

// OpenWeatherProvider fetches live data from the OpenWeather API.
type OpenWeatherProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherProvider creates a live provider. An empty baseURL selects DefaultOpenWeatherURL.
func NewOpenWeatherProvider(apiKey, baseURL string, timeout time.Duration) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	return &OpenWeatherProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider name
func (p *OpenWeatherProvider) Name() string {
	return "OpenWeather"
}

type owmCondition struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmCurrentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
		Pressure  int     `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s with units=metric
	} `json:"wind"`
	Weather []owmCondition `json:"weather"`
}

type owmForecastResponse struct {
	List []struct {
		Dt    int64  `json:"dt"`
		DtTxt string `json:"dt_txt"` // "2006-01-02 15:04:05"
		Main  struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []owmCondition `json:"weather"`
		Pop     float64        `json:"pop"`
	} `json:"list"`
}

// Current fetches the current conditions at the given coordinates.
func (p *OpenWeatherProvider) Current(ctx context.Context, at Coordinates) (*models.WeatherReading, error) {
	var response owmCurrentResponse
	if err := p.get(ctx, "weather", at, nil, &response); err != nil {
		return nil, err
	}
	if len(response.Weather) == 0 {
		return nil, fmt.Errorf("openweather: response has no weather conditions")
	}

	cond := response.Weather[0]
	return &models.WeatherReading{
		Temp:        roundHalfUp(response.Main.Temp),
		Humidity:    response.Main.Humidity,
		WindSpeed:   roundHalfUp(response.Wind.Speed * 3.6), // m/s to km/h
		Condition:   MapCondition(cond.ID),
		Description: cond.Description,
		Icon:        cond.Icon,
		FeelsLike:   roundHalfUp(response.Main.FeelsLike),
		Pressure:    response.Main.Pressure,
	}, nil
}

// Forecast fetches 3-hour samples for the next five days and aggregates them per day.
func (p *OpenWeatherProvider) Forecast(ctx context.Context, at Coordinates) ([]models.ForecastDay, error) {
	extra := url.Values{}
	extra.Set("cnt", strconv.Itoa(forecastSampleCount))

	var response owmForecastResponse
	if err := p.get(ctx, "forecast", at, extra, &response); err != nil {
		return nil, err
	}
	if len(response.List) == 0 {
		return nil, fmt.Errorf("openweather: forecast response has no samples")
	}

	samples := make([]Sample, 0, len(response.List))
	for _, item := range response.List {
		s := Sample{
			Date:     sampleDate(item.DtTxt, item.Dt),
			Temp:     item.Main.Temp,
			Humidity: item.Main.Humidity,
			Pop:      item.Pop,
		}
		if len(item.Weather) > 0 {
			s.Code = item.Weather[0].ID
			s.Description = item.Weather[0].Description
			s.Icon = item.Weather[0].Icon
		}
		samples = append(samples, s)
	}
	return AggregateForecast(samples), nil
}

// sampleDate prefers the provider's dt_txt date and falls back to the UTC date of dt.
func sampleDate(dtTxt string, dt int64) string {
	if date, _, ok := strings.Cut(dtTxt, " "); ok && date != "" {
		return date
	}
	return time.Unix(dt, 0).UTC().Format("2006-01-02")
}

func (p *OpenWeatherProvider) get(ctx context.Context, endpoint string, at Coordinates, extra url.Values, out interface{}) error {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(at.Lon, 'f', -1, 64))
	params.Set("appid", p.apiKey)
	params.Set("units", "metric")
	params.Set("lang", "pt_br")
	for k, v := range extra {
		params[k] = v
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("openweather: failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		// *url.Error carries the full URL, appid included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("openweather: failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The body may echo the request URL, which contains the API key; keep only the status.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("openweather: API error (status %d) on /%s", resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("openweather: failed to parse response: %w", err)
	}
	return nil
}
