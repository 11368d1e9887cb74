package provider

import (
	"context"
	"fmt"
	"math"
	"net/url"
)

const kelvinOffset = 273.15

// WeatherReport is the normalized weather data shown to the user.
type WeatherReport struct {
	TemperatureCelsius float64
	Description        string
	WindSpeedMS        float64
}

// weatherResponse mirrors the fields we read from the OpenWeatherMap payload.
type weatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"` // Kelvin
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
	} `json:"wind"`
}

// Weather looks up current weather by city name. The provider reports the
// temperature in Kelvin; the returned report is in Celsius, rounded to two
// decimal places.
func (c *Client) Weather(ctx context.Context, city string) (WeatherReport, error) {
	u, err := url.Parse(c.cfg.WeatherURL)
	if err != nil {
		return WeatherReport{}, fmt.Errorf("weather endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("appid", c.cfg.WeatherAPIKey)
	u.RawQuery = q.Encode()

	var res weatherResponse
	if err := c.getJSON(ctx, u.String(), &res); err != nil {
		c.log.Warn().Err(err).Str("city", city).Msg("weather lookup failed")
		return WeatherReport{}, fmt.Errorf("weather lookup for %q: %w", city, err)
	}

	if len(res.Weather) == 0 {
		return WeatherReport{}, fmt.Errorf("weather lookup for %q: no conditions in response", city)
	}

	return WeatherReport{
		TemperatureCelsius: round2(res.Main.Temp - kelvinOffset),
		Description:        res.Weather[0].Description,
		WindSpeedMS:        res.Wind.Speed,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
