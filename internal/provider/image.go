package provider

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoImage is returned when the image provider answers with an empty result.
var ErrNoImage = errors.New("image provider returned no results")

// imageResponse mirrors the thecatapi payload, a JSON array of images.
type imageResponse []struct {
	URL string `json:"url"`
}

// RandomImage fetches the URL of a random cat picture.
func (c *Client) RandomImage(ctx context.Context) (string, error) {
	var res imageResponse
	if err := c.getJSON(ctx, c.cfg.CatURL, &res); err != nil {
		c.log.Warn().Err(err).Msg("image lookup failed")
		return "", fmt.Errorf("image lookup: %w", err)
	}

	if len(res) == 0 || res[0].URL == "" {
		return "", ErrNoImage
	}
	return res[0].URL, nil
}
