package provider

import (
	"context"
	"fmt"
	"net/url"
)

// QuoteFallback is returned when the quote provider cannot be reached, so the
// conversation can always complete.
const QuoteFallback = "I couldn't come up with a quote this time."

const unknownAuthor = "author unknown"

// quoteResponse mirrors the forismatic payload.
type quoteResponse struct {
	QuoteText   string `json:"quoteText"`
	QuoteAuthor string `json:"quoteAuthor"`
}

// Quote fetches a random quote and formats it as `"text" - author`. It never
// fails: any provider problem yields QuoteFallback instead of an error.
func (c *Client) Quote(ctx context.Context) string {
	u, err := url.Parse(c.cfg.QuoteURL)
	if err != nil {
		c.log.Error().Err(err).Msg("quote endpoint misconfigured")
		return QuoteFallback
	}
	q := u.Query()
	q.Set("method", "getQuote")
	q.Set("format", "json")
	q.Set("lang", "en")
	u.RawQuery = q.Encode()

	var res quoteResponse
	if err := c.getJSON(ctx, u.String(), &res); err != nil {
		c.log.Warn().Err(err).Msg("quote lookup failed")
		return QuoteFallback
	}

	if res.QuoteText == "" {
		return QuoteFallback
	}

	author := res.QuoteAuthor
	if author == "" {
		author = unknownAuthor
	}
	return fmt.Sprintf("\"%s\" - %s", res.QuoteText, author)
}
