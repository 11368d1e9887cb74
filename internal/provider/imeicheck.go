package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// IMEICheck is the device record returned by the IMEI lookup service. Fields
// the service does not know are left empty; presentation decides how to render
// them.
type IMEICheck struct {
	Status       string `json:"status"`
	Model        string `json:"model"`
	Manufacturer string `json:"manufacturer"`
	Serial       string `json:"serial"`
}

// CheckIMEI posts a validated identifier to the lookup service and returns the
// device record. The caller is expected to have run imei.Valid first; the
// service rejects malformed identifiers with a client error.
func (c *Client) CheckIMEI(ctx context.Context, imei string) (IMEICheck, error) {
	body, err := json.Marshal(map[string]string{"imei": imei})
	if err != nil {
		return IMEICheck{}, fmt.Errorf("encode imei request: %w", err)
	}

	var res IMEICheck
	err = c.roundTrip(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.IMEIURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.cfg.IMEIAPIToken)
		return req, nil
	}, &res)
	if err != nil {
		c.log.Warn().Err(err).Msg("imei check failed")
		return IMEICheck{}, fmt.Errorf("imei check: %w", err)
	}

	return res, nil
}
