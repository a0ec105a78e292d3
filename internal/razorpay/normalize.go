package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"razorpay-integration/internal/core/domain"
	"razorpay-integration/pkg/apperror"
)

// normalize is the single choke-point every gateway call passes through.
// Transport and SDK failures are logged in full for operators and surfaced as
// a generic non-diagnostic failure; an error object embedded in the response
// body is logged and surfaced as the gateway's own code and description.
// Anything else is the parsed payload, returned unchanged.
func (c *Client) normalize(op string, call func() (domain.Payload, error)) (domain.Payload, error) {
	payload, err := call()
	if err != nil {
		c.log.Error().Err(err).Str("op", op).Msg("razorpay call failed")
		return nil, apperror.ErrGatewayUnavailable(err)
	}

	if gwErr := payload.ErrorBody(); gwErr != nil {
		c.log.Error().
			Str("op", op).
			Str("code", gwErr.Code).
			Str("description", gwErr.Description).
			Msg("razorpay reported an error")
		return nil, apperror.GatewayError(gwErr.Code, gwErr.Description)
	}

	return payload, nil
}

// doJSON performs a direct HTTP call against the gateway with basic auth and
// decodes the JSON response body. Raw errors returned here are classified by
// normalize, never surfaced to callers directly.
func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}) (domain.Payload, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload domain.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
	}
	// A non-success status whose body carries a gateway error object flows on
	// so normalize can surface the gateway's own code and description. Without
	// one there is nothing to classify: the status itself is the failure.
	if resp.StatusCode >= http.StatusBadRequest && payload.ErrorBody() == nil {
		return nil, fmt.Errorf("gateway returned status %d without an error body", resp.StatusCode)
	}
	return payload, nil
}
