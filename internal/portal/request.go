package portal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const contentType = "application/json"

// errorBody covers the two error envelope shapes the backend produces:
// {"error": "..."} from the auth endpoints and {"error": {"message": "..."}}
// from the NL-to-query service.
type errorBody struct {
	Error json.RawMessage `json:"error"`
}

// postJSON makes a POST request with a JSON body and decodes the response
// into target. Non-2xx responses are turned into *APIError when the body
// carries an error envelope.
func (c *Client) postJSON(path string, payload, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, c.APIURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}

	c.setHeaders(req)

	resp, err := c.request(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if msg := extractErrorMessage(data); msg != "" {
			return &APIError{Message: msg}
		}
		return fmt.Errorf("%s: bad status: %s", path, resp.Status)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}

	return nil
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	return c.HTTPClient.Do(req)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", c.UserAgent)

	if c.RoleFunc != nil {
		if role := c.RoleFunc(); role != "" {
			req.Header.Set("X-User-Role", role)
		}
	}
}

// extractErrorMessage pulls a human-readable message out of an error
// envelope, whichever of the two known shapes it has.
func extractErrorMessage(data []byte) string {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || len(body.Error) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(body.Error, &plain); err == nil {
		return plain
	}

	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body.Error, &nested); err == nil {
		return nested.Message
	}

	return ""
}
