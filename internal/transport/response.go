package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/storeops/possync/pkg/errors"
)

// DecodeResponse reads a response body, enforces a 2xx status, and decodes
// JSON into the target structure. The body is always drained and closed so
// the underlying connection can be reused.
func DecodeResponse(remote string, resp *http.Response, target any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errors.APIError{
			Remote:     remote,
			StatusCode: resp.StatusCode,
			Endpoint:   resp.Request.URL.Path,
			Message:    truncate(string(body), 512),
		}
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", remote+" response", err)
	}
	return nil
}

// truncate bounds error message payloads; remote error bodies can be large.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
