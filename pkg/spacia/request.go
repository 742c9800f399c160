package spacia

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "spacia-portal/internal/errors"
	"spacia-portal/internal/models"
	"spacia-portal/pkg/logger"
	"spacia-portal/pkg/metrics"
)

// newJSONRequest builds a request against path with an optional JSON body.
func (c *Client) newJSONRequest(ctx context.Context, method, path string, payload interface{}) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			logger.GlobalLogger.Errorf("Failed to marshal request body: path=%s, error=%v", path, err)
			return nil, fmt.Errorf("failed to marshal request body: %v", err)
		}
		body = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to create request: method=%s, path=%s, error=%v", method, path, err)
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do sends req and returns the body of a 2xx response. Transport failures become
// NetworkError and non-2xx statuses become ServerError.
func (c *Client) do(operation string, req *http.Request) ([]byte, error) {
	if token := c.bearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIErrorsTotal.WithLabelValues(operation, string(apperrors.KindNetwork)).Inc()
		logger.GlobalLogger.Errorf("Failed to send request: operation=%s, url=%s, error=%v", operation, req.URL, err)
		return nil, apperrors.NewNetworkError(operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIErrorsTotal.WithLabelValues(operation, string(apperrors.KindNetwork)).Inc()
		logger.GlobalLogger.Errorf("Failed to read response body: operation=%s, url=%s, status=%s, error=%v", operation, req.URL, resp.Status, err)
		return nil, apperrors.NewNetworkError(operation, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.APIErrorsTotal.WithLabelValues(operation, string(apperrors.KindServer)).Inc()
		logger.GlobalLogger.Errorf("Request failed: operation=%s, url=%s, status=%s, response=%s", operation, req.URL, resp.Status, string(body))
		appErr := apperrors.NewServerError(operation, resp.StatusCode, string(body))
		var msg models.ErrorMessage
		if json.Unmarshal(body, &msg) == nil {
			appErr.RemoteMessage = msg.Message
		}
		return body, appErr
	}

	logger.GlobalLogger.Debugf("Request succeeded: operation=%s, url=%s, status=%s", operation, req.URL, resp.Status)
	return body, nil
}

// decode unmarshals a 2xx body, treating malformed JSON as a ServerError.
func decode(operation string, body []byte, dest interface{}) error {
	if err := json.Unmarshal(body, dest); err != nil {
		metrics.APIErrorsTotal.WithLabelValues(operation, string(apperrors.KindServer)).Inc()
		logger.GlobalLogger.Errorf("Failed to decode response: operation=%s, response=%s, error=%v", operation, string(body), err)
		appErr := apperrors.NewServerError(operation, http.StatusOK, "malformed response: "+err.Error())
		appErr.OriginalError = err
		return appErr
	}
	return nil
}

// checkEnvelope fails when a write endpoint answers 2xx with a non-success envelope.
// Empty or non-envelope bodies are accepted.
func checkEnvelope(operation string, body []byte) error {
	var envelope struct {
		Status    string `json:"status"`
		Message   string `json:"message"`
		Exception string `json:"exception"`
	}
	if len(bytes.TrimSpace(body)) == 0 || json.Unmarshal(body, &envelope) != nil {
		return nil
	}
	if envelope.Status == "" || envelope.Status == "Success" {
		return nil
	}
	metrics.APIErrorsTotal.WithLabelValues(operation, string(apperrors.KindServer)).Inc()
	logger.GlobalLogger.Errorf("Request rejected: operation=%s, status=%s, message=%s, exception=%s", operation, envelope.Status, envelope.Message, envelope.Exception)
	return apperrors.NewServerError(operation, http.StatusOK, envelope.Status+": "+envelope.Message)
}
