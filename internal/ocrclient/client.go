// Package ocrclient calls the invoice-OCR vendor endpoint. The response body
// is vendor-defined and treated as opaque: it is decoded into an ocrjson tree
// and handed to the extraction engine untouched.
package ocrclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrjson"
)

// scanRequest is the vendor's upload contract: the file travels inline as
// base64 on a signed URL.
type scanRequest struct {
	FileName string `json:"fileName"`
	File     string `json:"file"`
}

type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *slog.Logger
}

// NewClient builds a vendor client for the given signed endpoint URL.
func NewClient(endpoint string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		logger:     logger,
	}
}

// Scan uploads one file and returns the decoded response tree along with the
// verbatim body (kept for audit display). A transport failure or a non-JSON
// body is an upstream failure: the extraction engine is never invoked with a
// payload that did not parse.
func (c *Client) Scan(ctx context.Context, fileName string, file []byte) (*ocrjson.Value, []byte, error) {
	reqID := uuid.New().String()
	start := time.Now()

	body, err := json.Marshal(scanRequest{
		FileName: fileName,
		File:     base64.StdEncoding.EncodeToString(file),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("encode scan request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("build scan request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("ocrclient.request",
		"req_id", reqID,
		"file_name", fileName,
		"file_bytes", len(file),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("ocrclient.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, nil, fmt.Errorf("call ocr vendor: %w", err)
	}
	defer func(rc io.ReadCloser) {
		if cerr := rc.Close(); cerr != nil {
			c.logger.Warn("ocrclient.body_close_error", "req_id", reqID, "error", cerr)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read ocr response: %w", err)
	}

	c.logger.Info("ocrclient.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return nil, raw, fmt.Errorf("ocr vendor returned status %d", resp.StatusCode)
	}

	tree, err := ocrjson.Decode(raw)
	if err != nil {
		return nil, raw, fmt.Errorf("ocr response is not valid json: %w", err)
	}
	return tree, raw, nil
}
