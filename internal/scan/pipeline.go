// Package scan coordinates one invoice scan: vendor call, normalization,
// audit trail.
package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/common"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/entity"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrjson"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrscan"
)

// VendorClient calls the OCR vendor; ocrclient.Client satisfies this.
type VendorClient interface {
	Scan(ctx context.Context, fileName string, file []byte) (*ocrjson.Value, []byte, error)
}

// Recorder appends scan audit rows; audit.Store satisfies this.
type Recorder interface {
	Record(ctx context.Context, rec entity.ScanRecord) error
}

// Result is what one scan hands to the form layer.
type Result struct {
	ScanID  uuid.UUID              `json:"scan_id"`
	Data    ocrscan.ExtractedData  `json:"data"`
	Summary string                 `json:"summary"`
	Raw     json.RawMessage        `json:"raw"`
}

type Pipeline struct {
	Logger    *slog.Logger
	Client    VendorClient
	Extractor *ocrscan.Extractor
	Audit     Recorder // optional; nil disables the audit trail
}

func NewPipeline(client VendorClient, extractor *ocrscan.Extractor, audit Recorder, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Logger: logger, Client: client, Extractor: extractor, Audit: audit}
}

// Run executes one scan. A vendor or transport failure aborts the scan (the
// engine is never fed a payload that did not parse); once a tree is in hand
// the scan always succeeds, however little was extracted.
func (p *Pipeline) Run(ctx context.Context, fileName string, file []byte) (*Result, error) {
	scanID := uuid.New()
	start := time.Now()
	p.Logger.Info("scan.start", "scan_id", scanID, "file_name", fileName, "file_bytes", len(file))

	tree, raw, err := p.Client.Scan(ctx, fileName, file)
	if err != nil {
		p.Logger.Error("scan.vendor.failed", "scan_id", scanID, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrUpstream, err)
	}

	data := p.Extractor.Extract(tree)

	// Drift between the engine and its consumers is worth a log line, but
	// never worth failing a scan the user is waiting on.
	if err := ocrscan.ValidateExtracted(data); err != nil {
		p.Logger.Warn("scan.schema.mismatch", "scan_id", scanID, "error", err)
	}

	if p.Audit != nil {
		extracted, err := json.Marshal(data)
		if err != nil {
			extracted = []byte("{}")
		}
		rec := entity.ScanRecord{
			ID:            scanID,
			FileName:      fileName,
			RawJSON:       raw,
			ExtractedJSON: extracted,
			Confidence:    data.Confidence,
		}
		if err := p.Audit.Record(ctx, rec); err != nil {
			p.Logger.Warn("scan.audit.failed", "scan_id", scanID, "error", err)
		}
	}

	p.Logger.Info("scan.ok",
		"scan_id", scanID,
		"payee", data.PayeeName,
		"line_items", len(data.LineItems),
		"confidence", data.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return &Result{
		ScanID:  scanID,
		Data:    data,
		Summary: ocrscan.Summary(data),
		Raw:     raw,
	}, nil
}
