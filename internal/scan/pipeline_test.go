package scan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/common"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/entity"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrjson"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrscan"
)

type stubClient struct {
	body string
	err  error
}

func (s *stubClient) Scan(_ context.Context, _ string, _ []byte) (*ocrjson.Value, []byte, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	v, err := ocrjson.Decode([]byte(s.body))
	if err != nil {
		return nil, []byte(s.body), err
	}
	return v, []byte(s.body), nil
}

type captureRecorder struct {
	recs []entity.ScanRecord
	err  error
}

func (c *captureRecorder) Record(_ context.Context, rec entity.ScanRecord) error {
	if c.err != nil {
		return c.err
	}
	c.recs = append(c.recs, rec)
	return nil
}

func newTestPipeline(client VendorClient, audit Recorder) *Pipeline {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPipeline(client, ocrscan.NewExtractor(ocrscan.Config{}, logger), audit, logger)
}

func TestRunExtractsAndAudits(t *testing.T) {
	rec := &captureRecorder{}
	p := newTestPipeline(&stubClient{body: `{
		"json2": "INV-1",
		"json3": "ACME Corp",
		"confidence": 90,
		"a": {"amount": {"valueText": "1,000"}}
	}`}, rec)

	res, err := p.Run(context.Background(), "invoice.pdf", []byte("bytes"))
	require.NoError(t, err)
	require.Equal(t, "INV-1", res.Data.InvoiceNumber)
	require.Equal(t, "ACME Corp", res.Data.PayeeName)
	require.Equal(t, []string{"1000"}, res.Data.AmountValues)
	require.Contains(t, res.Summary, "ACME Corp")
	require.JSONEq(t, string(res.Raw), string(res.Raw))

	require.Len(t, rec.recs, 1)
	require.Equal(t, res.ScanID, rec.recs[0].ID)
	require.Equal(t, "invoice.pdf", rec.recs[0].FileName)
	require.Equal(t, 90.0, rec.recs[0].Confidence)
}

func TestRunEmptyResponseStillSucceeds(t *testing.T) {
	p := newTestPipeline(&stubClient{body: `{}`}, nil)

	res, err := p.Run(context.Background(), "invoice.pdf", []byte("bytes"))
	require.NoError(t, err)
	require.Equal(t, ocrscan.ExtractedData{}, res.Data)
	require.Contains(t, res.Summary, "未設定")
}

func TestRunVendorFailureIsUpstream(t *testing.T) {
	p := newTestPipeline(&stubClient{err: errors.New("boom")}, nil)

	_, err := p.Run(context.Background(), "invoice.pdf", []byte("bytes"))
	require.Error(t, err)
	require.ErrorIs(t, err, common.ErrUpstream)
}

func TestRunAuditFailureDoesNotFailScan(t *testing.T) {
	p := newTestPipeline(&stubClient{body: `{"json2": "INV-1"}`}, &captureRecorder{err: errors.New("disk full")})

	res, err := p.Run(context.Background(), "invoice.pdf", []byte("bytes"))
	require.NoError(t, err)
	require.Equal(t, "INV-1", res.Data.InvoiceNumber)
}
