package audit

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/entity"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "audit.db"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := entity.ScanRecord{
		ID:            uuid.New(),
		FileName:      "a.pdf",
		RawJSON:       []byte(`{"json2":"INV-1"}`),
		ExtractedJSON: []byte(`{"invoice_number":"INV-1","confidence":0}`),
		Confidence:    80,
	}
	require.NoError(t, s.Record(ctx, first))
	require.NoError(t, s.Record(ctx, entity.ScanRecord{FileName: "b.pdf", RawJSON: []byte(`{}`), ExtractedJSON: []byte(`{}`)}))

	recs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	var found bool
	for _, r := range recs {
		if r.ID == first.ID {
			found = true
			require.Equal(t, "a.pdf", r.FileName)
			require.JSONEq(t, `{"json2":"INV-1"}`, string(r.RawJSON))
			require.Equal(t, 80.0, r.Confidence)
			require.False(t, r.CreatedAt.IsZero())
		}
	}
	require.True(t, found)
}

func TestRecordAssignsIDWhenMissing(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Record(context.Background(), entity.ScanRecord{
		FileName: "c.pdf", RawJSON: []byte(`{}`), ExtractedJSON: []byte(`{}`),
	}))

	recs, err := s.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.NotEqual(t, uuid.Nil, recs[0].ID)
}
