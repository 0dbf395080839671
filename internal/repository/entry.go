package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Masanori-Bessho/kaikei-poc-repo/constants"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/common"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/entity"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrscan"
)

// EntryStore persists payment-request entries.
type EntryStore interface {
	Create(ctx context.Context, e *entity.Entry) (*entity.Entry, error)
	List(ctx context.Context) ([]*entity.Entry, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Entry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status constants.EntryStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type entryStore struct {
	pool   Pool
	logger *slog.Logger
}

func NewEntryStore(pool Pool, logger *slog.Logger) EntryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &entryStore{pool: pool, logger: logger}
}

const entryColumns = `id, slip_title, payee_name, invoice_number, transaction_date,
	occurrence_month_start, occurrence_month_end, payment_date, staff_name,
	payment_method, amount, tax_amount, total_amount, status, line_items,
	created_at, updated_at`

func (s *entryStore) Create(ctx context.Context, e *entity.Entry) (*entity.Entry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = constants.EntryStatusDraft
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	items := []byte("[]")
	if len(e.LineItems) > 0 {
		var err error
		items, err = json.Marshal(e.LineItems)
		if err != nil {
			return nil, fmt.Errorf("marshal line items: %w", err)
		}
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO entries (`+entryColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		e.ID, e.SlipTitle, e.PayeeName, e.InvoiceNumber, e.TransactionDate,
		e.OccurrenceMonthStart, e.OccurrenceMonthEnd, e.PaymentDate, e.StaffName,
		e.PaymentMethod, e.Amount, e.TaxAmount, e.TotalAmount, string(e.Status), items,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("entries.create.failed", "entry_id", e.ID, "error", err)
		return nil, common.WrapError(err, "create entry")
	}
	s.logger.Info("entries.create.ok", "entry_id", e.ID, "payee", e.PayeeName)
	return e, nil
}

func (s *entryStore) List(ctx context.Context) ([]*entity.Entry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+entryColumns+` FROM entries ORDER BY created_at DESC`)
	if err != nil {
		return nil, common.WrapError(err, "list entries")
	}
	defer rows.Close()

	var out []*entity.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "list entries")
	}
	return out, nil
}

func (s *entryStore) Get(ctx context.Context, id uuid.UUID) (*entity.Entry, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+entryColumns+` FROM entries WHERE id = $1`, id)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.WrapError(err, "get entry")
	}
	return e, nil
}

func (s *entryStore) UpdateStatus(ctx context.Context, id uuid.UUID, status constants.EntryStatus) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE entries SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status))
	if err != nil {
		return common.WrapError(err, "update entry status")
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	s.logger.Info("entries.status.ok", "entry_id", id, "status", status)
	return nil
}

func (s *entryStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return common.WrapError(err, "delete entry")
	}
	if tag.RowsAffected() == 0 {
		return common.ErrNotFound
	}
	s.logger.Info("entries.delete.ok", "entry_id", id)
	return nil
}

// scanEntry reads one row; pgx.Row and pgx.Rows share the Scan signature.
func scanEntry(row pgx.Row) (*entity.Entry, error) {
	var (
		e      entity.Entry
		status string
		items  []byte
	)
	err := row.Scan(
		&e.ID, &e.SlipTitle, &e.PayeeName, &e.InvoiceNumber, &e.TransactionDate,
		&e.OccurrenceMonthStart, &e.OccurrenceMonthEnd, &e.PaymentDate, &e.StaffName,
		&e.PaymentMethod, &e.Amount, &e.TaxAmount, &e.TotalAmount, &status, &items,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Status = constants.EntryStatus(status)
	if len(items) > 0 {
		var lineItems []ocrscan.LineItem
		if err := json.Unmarshal(items, &lineItems); err != nil {
			return nil, fmt.Errorf("unmarshal line items: %w", err)
		}
		e.LineItems = lineItems
	}
	return &e, nil
}
