package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Masanori-Bessho/kaikei-poc-repo/constants"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/common"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/entity"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrscan"
)

// createEntryRequest is the submitted form. Tax is computed server-side from
// the category and the 内税/外税 flag; the client never sends tax amounts.
type createEntryRequest struct {
	SlipTitle            string             `json:"slip_title"`
	PayeeName            string             `json:"payee_name"`
	InvoiceNumber        string             `json:"invoice_number"`
	TransactionDate      string             `json:"transaction_date"`
	OccurrenceMonthStart string             `json:"occurrence_month_start"`
	OccurrenceMonthEnd   string             `json:"occurrence_month_end"`
	PaymentDate          string             `json:"payment_date"`
	StaffName            string             `json:"staff_name"`
	PaymentMethod        string             `json:"payment_method"`
	Amount               float64            `json:"amount"`
	TaxCategory          string             `json:"tax_category"`
	TaxInclusive         bool               `json:"tax_inclusive"`
	Status               string             `json:"status"`
	LineItems            []ocrscan.LineItem `json:"line_items"`
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.NewAppError("BAD_BODY", "request body must be JSON", common.ErrInvalidInput))
		return
	}
	if req.SlipTitle == "" || req.PayeeName == "" {
		s.writeError(w, r, common.NewAppError("MISSING_FIELDS",
			"slip_title and payee_name are required", common.ErrInvalidInput))
		return
	}
	if req.Amount < 0 {
		s.writeError(w, r, common.NewAppError("BAD_AMOUNT", "amount must not be negative", common.ErrInvalidInput))
		return
	}
	if req.Status != "" && !constants.ValidEntryStatus(req.Status) {
		s.writeError(w, r, common.NewAppError("BAD_STATUS", "unknown entry status", common.ErrInvalidInput))
		return
	}

	tax := entity.ComputeTax(req.Amount, entity.TaxRate(req.TaxCategory), req.TaxInclusive)
	total := req.Amount
	if !req.TaxInclusive {
		total = req.Amount + tax
	}

	e := &entity.Entry{
		SlipTitle:            req.SlipTitle,
		PayeeName:            req.PayeeName,
		InvoiceNumber:        req.InvoiceNumber,
		TransactionDate:      req.TransactionDate,
		OccurrenceMonthStart: req.OccurrenceMonthStart,
		OccurrenceMonthEnd:   req.OccurrenceMonthEnd,
		PaymentDate:          req.PaymentDate,
		StaffName:            req.StaffName,
		PaymentMethod:        req.PaymentMethod,
		Amount:               req.Amount,
		TaxAmount:            tax,
		TotalAmount:          total,
		Status:               constants.EntryStatus(req.Status),
		LineItems:            req.LineItems,
	}

	created, err := s.entries.Create(r.Context(), e)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("entry created",
		zap.String("request_id", common.RequestIDFromContext(r.Context())),
		zap.String("entry_id", created.ID.String()),
		zap.String("payee", created.PayeeName),
	)
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.entries.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []*entity.Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseEntryID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	e, err := s.entries.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, e)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleUpdateEntryStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseEntryID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.NewAppError("BAD_BODY", "request body must be JSON", common.ErrInvalidInput))
		return
	}
	if !constants.ValidEntryStatus(req.Status) {
		s.writeError(w, r, common.NewAppError("BAD_STATUS", "unknown entry status", common.ErrInvalidInput))
		return
	}
	if err := s.entries.UpdateStatus(r.Context(), id, constants.EntryStatus(req.Status)); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"id": id.String(), "status": req.Status})
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := parseEntryID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.entries.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
