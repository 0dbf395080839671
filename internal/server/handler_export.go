package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/common"
)

// handleExportEntries streams all entries as a spreadsheet. ?format=csv
// switches from the default XLSX.
func (s *Server) handleExportEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.entries.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	stamp := time.Now().Format("20060102")
	switch format := r.URL.Query().Get("format"); format {
	case "", "xlsx":
		out, err := s.export.EntriesXLSX(entries)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="entries-%s.xlsx"`, stamp))
		_, _ = w.Write(out)
	case "csv":
		out, err := s.export.EntriesCSV(entries)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="entries-%s.csv"`, stamp))
		_, _ = w.Write(out)
	default:
		s.writeError(w, r, common.NewAppError("BAD_FORMAT",
			"format must be xlsx or csv", common.ErrInvalidInput))
	}
}
