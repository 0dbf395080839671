package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Masanori-Bessho/kaikei-poc-repo/constants"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/common"
)

type scanUploadRequest struct {
	FileName string `json:"fileName"`
	File     string `json:"file"` // base64
}

// handleScan accepts one invoice upload, runs the scan pipeline, and returns
// the normalized record plus a display summary and the verbatim vendor
// payload. File size and type are rejected here, before the vendor is called.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, common.NewAppError("BAD_BODY", "request body must be JSON", common.ErrInvalidInput))
		return
	}
	if req.FileName == "" || req.File == "" {
		s.writeError(w, r, common.NewAppError("BAD_UPLOAD", "fileName and file are required", common.ErrInvalidInput))
		return
	}

	ext := constants.NormalizeExt(filepath.Ext(req.FileName))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		s.writeError(w, r, common.NewAppError("BAD_FILE_TYPE",
			"対応していないファイル形式です。PDF、JPEG、PNGファイルを選択してください。", common.ErrInvalidInput))
		return
	}

	file, err := base64.StdEncoding.DecodeString(req.File)
	if err != nil {
		s.writeError(w, r, common.NewAppError("BAD_UPLOAD", "file must be base64", common.ErrInvalidInput))
		return
	}
	if len(file) > constants.MaxUploadBytes {
		s.writeError(w, r, common.NewAppError("FILE_TOO_LARGE",
			"ファイルサイズが大きすぎます。10MB以下のファイルを選択してください。", common.ErrInvalidInput))
		return
	}

	res, err := s.scanner.Run(r.Context(), req.FileName, file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("scan handled",
		zap.String("request_id", common.RequestIDFromContext(r.Context())),
		zap.String("file_name", req.FileName),
		zap.Float64("confidence", res.Data.Confidence),
	)
	s.writeJSON(w, http.StatusOK, res)
}
