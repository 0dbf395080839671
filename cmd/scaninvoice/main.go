package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/common"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrjson"
	"github.com/Masanori-Bessho/kaikei-poc-repo/internal/ocrscan"
)

// scaninvoice runs the extraction engine over a saved OCR response, without
// calling the vendor. Useful for replaying audit payloads.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "scaninvoice <ocr-response.json>")
		os.Exit(2)
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		logger.Error("read input", "path", os.Args[1], "error", err)
		os.Exit(1)
	}

	tree, err := ocrjson.Decode(raw)
	if err != nil {
		logger.Error("input is not valid json", "path", os.Args[1], "error", err)
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg := common.LoadConfig()
	extractor := ocrscan.NewExtractor(ocrscan.Config{
		ExcludedRecipients: cfg.Scan.ExcludedRecipients,
	}, logger)

	start := time.Now()
	data := extractor.Extract(tree)

	fmt.Println(ocrscan.Summary(data))
	fmt.Println()
	fmt.Println("--- raw response ---")
	fmt.Println(ocrscan.RawDump(tree))

	logger.Info("extraction OK",
		"payee", data.PayeeName,
		"line_items", len(data.LineItems),
		"confidence", data.Confidence,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
