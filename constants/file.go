package constants

import "strings"

// MaxUploadBytes caps invoice uploads at 10MB; the scan handler rejects
// larger files before the vendor is ever called.
const MaxUploadBytes = 10 * 1024 * 1024

// AllowedExtensions holds the file extensions accepted for invoice scans.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// AllowedContentTypes holds the MIME types accepted for invoice scans.
var AllowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/jpg":       {},
	"image/png":       {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
