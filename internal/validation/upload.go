package validation

import (
	"strconv"
	"unicode/utf8"
)

const DefaultMaxUploadSize int64 = 5 << 20

var allowedUploadTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"image/jpeg": true,
	"image/png":  true,
}

type FileInfo struct {
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
	FileName string `json:"fileName"`
}

// ValidateFileUpload checks declared MIME type, size and name length. A
// non-positive maxSize falls back to DefaultMaxUploadSize.
func ValidateFileUpload(file FileInfo, maxSize int64) Result {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	var errs []string
	if !allowedUploadTypes[file.FileType] {
		errs = append(errs, "File type not allowed. Allowed types: PDF, DOC, DOCX, JPEG, PNG")
	}
	if file.FileSize > maxSize {
		errs = append(errs, FileSizeMessage(maxSize))
	}
	if n := utf8.RuneCountInString(file.FileName); n < 1 || n > 255 {
		errs = append(errs, "File name must be 1-255 characters")
	}
	return newResult(errs)
}

// FileSizeMessage is the error reported for uploads larger than maxSize.
func FileSizeMessage(maxSize int64) string {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	return "File size exceeds " + formatMiB(maxSize) + " limit"
}

func formatMiB(size int64) string {
	if size%(1<<20) == 0 {
		return strconv.FormatInt(size>>20, 10) + "MB"
	}
	return strconv.FormatInt(size, 10) + " bytes"
}
