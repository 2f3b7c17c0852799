// Package intake checks user input before it reaches the stores: files
// picked for upload and the registration form.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophcloud/internal/models"
	"github.com/gabriel-vasile/mimetype"
)

const MinSecretLength = 6

var (
	ErrUnsupportedType = errors.New("only image and video files are supported")
	ErrValidation      = errors.New("validation failed")
)

// ValidationError carries the message shown next to the form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Extensions whose MIME type is not in the standard library's table.
var mediaExtensions = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".heic": "image/heic",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
}

func baseType(t string) string {
	t, _, _ = strings.Cut(t, ";")
	return strings.ToLower(strings.TrimSpace(t))
}

func typeByExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := mediaExtensions[ext]; ok {
		return t
	}
	return baseType(mime.TypeByExtension(ext))
}

// DetectType returns the MIME type of data, sniffed from its content and
// falling back to the extension of name when sniffing is inconclusive.
func DetectType(name string, data []byte) string {
	detected := baseType(mimetype.Detect(data).String())
	if models.KindOf(detected) != models.KindOther {
		return detected
	}
	if byExt := typeByExtension(name); models.KindOf(byExt) != models.KindOther {
		return byExt
	}
	return detected
}

// Accept builds a RawFile for upload, rejecting anything that is not an
// image or a video.
func Accept(name string, data []byte) (models.RawFile, error) {
	t := DetectType(name, data)
	if models.KindOf(t) == models.KindOther {
		return models.RawFile{}, fmt.Errorf("%s (%s): %w", name, t, ErrUnsupportedType)
	}
	return models.RawFile{Name: name, Type: t, Data: data}, nil
}

// OpenFile reads path and passes it through Accept.
func OpenFile(path string) (models.RawFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.RawFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Accept(filepath.Base(path), data)
}

// ValidateRegistration checks the registration form.
func ValidateRegistration(name, email string, secret, confirm []byte) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || len(secret) == 0 || len(confirm) == 0 {
		return &ValidationError{Message: "All fields are required"}
	}
	if !bytes.Equal(secret, confirm) {
		return &ValidationError{Message: "Passwords do not match"}
	}
	if utf8.RuneCount(secret) < MinSecretLength {
		return &ValidationError{Message: "Password must be at least 6 characters long"}
	}
	return nil
}
