package attachment

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/integration-tracker/internal"
)

// MaxFileSize caps uploads at 10 MiB.
const MaxFileSize = 10 << 20

// allowedExtensions is the fixed allow-list, matched case-insensitively
// on the declared filename's suffix. Content sniffing is out of scope.
var allowedExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true,
	".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".txt": true, ".csv": true, ".zip": true,
	".msg": true, ".eml": true,
}

// CheckPolicy validates declared size and extension before any bytes are
// stored.
func CheckPolicy(declaredName string, declaredSize int64) error {
	if declaredSize > MaxFileSize {
		return internal.ErrFileTooLarge.WithMessage(
			"file exceeds the maximum allowed size of %d MiB", MaxFileSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(declaredName))
	if !allowedExtensions[ext] {
		return internal.ErrDisallowedType.WithMessage("file type %q is not allowed", ext)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename strips everything outside [A-Za-z0-9._-], keeping a
// human-recognizable suffix for the stored name.
func SanitizeFilename(name string) string {
	// drop any client-supplied directory components first
	name = filepath.Base(name)
	sanitized := unsafeChars.ReplaceAllString(name, "")
	if sanitized == "" || sanitized == "." || sanitized == ".." {
		sanitized = "file"
	}
	return sanitized
}

// StoredName builds the on-disk filename: a time and random prefix
// prevents collisions and path traversal, the sanitized suffix keeps it
// recognizable. The original name is persisted separately for display.
func StoredName(originalName string) string {
	prefix := fmt.Sprintf("%d_%s", time.Now().Unix(), uuid.NewString()[:8])
	return prefix + "_" + SanitizeFilename(originalName)
}
