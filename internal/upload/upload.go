package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Size limits mirror the upload policy: small profile pictures, larger
// restaurant and product images.
const (
	MaxProfileSize = 2 << 20
	MaxImageSize   = 5 << 20
)

var (
	ErrTooLarge    = errors.New("file too large")
	ErrUnsupported = errors.New("only image files are allowed (jpeg, jpg, png, gif, webp)")
)

var allowedExt = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Store saves uploaded images under Dir/<folder>/ with uuid filenames and
// returns the relative path recorded on the entity.
type Store struct {
	Dir string
}

func (s *Store) Save(fh *multipart.FileHeader, folder string, maxSize int64) (string, error) {
	if fh.Size > maxSize {
		return "", fmt.Errorf("%w: max %d bytes", ErrTooLarge, maxSize)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", ErrUnsupported
	}

	dir := filepath.Join(s.Dir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("upload: create dir: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("upload: create file: %w", err)
	}
	defer dst.Close()

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("upload: open upload: %w", err)
	}
	defer src.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("upload: write file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(s.Dir, folder, name)), nil
}
