package media

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrPermissionDenied is returned when the host refuses access to
	// the staging area. Callers surface it to the user and abort the
	// pending action; it never escapes as a panic.
	ErrPermissionDenied = errors.New("media access denied")

	// ErrTooManyImages is returned when one gallery pick exceeds the
	// selection limit.
	ErrTooManyImages = errors.New("too many images in one selection")

	// ErrNoImage is returned when an intake carries no file.
	ErrNoImage = errors.New("no image provided")
)

// GalleryPickLimit caps a single gallery selection. The cumulative
// selection across repeated picks is unbounded.
const GalleryPickLimit = 5

// Image is a staged local image reference awaiting upload.
type Image struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Path        string `json:"-"`
	Size        int64  `json:"size"`
	Checksum    string `json:"-"`
}

// Store persists incoming photos under a staging directory until the
// submission they belong to succeeds or is cancelled.
type Store struct {
	dir string
}

// NewStore creates the staging directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, wrapPermission(err)
	}
	return &Store{dir: dir}, nil
}

// Save stages one image. The stored filename is a fresh id so device
// filenames cannot collide; the original name is kept for upload.
func (s *Store) Save(name string, r io.Reader) (Image, error) {
	if name == "" {
		return Image{}, ErrNoImage
	}

	id := uuid.New().String()
	path := filepath.Join(s.dir, id+filepath.Ext(name))

	f, err := os.Create(path)
	if err != nil {
		return Image{}, wrapPermission(err)
	}

	sum := sha256.New()
	size, err := io.Copy(io.MultiWriter(f, sum), r)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return Image{}, fmt.Errorf("stage image: %w", err)
	}

	return Image{
		ID:          id,
		Name:        name,
		ContentType: ContentTypeFor(name),
		Path:        path,
		Size:        size,
		Checksum:    hex.EncodeToString(sum.Sum(nil)),
	}, nil
}

// Remove deletes a staged image file. A missing file is not an error;
// cleanup is best effort.
func (s *Store) Remove(img Image) error {
	err := os.Remove(img.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return wrapPermission(err)
	}
	return nil
}

// Open opens a staged image for reading.
func (s *Store) Open(img Image) (io.ReadCloser, error) {
	f, err := os.Open(img.Path)
	if err != nil {
		return nil, wrapPermission(err)
	}
	return f, nil
}

func wrapPermission(err error) error {
	if errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return err
}

// ContentTypeFor derives the image content type from the filename
// extension, defaulting to JPEG when there is none.
func ContentTypeFor(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return "image/jpeg"
	}
	return "image/" + strings.ToLower(ext)
}

// Selection is the ordered working set of images for one submission.
// It is not safe for concurrent use; the owning submission serializes
// access.
type Selection struct {
	images []Image
}

// AddFromGallery appends one gallery pick to the selection. At most
// GalleryPickLimit images per pick; images whose content is already in
// the selection are skipped, so re-adding is a no-op. Returns the
// images actually added.
func (sel *Selection) AddFromGallery(imgs []Image) ([]Image, error) {
	if len(imgs) == 0 {
		return nil, ErrNoImage
	}
	if len(imgs) > GalleryPickLimit {
		return nil, ErrTooManyImages
	}

	var added []Image
	for _, img := range imgs {
		if sel.contains(img.Checksum) {
			continue
		}
		sel.images = append(sel.images, img)
		added = append(added, img)
	}
	return added, nil
}

// AddFromCamera appends a single captured photo.
func (sel *Selection) AddFromCamera(img Image) {
	sel.images = append(sel.images, img)
}

// Remove drops an image from the selection by id.
func (sel *Selection) Remove(id string) (Image, bool) {
	for i, img := range sel.images {
		if img.ID == id {
			sel.images = append(sel.images[:i], sel.images[i+1:]...)
			return img, true
		}
	}
	return Image{}, false
}

// Images returns the selection in pick order.
func (sel *Selection) Images() []Image {
	out := make([]Image, len(sel.images))
	copy(out, sel.images)
	return out
}

// Len returns the number of selected images.
func (sel *Selection) Len() int { return len(sel.images) }

func (sel *Selection) contains(checksum string) bool {
	for _, img := range sel.images {
		if img.Checksum == checksum {
			return true
		}
	}
	return false
}
