package media

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestStore_SaveAndRemove(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	img, err := store.Save("photo.png", strings.NewReader("png bytes"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if img.ID == "" || img.Checksum == "" {
		t.Error("saved image must carry id and checksum")
	}
	if img.Name != "photo.png" {
		t.Errorf("name = %q", img.Name)
	}
	if img.ContentType != "image/png" {
		t.Errorf("content type = %q", img.ContentType)
	}
	if img.Size != int64(len("png bytes")) {
		t.Errorf("size = %d", img.Size)
	}
	if filepath.Base(img.Path) == "photo.png" {
		t.Error("stored filename must not reuse the device name")
	}
	if _, err := os.Stat(img.Path); err != nil {
		t.Fatalf("staged file missing: %v", err)
	}

	if err := store.Remove(img); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := os.Stat(img.Path); !errors.Is(err, os.ErrNotExist) {
		t.Error("staged file must be gone after remove")
	}

	// Removing again is best effort, not an error.
	if err := store.Remove(img); err != nil {
		t.Errorf("repeated remove must be a no-op, got: %v", err)
	}
}

func TestStore_EmptyName_Rejected(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if _, err := store.Save("", strings.NewReader("x")); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got: %v", err)
	}
}

func TestContentTypeFor(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"a.jpg":  "image/jpg",
		"b.PNG":  "image/png",
		"c.webp": "image/webp",
		"noext":  "image/jpeg",
	}
	for name, want := range cases {
		if got := ContentTypeFor(name); got != want {
			t.Errorf("ContentTypeFor(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestSelection_GalleryLimitAndDedupe(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	var sel Selection

	save := func(name, content string) Image {
		img, err := store.Save(name, strings.NewReader(content))
		if err != nil {
			t.Fatalf("save failed: %v", err)
		}
		return img
	}

	pick := make([]Image, 0, GalleryPickLimit+1)
	for i := 0; i < GalleryPickLimit+1; i++ {
		pick = append(pick, save("p.jpg", strings.Repeat("x", i+1)))
	}
	if _, err := sel.AddFromGallery(pick); !errors.Is(err, ErrTooManyImages) {
		t.Fatalf("expected ErrTooManyImages, got: %v", err)
	}
	if _, err := sel.AddFromGallery(nil); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got: %v", err)
	}

	a := save("a.jpg", "content-a")
	b := save("b.jpg", "content-b")
	added, err := sel.AddFromGallery([]Image{a, b})
	if err != nil || len(added) != 2 {
		t.Fatalf("add failed: %v (%d added)", err, len(added))
	}

	// Same bytes under a different name are a duplicate.
	dup := save("copy-of-a.jpg", "content-a")
	added, err = sel.AddFromGallery([]Image{dup})
	if err != nil {
		t.Fatalf("duplicate add failed: %v", err)
	}
	if len(added) != 0 || sel.Len() != 2 {
		t.Errorf("duplicate content must be skipped: added=%d len=%d", len(added), sel.Len())
	}
}

func TestSelection_RemoveByID(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	var sel Selection

	img, err := store.Save("a.jpg", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	sel.AddFromCamera(img)

	if _, ok := sel.Remove("missing"); ok {
		t.Error("removing an unknown id must report false")
	}
	removed, ok := sel.Remove(img.ID)
	if !ok || removed.ID != img.ID {
		t.Fatalf("remove failed: %v %v", removed, ok)
	}
	if sel.Len() != 0 {
		t.Errorf("selection length = %d after remove", sel.Len())
	}
}

func TestSelection_ImagesReturnsCopy(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	var sel Selection

	img, err := store.Save("a.jpg", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	sel.AddFromCamera(img)

	out := sel.Images()
	out[0].ID = "mutated"
	if sel.Images()[0].ID == "mutated" {
		t.Error("Images must return a copy")
	}
}
