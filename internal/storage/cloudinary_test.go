package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"transfleet/internal/media"
)

func newTestUploader(t *testing.T, handler http.Handler) (*CloudinaryUploader, *media.Store) {
	t.Helper()

	store, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewCloudinaryUploader(server.URL, "transfleet", "updateStatus", store, 5*time.Second), store
}

func stageImages(t *testing.T, store *media.Store, names ...string) []media.Image {
	t.Helper()
	images := make([]media.Image, 0, len(names))
	for _, name := range names {
		img, err := store.Save(name, strings.NewReader("bytes of "+name))
		if err != nil {
			t.Fatalf("stage failed: %v", err)
		}
		images = append(images, img)
	}
	return images
}

func TestUpload_EmptyInput_NoNetworkCalls(t *testing.T) {
	t.Parallel()

	var calls int32
	uploader, _ := newTestUploader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))

	urls, err := uploader.Upload(context.Background(), nil)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if urls == nil || len(urls) != 0 {
		t.Errorf("expected empty url list, got %v", urls)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("expected zero requests, got %d", calls)
	}
}

func TestUpload_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	uploader, store := newTestUploader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("bad multipart form: %v", err)
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			return
		}
		fmt.Fprintf(w, `{"secure_url":"https://res.cloudinary.com/transfleet/%s"}`, header.Filename)
	}))

	images := stageImages(t, store, "1.jpg", "2.jpg", "3.jpg", "4.jpg")
	urls, err := uploader.Upload(context.Background(), images)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	for i, want := range []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg"} {
		if !strings.HasSuffix(urls[i], want) {
			t.Errorf("urls[%d] = %q, want suffix %q", i, urls[i], want)
		}
	}
}

func TestUpload_SendsUnsignedUploadFields(t *testing.T) {
	t.Parallel()

	uploader, store := newTestUploader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("bad multipart form: %v", err)
		}
		if got := r.FormValue("upload_preset"); got != "updateStatus" {
			t.Errorf("upload_preset = %q", got)
		}
		if got := r.FormValue("cloud_name"); got != "transfleet" {
			t.Errorf("cloud_name = %q", got)
		}
		_, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			return
		}
		if header.Filename != "evidence.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/jpg" {
			t.Errorf("file content type = %q", ct)
		}
		fmt.Fprint(w, `{"secure_url":"https://res.cloudinary.com/ok"}`)
	}))

	images := stageImages(t, store, "evidence.jpg")
	if _, err := uploader.Upload(context.Background(), images); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
}

func TestUpload_AnyFailure_FailsWholeBatch(t *testing.T) {
	t.Parallel()

	uploader, store := newTestUploader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("bad multipart form: %v", err)
		}
		_, header, _ := r.FormFile("file")
		if header != nil && header.Filename == "bad.jpg" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":{"message":"Invalid image file"}}`)
			return
		}
		fmt.Fprint(w, `{"secure_url":"https://res.cloudinary.com/ok"}`)
	}))

	images := stageImages(t, store, "good.jpg", "bad.jpg", "also-good.jpg")
	urls, err := uploader.Upload(context.Background(), images)
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got: %v", err)
	}
	if urls != nil {
		t.Errorf("no partial url list may be returned, got %v", urls)
	}
	if !strings.Contains(err.Error(), "Invalid image file") {
		t.Errorf("error must carry the upstream message, got: %v", err)
	}
}

func TestUpload_SuccessWithoutSecureURL_FailsBatch(t *testing.T) {
	t.Parallel()

	uploader, store := newTestUploader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))

	images := stageImages(t, store, "evidence.jpg")
	urls, err := uploader.Upload(context.Background(), images)
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got: %v", err)
	}
	if urls != nil {
		t.Errorf("no url list may be returned, got %v", urls)
	}
	if !strings.Contains(err.Error(), "secure_url") {
		t.Errorf("error must name the missing field, got: %v", err)
	}
}

func TestJoinURLs(t *testing.T) {
	t.Parallel()

	if got := JoinURLs([]string{"a", "b", "c"}); got != "a|b|c" {
		t.Errorf("JoinURLs = %q", got)
	}
	if got := JoinURLs(nil); got != "" {
		t.Errorf("JoinURLs(nil) = %q", got)
	}
	if got := JoinURLs([]string{"only"}); got != "only" {
		t.Errorf("JoinURLs(single) = %q", got)
	}
}
