package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"transfleet/internal/media"
)

// ErrUploadFailed is returned when any image in a batch fails to
// upload. The batch is all-or-nothing: no partial URL list is ever
// returned, though images uploaded before the failure are not removed
// from the remote store.
var ErrUploadFailed = errors.New("image upload failed")

// Uploader converts staged local images into public URLs.
type Uploader interface {
	// Upload uploads all images and returns their URLs in input order.
	// An empty input resolves to an empty result without any network
	// call.
	Upload(ctx context.Context, images []media.Image) ([]string, error)
}

// CloudinaryUploader uploads evidence photos to the Cloudinary
// unsigned-upload endpoint.
type CloudinaryUploader struct {
	uploadURL  string
	cloudName  string
	preset     string
	store      *media.Store
	httpClient *http.Client
}

// NewCloudinaryUploader creates an uploader for the configured cloud.
func NewCloudinaryUploader(uploadURL, cloudName, preset string, store *media.Store, timeout time.Duration) *CloudinaryUploader {
	return &CloudinaryUploader{
		uploadURL:  uploadURL,
		cloudName:  cloudName,
		preset:     preset,
		store:      store,
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ Uploader = (*CloudinaryUploader)(nil)

// Upload uploads the images concurrently. Completion order is
// irrelevant; the returned slice preserves input order. If any single
// upload fails the whole call fails with ErrUploadFailed.
func (u *CloudinaryUploader) Upload(ctx context.Context, images []media.Image) ([]string, error) {
	if len(images) == 0 {
		return []string{}, nil
	}

	urls := make([]string, len(images))
	g, gctx := errgroup.WithContext(ctx)
	for i, img := range images {
		i, img := i, img
		g.Go(func() error {
			url, err := u.uploadOne(gctx, img)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrUploadFailed, img.Name, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *CloudinaryUploader) uploadOne(ctx context.Context, img media.Image) (string, error) {
	f, err := u.store.Open(img)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("upload_preset", u.preset); err != nil {
		return "", err
	}
	if err := form.WriteField("cloud_name", u.cloudName); err != nil {
		return "", err
	}
	part, err := form.CreatePart(fileHeader(img))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", err
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if result.Error.Message != "" {
			return "", errors.New(result.Error.Message)
		}
		return "", fmt.Errorf("upload returned status %d", resp.StatusCode)
	}
	if result.SecureURL == "" {
		return "", errors.New("upload response missing secure_url")
	}
	return result.SecureURL, nil
}

func fileHeader(img media.Image) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, img.Name))
	h.Set("Content-Type", img.ContentType)
	return h
}

// JoinURLs serializes evidence URLs the way the status-transition
// endpoints expect: a single pipe-separated string. An empty list
// yields an empty string.
func JoinURLs(urls []string) string { return strings.Join(urls, "|") }
