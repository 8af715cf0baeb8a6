package services

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageHost is the external image service boundary: it stores raw bytes under a
// caller-chosen public identifier and produces derived URLs for eager
// transformations. Implementations are synchronous and never retried here.
type ImageHost interface {
	Upload(ctx context.Context, r io.Reader, publicID string) (string, error)
	Transform(ctx context.Context, publicID, eager string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

// CloudinaryHost talks to Cloudinary through the official SDK.
type CloudinaryHost struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryHost builds an ImageHost from account credentials.
func NewCloudinaryHost(cloudName, apiKey, apiSecret string) (*CloudinaryHost, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	cld.Config.URL.Secure = true
	return &CloudinaryHost{cld: cld}, nil
}

// Upload stores the image under publicID and returns its stable URL.
func (h *CloudinaryHost) Upload(ctx context.Context, r io.Reader, publicID string) (string, error) {
	resp, err := h.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:  publicID,
		Overwrite: api.Bool(true),
	})
	if err != nil {
		return "", err
	}
	if resp.SecureURL == "" {
		return "", errors.New("upload response missing secure url")
	}
	return resp.SecureURL, nil
}

// Transform requests an eager transformation of an already uploaded image and
// returns the derived URL. A response without the eager result is an error,
// typically meaning the transformation string was rejected.
func (h *CloudinaryHost) Transform(ctx context.Context, publicID, eager string) (string, error) {
	resp, err := h.cld.Upload.Explicit(ctx, uploader.ExplicitParams{
		PublicID: publicID,
		Type:     "upload",
		Eager:    eager,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Eager) == 0 || resp.Eager[0].SecureURL == "" {
		return "", errors.New("transform response missing derived url")
	}
	return resp.Eager[0].SecureURL, nil
}

// Destroy deletes the hosted image. Best effort on post deletion.
func (h *CloudinaryHost) Destroy(ctx context.Context, publicID string) error {
	_, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
