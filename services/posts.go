package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pixshare/photoshare/models"
	"github.com/pixshare/photoshare/repository"
)

// artFilters is the fixed set of named styles the image host accepts as
// art effects. Anything else is rejected before the upstream call.
var artFilters = map[string]bool{
	"al_dente": true, "athena": true, "audrey": true, "aurora": true,
	"daguerre": true, "eucalyptus": true, "fes": true, "frost": true,
	"hairspray": true, "hokusai": true, "incognito": true, "linen": true,
	"peacock": true, "primavera": true, "quartz": true, "red_rock": true,
	"refresh": true, "sizzle": true, "sonnet": true, "ukulele": true,
	"zorro": true,
}

// UploadedImage is what the host returns for a fresh upload.
type UploadedImage struct {
	PublicID string
	URL      string
}

// UploadImage pushes raw image bytes to the host under a fresh public id.
func UploadImage(ctx context.Context, host ImageHost, r io.Reader) (*UploadedImage, error) {
	publicID := "photoshare/" + uuid.NewString()
	url, err := host.Upload(ctx, r, publicID)
	if err != nil {
		return nil, repository.Upstream("image upload failed", err)
	}
	return &UploadedImage{PublicID: publicID, URL: url}, nil
}

// ResizePost asks the host for a fill-cropped resize of the post's image and
// records the derived URL. Repeated requests for the same geometry return the
// already recorded row.
func ResizePost(ctx context.Context, db *gorm.DB, host ImageHost, postID uint, width, height int) (*models.TransformedPost, error) {
	if width <= 0 || height <= 0 {
		return nil, repository.Validation("width and height must be positive")
	}
	post, err := repository.GetPost(db, postID)
	if err != nil {
		return nil, err
	}
	eager := fmt.Sprintf("c_fill,g_auto,w_%d,h_%d", width, height)
	url, err := host.Transform(ctx, post.PublicID, eager)
	if err != nil {
		return nil, repository.Upstream("image resize failed", err)
	}
	if existing, err := repository.TransformedPostByURL(db, url); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}
	return repository.AddTransformedPost(db, post.ID, url)
}

// FilterPost applies one of the named artistic styles to the post's image.
func FilterPost(ctx context.Context, db *gorm.DB, host ImageHost, postID uint, filter string) (*models.TransformedPost, error) {
	if !artFilters[filter] {
		return nil, repository.Validation("unknown filter " + filter)
	}
	post, err := repository.GetPost(db, postID)
	if err != nil {
		return nil, err
	}
	url, err := host.Transform(ctx, post.PublicID, "e_art:"+filter)
	if err != nil {
		return nil, repository.Upstream("image filter failed", err)
	}
	if existing, err := repository.TransformedPostByURL(db, url); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}
	return repository.AddTransformedPost(db, post.ID, url)
}
