package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pixshare/photoshare/models"
	"github.com/pixshare/photoshare/repository"
)

// fakeHost answers transform requests with deterministic URLs and records calls.
type fakeHost struct {
	uploads    int
	transforms []string
	fail       bool
}

func (f *fakeHost) Upload(_ context.Context, r io.Reader, publicID string) (string, error) {
	if f.fail {
		return "", errors.New("host down")
	}
	f.uploads++
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return "https://img.test/" + publicID + ".jpg", nil
}

func (f *fakeHost) Transform(_ context.Context, publicID, eager string) (string, error) {
	if f.fail {
		return "", errors.New("host down")
	}
	f.transforms = append(f.transforms, eager)
	return fmt.Sprintf("https://img.test/%s/%s.jpg", eager, publicID), nil
}

func (f *fakeHost) Destroy(_ context.Context, _ string) error {
	if f.fail {
		return errors.New("host down")
	}
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Tag{}, &models.Post{}, &models.TransformedPost{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedPost(t *testing.T, db *gorm.DB) *models.Post {
	t.Helper()
	user, err := repository.CreateUser(db, "owner", "owner@example.com", "$2a$10$hash")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	post, err := repository.CreatePost(db, "https://img.test/orig.jpg", "photoshare/orig", "sunset", user)
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

func TestUploadImage(t *testing.T) {
	host := &fakeHost{}
	img, err := UploadImage(context.Background(), host, strings.NewReader("jpeg bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(img.PublicID, "photoshare/") {
		t.Fatalf("public id = %q", img.PublicID)
	}
	if img.URL == "" {
		t.Fatal("empty url")
	}

	host.fail = true
	_, err = UploadImage(context.Background(), host, strings.NewReader("jpeg bytes"))
	if repository.KindOf(err) != repository.KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestResizePost(t *testing.T) {
	db := newTestDB(t)
	host := &fakeHost{}
	post := seedPost(t, db)

	_, err := ResizePost(context.Background(), db, host, post.ID, 0, 100)
	if repository.KindOf(err) != repository.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	_, err = ResizePost(context.Background(), db, host, post.ID+100, 200, 100)
	if repository.KindOf(err) != repository.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	tp, err := ResizePost(context.Background(), db, host, post.ID, 200, 100)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	if len(host.transforms) != 1 || host.transforms[0] != "c_fill,g_auto,w_200,h_100" {
		t.Fatalf("transform params: %v", host.transforms)
	}

	// repeating the same geometry resolves to the recorded row
	again, err := ResizePost(context.Background(), db, host, post.ID, 200, 100)
	if err != nil {
		t.Fatalf("resize again: %v", err)
	}
	if again.ID != tp.ID {
		t.Fatalf("dedup failed: %d vs %d", again.ID, tp.ID)
	}

	host.fail = true
	_, err = ResizePost(context.Background(), db, host, post.ID, 300, 300)
	if repository.KindOf(err) != repository.KindUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestFilterPost(t *testing.T) {
	db := newTestDB(t)
	host := &fakeHost{}
	post := seedPost(t, db)

	_, err := FilterPost(context.Background(), db, host, post.ID, "vaporwave")
	if repository.KindOf(err) != repository.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	tp, err := FilterPost(context.Background(), db, host, post.ID, "hokusai")
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if !strings.Contains(tp.PhotoURL, "e_art:hokusai") {
		t.Fatalf("url = %q", tp.PhotoURL)
	}

	again, err := FilterPost(context.Background(), db, host, post.ID, "hokusai")
	if err != nil {
		t.Fatalf("filter again: %v", err)
	}
	if again.ID != tp.ID {
		t.Fatalf("dedup failed: %d vs %d", again.ID, tp.ID)
	}
}

func TestGenerateQRCode(t *testing.T) {
	png, err := GenerateQRCode("https://img.test/orig.jpg")
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("empty png")
	}
	// PNG signature
	if string(png[1:4]) != "PNG" {
		t.Fatalf("not a png: % x", png[:8])
	}
}
