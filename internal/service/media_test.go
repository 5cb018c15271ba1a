package service

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"linkup/internal/config"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"my photo.png", "my_photo.png"},
		{"../../etc/passwd", "passwd"},
		{".hidden", "hidden"},
		{"weird$name!.jpg", "weird_name_.jpg"},
		{"صورة.png", "____.png"},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// multipartFixture builds a real multipart file + header for upload tests.
func multipartFixture(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("media", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	reader := multipart.NewReader(&buf, mw.Boundary())
	form, err := reader.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })

	headers := form.File["media"]
	if len(headers) != 1 {
		t.Fatalf("got %d file headers, want 1", len(headers))
	}
	file, err := headers[0].Open()
	if err != nil {
		t.Fatalf("open form file: %v", err)
	}
	t.Cleanup(func() { file.Close() })

	return file, headers[0]
}

func newTestMediaService(t *testing.T) *MediaService {
	t.Helper()
	base := t.TempDir()
	svc, err := NewMediaService(&config.Config{
		UploadDir:       filepath.Join(base, "uploads"),
		ProfileImageDir: filepath.Join(base, "profile_images"),
	})
	if err != nil {
		t.Fatalf("new media service: %v", err)
	}
	return svc
}

func TestMediaService_SavePostUpload_KeepsOriginalFilename(t *testing.T) {
	svc := newTestMediaService(t)

	file, header := multipartFixture(t, "clip.mp4", []byte("not really a video"))

	name, err := svc.SavePostUpload(file, header)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if name != "clip.mp4" {
		t.Errorf("stored name = %q, want clip.mp4", name)
	}

	data, err := os.ReadFile(filepath.Join(svc.uploadDir, "clip.mp4"))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "not really a video" {
		t.Error("stored content does not match the upload")
	}
}

func TestMediaService_SavePostUpload_StripsPathComponents(t *testing.T) {
	svc := newTestMediaService(t)

	file, header := multipartFixture(t, "evil.txt", []byte("x"))
	header.Filename = "../../evil.txt"

	name, err := svc.SavePostUpload(file, header)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if name != "evil.txt" {
		t.Errorf("stored name = %q, want evil.txt", name)
	}
	if _, err := os.Stat(filepath.Join(svc.uploadDir, "evil.txt")); err != nil {
		t.Errorf("file not stored inside the uploads dir: %v", err)
	}
}

func TestMediaService_SaveProfileImage_NonDecodableStoredRaw(t *testing.T) {
	svc := newTestMediaService(t)

	svgData := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	file, header := multipartFixture(t, "my icon.svg", svgData)

	name, err := svc.SaveProfileImage(file, header)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if name != "my_icon.svg" {
		t.Errorf("stored name = %q, want my_icon.svg", name)
	}

	data, err := os.ReadFile(filepath.Join(svc.profileDir, "my_icon.svg"))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !bytes.Equal(data, svgData) {
		t.Error("non-decodable image should be stored unmodified")
	}
}

func TestMediaService_Resolve(t *testing.T) {
	svc := newTestMediaService(t)

	if err := os.WriteFile(filepath.Join(svc.uploadDir, "a.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if _, err := svc.Resolve("a.png"); err != nil {
		t.Errorf("expected a.png to resolve, got: %v", err)
	}
	if _, err := svc.Resolve("missing.png"); !os.IsNotExist(err) {
		t.Errorf("expected not-exist for missing file, got: %v", err)
	}
	for _, bad := range []string{"../a.png", "a/../b.png", ".hidden", ""} {
		if _, err := svc.Resolve(bad); err == nil {
			t.Errorf("Resolve(%q) should be rejected", bad)
		}
	}
}
