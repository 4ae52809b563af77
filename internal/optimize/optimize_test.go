package optimize

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to build png fixture: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeNonImagePassthrough(t *testing.T) {
	original := File{
		Name:        "menu.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 not really a pdf"),
	}

	got := Normalize(original, ProfileGeneral)

	if got.Name != original.Name {
		t.Errorf("name changed: %q -> %q", original.Name, got.Name)
	}
	if !bytes.Equal(got.Data, original.Data) {
		t.Errorf("bytes changed for non-image input")
	}
}

func TestNormalizeCorruptImageFallsBack(t *testing.T) {
	original := File{
		Name:        "broken.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("definitely not a jpeg"),
	}

	got := Normalize(original, ProfileGeneral)

	if got.Name != original.Name || !bytes.Equal(got.Data, original.Data) {
		t.Errorf("corrupt image should fall back to the original file")
	}
}

func TestNormalizeRewritesExtension(t *testing.T) {
	f := File{Name: "photo.png", ContentType: "image/png", Data: pngFixture(t, 64, 48)}

	general := Normalize(f, ProfileGeneral)
	if general.Name != "photo.webp" {
		t.Errorf("general profile name = %q, want photo.webp", general.Name)
	}
	if general.ContentType != "image/webp" {
		t.Errorf("general profile content type = %q", general.ContentType)
	}

	logo := Normalize(f, ProfileLogo)
	if logo.Name != "photo.png" {
		t.Errorf("logo profile name = %q, want photo.png", logo.Name)
	}
	if logo.ContentType != "image/png" {
		t.Errorf("logo profile content type = %q", logo.ContentType)
	}
}

func TestNormalizeCapsLongestEdge(t *testing.T) {
	f := File{Name: "wide.png", ContentType: "image/png", Data: pngFixture(t, 3000, 200)}

	got := Normalize(f, ProfileGeneral)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(got.Data))
	if err != nil {
		t.Fatalf("decode normalized output: %v", err)
	}
	if cfg.Width > ProfileGeneral.MaxEdge || cfg.Height > ProfileGeneral.MaxEdge {
		t.Errorf("longest edge not capped: %dx%d", cfg.Width, cfg.Height)
	}
}

func TestDetectTypeSniffsWhenMissing(t *testing.T) {
	f := File{Name: "x", Data: pngFixture(t, 4, 4)}
	if !f.IsImage() {
		t.Errorf("expected sniffed png to be detected as image")
	}

	pdf := File{Name: "m", Data: []byte("%PDF-1.7")}
	if !pdf.IsPDF() {
		t.Errorf("expected %%PDF prefix to be detected as pdf")
	}
}

// noisePngFixture is incompressible on purpose so small byte caps
// are guaranteed to be exceeded on the first encode.
func noisePngFixture(t *testing.T, w, h int) []byte {
	t.Helper()

	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to build png fixture: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeBacksOffTowardByteCap(t *testing.T) {
	original := File{
		Name:        "noisy.png",
		ContentType: "image/png",
		Data:        noisePngFixture(t, 512, 512),
	}

	uncapped := Profile{MaxBytes: 1 << 30, MaxEdge: 512, Format: "webp", Quality: 0.9}
	capped := Profile{MaxBytes: 16 << 10, MaxEdge: 512, Format: "webp", Quality: 0.9}

	full := Normalize(original, uncapped)
	reduced := Normalize(original, capped)

	if len(full.Data) <= capped.MaxBytes {
		t.Fatalf("fixture too small to trip the cap: %d bytes", len(full.Data))
	}
	if len(reduced.Data) >= len(full.Data) {
		t.Errorf("back-off did not shrink output: %d >= %d", len(reduced.Data), len(full.Data))
	}
	if reduced.ContentType != "image/webp" {
		t.Errorf("content type = %q", reduced.ContentType)
	}
	if reduced.Name != "noisy.webp" {
		t.Errorf("name = %q", reduced.Name)
	}
}
