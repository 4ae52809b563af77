package optimize

import (
	"bytes"
	"image"
	"image/png"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// File is an in-memory upload. Draft fields hold these until the
// persister has pushed them to object storage.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// DetectType returns the declared content type, sniffing the bytes
// when the caller did not provide one.
func (f File) DetectType() string {
	if f.ContentType != "" {
		return f.ContentType
	}
	return http.DetectContentType(f.Data)
}

func (f File) IsImage() bool {
	return strings.HasPrefix(f.DetectType(), "image/")
}

func (f File) IsPDF() bool {
	return f.DetectType() == "application/pdf" || bytes.HasPrefix(f.Data, []byte("%PDF"))
}

// --------------------------------------------------
// Normalization profiles
// --------------------------------------------------

type Profile struct {
	MaxBytes int     // soft byte cap
	MaxEdge  int     // longest edge in px
	Format   string  // "png" | "webp"
	Quality  float32 // 0..1 hint, only honored by lossy formats
}

var (
	ProfileLogo    = Profile{MaxBytes: 2 << 20, MaxEdge: 1024, Format: "png", Quality: 0.9}
	ProfileGeneral = Profile{MaxBytes: 1 << 20, MaxEdge: 2560, Format: "webp", Quality: 0.82}
)

// --------------------------------------------------
// Normalize
// --------------------------------------------------
//
// Resizes, recompresses and re-extensions an image per profile.
// Non-images pass through untouched, and ANY codec failure falls
// back to the original file so the pipeline never aborts here.
func Normalize(f File, p Profile) File {
	if !f.IsImage() {
		return f
	}

	src, err := imaging.Decode(bytes.NewReader(f.Data), imaging.AutoOrientation(true))
	if err != nil {
		return f
	}

	if longestEdge(src) > p.MaxEdge {
		src = imaging.Fit(src, p.MaxEdge, p.MaxEdge, imaging.Lanczos)
	}

	out, contentType, err := encode(src, p)
	if err != nil {
		return f
	}

	// Walk quality / dimensions down until under the byte cap.
	quality := p.Quality
	for attempt := 0; attempt < 5 && len(out) > p.MaxBytes; attempt++ {
		if p.Format == "webp" && quality > 0.4 {
			quality -= 0.1
		} else {
			w := src.Bounds().Dx() * 4 / 5
			h := src.Bounds().Dy() * 4 / 5
			if w < 1 || h < 1 {
				break
			}
			src = imaging.Resize(src, w, h, imaging.Lanczos)
		}
		next, _, encErr := encode(src, Profile{Format: p.Format, Quality: quality})
		if encErr != nil {
			break
		}
		out = next
	}

	return File{
		Name:        rewriteExtension(f.Name, p.Format),
		ContentType: contentType,
		Data:        out,
	}
}

func encode(img image.Image, p Profile) ([]byte, string, error) {
	var buf bytes.Buffer

	switch p.Format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/png", nil
	default:
		opts := &webp.Options{Quality: p.Quality * 100}
		if err := webp.Encode(&buf, img, opts); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/webp", nil
	}
}

func longestEdge(img image.Image) int {
	b := img.Bounds()
	if b.Dx() > b.Dy() {
		return b.Dx()
	}
	return b.Dy()
}

// rewriteExtension swaps the filename extension for the output
// format while preserving the base name.
func rewriteExtension(name, format string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		base = name
	}
	return base + "." + format
}
