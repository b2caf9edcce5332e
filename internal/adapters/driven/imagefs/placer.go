// Package imagefs materialises dataset images on the local filesystem,
// optionally scaling them down on the way.
package imagefs

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Register decoders for the formats the converter accepts.
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
)

// Ensure Placer implements the interface.
var _ driven.ImagePlacer = (*Placer)(nil)

// Placer implements driven.ImagePlacer on the local filesystem.
type Placer struct{}

// NewPlacer creates a new image placer.
func NewPlacer() *Placer {
	return &Placer{}
}

// Place puts src inside destDir under its base name and returns the
// final pixel dimensions. Without a resize only the image header is
// decoded.
func (p *Placer) Place(src, destDir string, opts driven.PlaceOptions) (int, int, error) {
	width, height, err := decodeSize(src)
	if err != nil {
		return 0, 0, err
	}

	dest := filepath.Join(destDir, filepath.Base(src))

	if opts.MaxSide > 0 && (width > opts.MaxSide || height > opts.MaxSide) {
		return resizeInto(src, dest, opts.MaxSide)
	}
	if opts.Link {
		return width, height, linkOrCopy(src, dest)
	}
	return width, height, copyFile(src, dest)
}

// decodeSize reads just the image header.
func decodeSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// resizeInto scales the image so its longer side becomes maxSide,
// preserving aspect ratio, and saves the result at dest.
func resizeInto(src, dest string, maxSide int) (int, int, error) {
	img, err := imaging.Open(src)
	if err != nil {
		return 0, 0, fmt.Errorf("opening %s: %w", src, err)
	}

	var resized image.Image
	bounds := img.Bounds()
	if bounds.Dx() >= bounds.Dy() {
		resized = imaging.Resize(img, maxSide, 0, imaging.Lanczos)
	} else {
		resized = imaging.Resize(img, 0, maxSide, imaging.Lanczos)
	}

	if err := imaging.Save(resized, dest); err != nil {
		return 0, 0, fmt.Errorf("saving %s: %w", dest, err)
	}
	final := resized.Bounds()
	return final.Dx(), final.Dy(), nil
}

// linkOrCopy hard-links src to dest, falling back to a copy when the
// link fails (cross-device outputs, filesystems without hard links).
func linkOrCopy(src, dest string) error {
	if err := os.Link(src, dest); err != nil {
		return copyFile(src, dest)
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying to %s: %w", dest, err)
	}
	return out.Close()
}
