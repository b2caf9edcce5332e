// Package yolo reads datasets in YOLO layout: a label list file naming
// the classes, and one .txt label file per image holding
// "class cx cy w h" lines with coordinates normalised to [0, 1].
package yolo

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
)

// Annotation is one parsed label line. Coordinates are the box centre
// and size, normalised to the image dimensions.
type Annotation struct {
	ClassID int
	CX, CY  float64
	W, H    float64
}

// imageExts are the extensions the converter picks up, matched
// case-insensitively.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// ReadLabelList reads class names from a label list file, one per line,
// skipping blank lines. Line order defines category numbering downstream.
func ReadLabelList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening label list: %w", err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading label list: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: label list %s names no classes", domain.ErrInvalidInput, path)
	}
	return names, nil
}

// ReadLabelFile parses a YOLO label file. Blank lines are skipped. Any
// other line that does not start with "class cx cy w h" is an error;
// fields past the fifth are ignored, as some exporters append extra
// columns.
func ReadLabelFile(path string) ([]Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening label file: %w", err)
	}
	defer f.Close()

	var anns []Annotation
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		ann, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNo, err)
		}
		anns = append(anns, ann)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading label file %s: %w", path, err)
	}
	return anns, nil
}

func parseLine(line string) (Annotation, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return Annotation{}, fmt.Errorf("%w: want 5 fields, got %d", domain.ErrMalformedLabel, len(fields))
	}

	classID, err := strconv.Atoi(fields[0])
	if err != nil {
		return Annotation{}, fmt.Errorf("%w: class %q is not an integer", domain.ErrMalformedLabel, fields[0])
	}

	var coords [4]float64
	for i, field := range fields[1:5] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Annotation{}, fmt.Errorf("%w: coordinate %q is not a number", domain.ErrMalformedLabel, field)
		}
		coords[i] = v
	}

	return Annotation{
		ClassID: classID,
		CX:      coords[0],
		CY:      coords[1],
		W:       coords[2],
		H:       coords[3],
	}, nil
}

// FindImages enumerates images in imagesDir that have a matching .txt
// label file in labelsDir, in lexicographic name order. The second
// return counts images skipped for lack of a label file.
func FindImages(imagesDir, labelsDir string) ([]domain.ImageEntry, int, error) {
	if _, err := os.Stat(labelsDir); err != nil {
		return nil, 0, fmt.Errorf("labels dir: %w", err)
	}
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return nil, 0, fmt.Errorf("images dir: %w", err)
	}

	var images []domain.ImageEntry
	skipped := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !imageExts[strings.ToLower(ext)] {
			continue
		}
		stem := strings.TrimSuffix(e.Name(), ext)
		labelPath := filepath.Join(labelsDir, stem+".txt")
		if _, err := os.Stat(labelPath); err != nil {
			skipped++
			continue
		}
		images = append(images, domain.ImageEntry{
			Path:      filepath.Join(imagesDir, e.Name()),
			LabelPath: labelPath,
		})
	}
	return images, skipped, nil
}
