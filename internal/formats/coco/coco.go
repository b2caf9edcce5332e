// Package coco builds and writes COCO object detection documents
// (the instances_*.json layout consumed by detection trainers).
package coco

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
)

// Image is one entry in the images array.
type Image struct {
	ID       int    `json:"id"`
	FileName string `json:"file_name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// Annotation is one object instance. Bbox is absolute top-left x, y,
// width, height in pixels.
type Annotation struct {
	ID         int        `json:"id"`
	ImageID    int        `json:"image_id"`
	CategoryID int        `json:"category_id"`
	Bbox       [4]float64 `json:"bbox"`
	Area       float64    `json:"area"`
	Iscrowd    int        `json:"iscrowd"`
}

// Category maps a 1-based ID to a class name.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Dataset is a complete instances document.
type Dataset struct {
	Images      []Image      `json:"images"`
	Annotations []Annotation `json:"annotations"`
	Categories  []Category   `json:"categories"`
}

// NewDataset returns an empty document carrying the given classes as
// 1-based categories in list order. The slices are non-nil so an empty
// document still marshals arrays, which strict COCO loaders expect.
func NewDataset(classNames []string) *Dataset {
	cats := make([]Category, len(classNames))
	for i, name := range classNames {
		cats[i] = Category{ID: i + 1, Name: name}
	}
	return &Dataset{
		Images:      []Image{},
		Annotations: []Annotation{},
		Categories:  cats,
	}
}

// AddImage appends an image entry and returns its ID. IDs are sequential
// from 1 in insertion order.
func (d *Dataset) AddImage(fileName string, width, height int) int {
	id := len(d.Images) + 1
	d.Images = append(d.Images, Image{
		ID:       id,
		FileName: fileName,
		Width:    width,
		Height:   height,
	})
	return id
}

// AddAnnotation appends an object instance for imageID. Annotation IDs
// are sequential from 1, area derives from the box, iscrowd is always 0.
func (d *Dataset) AddAnnotation(imageID, categoryID int, bbox [4]float64) {
	d.Annotations = append(d.Annotations, Annotation{
		ID:         len(d.Annotations) + 1,
		ImageID:    imageID,
		CategoryID: categoryID,
		Bbox:       bbox,
		Area:       bbox[2] * bbox[3],
		Iscrowd:    0,
	})
}

// BoxFromYOLO converts a normalised centre/size box to an absolute
// top-left box, clamped so it stays inside the image bounds.
func BoxFromYOLO(cx, cy, w, h float64, imgWidth, imgHeight int) [4]float64 {
	fw, fh := float64(imgWidth), float64(imgHeight)

	wAbs := w * fw
	hAbs := h * fh
	x := cx*fw - wAbs/2
	y := cy*fh - hAbs/2

	x = max(0, min(x, fw-1))
	y = max(0, min(y, fh-1))
	wAbs = min(wAbs, fw-x)
	hAbs = min(hAbs, fh-y)

	return [4]float64{x, y, wAbs, hAbs}
}

// InstancesFileName returns the conventional document name for a split,
// e.g. instances_train.json.
func InstancesFileName(split domain.Split) string {
	return "instances_" + string(split) + ".json"
}

// Write marshals the document to path with two-space indentation.
func Write(path string, d *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
