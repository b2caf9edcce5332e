package domain

import "fmt"

// Split names one of the two dataset partitions produced by a conversion.
type Split string

const (
	// SplitTrain is the training partition.
	SplitTrain Split = "train"

	// SplitVal is the validation partition.
	SplitVal Split = "val"
)

// Category is one object class. IDs are 1-based and follow the order of
// the label list file, so the numbering is stable across conversions of
// the same list.
type Category struct {
	// ID is the 1-based category identifier.
	ID int

	// Name is the class name as it appears in the label list.
	Name string
}

// ImageEntry pairs a source image with its YOLO label file.
type ImageEntry struct {
	// Path is the path to the image file.
	Path string

	// LabelPath is the path to the matching label file.
	LabelPath string
}

// SplitSpec controls the deterministic train/val partitioning.
type SplitSpec struct {
	// TrainRatio is the fraction of images assigned to the training
	// partition. Must lie in the open interval (0, 1) so neither
	// partition can be empty by construction.
	TrainRatio float64

	// Seed initialises the shuffle. The same seed over the same file set
	// always produces the same partition.
	Seed int64
}

// Validate reports whether the ratio describes a usable two-way split.
func (s SplitSpec) Validate() error {
	if s.TrainRatio <= 0 || s.TrainRatio >= 1 {
		return fmt.Errorf("%w: train ratio %v must be in (0, 1)", ErrInvalidInput, s.TrainRatio)
	}
	return nil
}

// TrainCount returns the number of items assigned to the training
// partition out of n. The remainder goes to validation.
func (s SplitSpec) TrainCount(n int) int {
	return int(float64(n) * s.TrainRatio)
}
