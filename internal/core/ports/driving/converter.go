package driving

import (
	"context"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
)

// ConvertRequest describes one YOLO to COCO conversion.
type ConvertRequest struct {
	// ImagesDir holds the source images.
	ImagesDir string

	// LabelsDir holds one .txt label file per image.
	LabelsDir string

	// LabelList is the file naming the classes, one per line.
	LabelList string

	// OutputDir receives the train/ and val/ trees.
	OutputDir string

	// Split controls the deterministic train/val partitioning.
	Split domain.SplitSpec

	// MaxSide, when positive, scales images down so their longer side is
	// at most this many pixels.
	MaxSide int

	// Link hard-links images into the output instead of copying.
	Link bool
}

// SplitCount summarises one produced partition.
type SplitCount struct {
	// Images is the number of image entries written.
	Images int

	// Annotations is the number of object instances written.
	Annotations int
}

// ConvertResult reports what a conversion produced.
type ConvertResult struct {
	// Categories are the classes carried into both documents.
	Categories []domain.Category

	// Train and Val summarise the two partitions.
	Train SplitCount
	Val   SplitCount

	// SkippedNoLabel counts images left out for lack of a label file.
	SkippedNoLabel int

	// OutputDir is where the dataset was written.
	OutputDir string
}

// DatasetConverter turns a YOLO layout dataset into COCO train/val
// documents with copied images.
type DatasetConverter interface {
	// Convert runs the conversion. It fails fast on malformed labels,
	// unknown class indices, and unreadable inputs.
	Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error)
}
