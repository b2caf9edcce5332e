package services

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driven"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driving"
	"github.com/calvera-labs/vtrain-cli/internal/formats/coco"
	"github.com/calvera-labs/vtrain-cli/internal/formats/yolo"
	"github.com/calvera-labs/vtrain-cli/internal/logger"
)

// Ensure ConversionService implements the interface.
var _ driving.DatasetConverter = (*ConversionService)(nil)

// ConversionService turns a YOLO layout dataset into COCO train/val trees.
type ConversionService struct {
	placer   driven.ImagePlacer
	progress driven.ProgressReporter
}

// NewConversionService creates a new conversion service.
// A nil progress reporter disables progress display.
func NewConversionService(placer driven.ImagePlacer, progress driven.ProgressReporter) *ConversionService {
	if progress == nil {
		progress = driven.NopProgress{}
	}
	return &ConversionService{placer: placer, progress: progress}
}

// Convert runs the conversion.
func (s *ConversionService) Convert(ctx context.Context, req driving.ConvertRequest) (*driving.ConvertResult, error) {
	// 1. Validate the split parameters
	if err := req.Split.Validate(); err != nil {
		return nil, err
	}

	// 2. Read the class list
	classes, err := yolo.ReadLabelList(req.LabelList)
	if err != nil {
		return nil, fmt.Errorf("read label list: %w", err)
	}

	// 3. Enumerate images that have a label file
	images, skipped, err := yolo.FindImages(req.ImagesDir, req.LabelsDir)
	if err != nil {
		return nil, fmt.Errorf("find images: %w", err)
	}
	if skipped > 0 {
		logger.Info("skipping %d images with no label file", skipped)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: nothing convertible in %s", domain.ErrEmptyDataset, req.ImagesDir)
	}

	// 4. Shuffle and split. FindImages returns a sorted list, so the
	// shuffle sees the same order on every run and the seed alone
	// decides the partition.
	rng := rand.New(rand.NewSource(req.Split.Seed))
	rng.Shuffle(len(images), func(i, j int) {
		images[i], images[j] = images[j], images[i]
	})
	cut := req.Split.TrainCount(len(images))

	// 5. Convert each partition
	result := &driving.ConvertResult{
		Categories:     categoriesFrom(classes),
		SkippedNoLabel: skipped,
		OutputDir:      req.OutputDir,
	}
	parts := []struct {
		split  domain.Split
		images []domain.ImageEntry
	}{
		{domain.SplitTrain, images[:cut]},
		{domain.SplitVal, images[cut:]},
	}
	for _, part := range parts {
		count, err := s.convertSplit(ctx, req, classes, part.split, part.images)
		if err != nil {
			return nil, err
		}
		switch part.split {
		case domain.SplitTrain:
			result.Train = count
		case domain.SplitVal:
			result.Val = count
		}
	}

	return result, nil
}

// convertSplit materialises one partition: images placed under
// <out>/<split>/images, document written to
// <out>/<split>/annotations/instances_<split>.json.
func (s *ConversionService) convertSplit(
	ctx context.Context,
	req driving.ConvertRequest,
	classes []string,
	split domain.Split,
	images []domain.ImageEntry,
) (driving.SplitCount, error) {
	imagesDir := filepath.Join(req.OutputDir, string(split), "images")
	annotationsDir := filepath.Join(req.OutputDir, string(split), "annotations")
	for _, dir := range []string{imagesDir, annotationsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return driving.SplitCount{}, fmt.Errorf("create output dir: %w", err)
		}
	}

	doc := coco.NewDataset(classes)
	opts := driven.PlaceOptions{MaxSide: req.MaxSide, Link: req.Link}

	s.progress.Start(fmt.Sprintf("Converting %s set", split), len(images))
	defer s.progress.Done()

	for _, entry := range images {
		if err := ctx.Err(); err != nil {
			return driving.SplitCount{}, err
		}

		// Labels are parsed and checked before the image is placed, so a
		// bad label file never leaves a stray image in the output.
		anns, err := yolo.ReadLabelFile(entry.LabelPath)
		if err != nil {
			return driving.SplitCount{}, fmt.Errorf("parse labels: %w", err)
		}
		for _, ann := range anns {
			if ann.ClassID < 0 || ann.ClassID >= len(classes) {
				return driving.SplitCount{}, fmt.Errorf("%w: class %d in %s, label list has %d classes",
					domain.ErrUnknownCategory, ann.ClassID, entry.LabelPath, len(classes))
			}
		}

		width, height, err := s.placer.Place(entry.Path, imagesDir, opts)
		if err != nil {
			return driving.SplitCount{}, fmt.Errorf("place %s: %w", entry.Path, err)
		}

		imageID := doc.AddImage(filepath.Base(entry.Path), width, height)
		for _, ann := range anns {
			box := coco.BoxFromYOLO(ann.CX, ann.CY, ann.W, ann.H, width, height)
			doc.AddAnnotation(imageID, ann.ClassID+1, box)
		}

		s.progress.Advance(filepath.Base(entry.Path))
	}

	path := filepath.Join(annotationsDir, coco.InstancesFileName(split))
	if err := coco.Write(path, doc); err != nil {
		return driving.SplitCount{}, fmt.Errorf("write annotations: %w", err)
	}

	return driving.SplitCount{Images: len(doc.Images), Annotations: len(doc.Annotations)}, nil
}

func categoriesFrom(classes []string) []domain.Category {
	cats := make([]domain.Category, len(classes))
	for i, name := range classes {
		cats[i] = domain.Category{ID: i + 1, Name: name}
	}
	return cats
}
