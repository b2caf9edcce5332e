package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calvera-labs/vtrain-cli/internal/core/domain"
	"github.com/calvera-labs/vtrain-cli/internal/core/ports/driving"
)

var (
	convertImagesDir  string
	convertLabelsDir  string
	convertLabelList  string
	convertOutputDir  string
	convertTrainRatio float64
	convertSeed       int64
	convertMaxSide    int
	convertLink       bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a YOLO dataset to COCO train/val documents",
	Long: `Converts a YOLO layout dataset (one .txt label file per image) into
COCO detection format, deterministically split into train and val sets.

The output directory receives:

  train/images/
  train/annotations/instances_train.json
  val/images/
  val/annotations/instances_val.json

The split is a seeded shuffle of the sorted image list, so the same inputs,
seed, and ratio always produce the same membership.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertImagesDir, "images-dir", "", "directory with source images (required)")
	convertCmd.Flags().StringVar(&convertLabelsDir, "labels-dir", "", "directory with YOLO .txt labels (required)")
	convertCmd.Flags().StringVar(&convertLabelList, "label-list", "", "file naming the classes, one per line (required)")
	convertCmd.Flags().StringVar(&convertOutputDir, "output-dir", "", "directory receiving the COCO dataset (required)")
	convertCmd.Flags().Float64Var(&convertTrainRatio, "train-ratio", 0.9, "fraction of images in the train split")
	convertCmd.Flags().Int64Var(&convertSeed, "seed", 42, "shuffle seed for the split")
	convertCmd.Flags().IntVar(&convertMaxSide, "max-side", 0, "scale images down to at most this longer side (0 keeps originals)")
	convertCmd.Flags().BoolVar(&convertLink, "link", false, "hard-link images into the output instead of copying")

	_ = convertCmd.MarkFlagRequired("images-dir")
	_ = convertCmd.MarkFlagRequired("labels-dir")
	_ = convertCmd.MarkFlagRequired("label-list")
	_ = convertCmd.MarkFlagRequired("output-dir")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, _ []string) error {
	if converterService == nil {
		return errors.New("converter service not configured")
	}

	req := driving.ConvertRequest{
		ImagesDir: convertImagesDir,
		LabelsDir: convertLabelsDir,
		LabelList: convertLabelList,
		OutputDir: convertOutputDir,
		Split: domain.SplitSpec{
			TrainRatio: convertTrainRatio,
			Seed:       convertSeed,
		},
		MaxSide: convertMaxSide,
		Link:    convertLink,
	}

	result, err := converterService.Convert(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("convert failed: %w", err)
	}

	cmd.Println("Conversion complete!")
	cmd.Printf("Categories: %d\n", len(result.Categories))
	cmd.Printf("Train: %d images, %d annotations\n", result.Train.Images, result.Train.Annotations)
	cmd.Printf("Val: %d images, %d annotations\n", result.Val.Images, result.Val.Annotations)
	if result.SkippedNoLabel > 0 {
		cmd.Printf("Skipped %d images without label files\n", result.SkippedNoLabel)
	}
	cmd.Printf("Output: %s\n", result.OutputDir)

	return nil
}
