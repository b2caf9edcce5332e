package driven

// PlaceOptions control how a dataset image is materialised.
type PlaceOptions struct {
	// MaxSide scales the image down so its longer side is at most this
	// many pixels. Zero keeps the original size. Images are never
	// upscaled.
	MaxSide int

	// Link hard-links instead of copying. Ignored when a resize happens,
	// since the resized file is a new one.
	Link bool
}

// ImagePlacer materialises dataset images into a split directory and
// reports their final pixel dimensions, which the annotation document
// must reference.
type ImagePlacer interface {
	// Place puts src inside destDir under its base name and returns the
	// placed image's dimensions.
	Place(src, destDir string, opts PlaceOptions) (width, height int, err error)
}
