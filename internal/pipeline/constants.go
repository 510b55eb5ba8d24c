package pipeline

// Padding constants
const (
	// padValue fills the added bottom and right margins (white).
	padValue = 255
)

// Pipeline construction constants
const (
	defaultStageCapacity = 8 // Initial capacity for stages slice
)

// Stage names as reported to observers and in errors.
const (
	StagePad       = "pad"
	StageMask      = "mask"
	StageForward   = "forward-dft"
	StageNormalize = "normalize"
	StageFilter    = "apply-mask"
	StageInverse   = "inverse-dft"
	StageCrop      = "crop"
	StageResize    = "resize"
)
