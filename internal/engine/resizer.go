package engine

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"sync"
)

// Resizer scales 8-bit grayscale images by a uniform factor.
type Resizer interface {
	// Name returns the registry name of the backend.
	Name() string

	// Resize returns src scaled by factor along both axes using method.
	// The output size is OutputSize(width, height, factor).
	Resize(src *image.Gray, factor float64, method Interpolation) (*image.Gray, error)
}

var (
	// ErrEmptyOutput is returned when scaling would produce a zero-sized image.
	ErrEmptyOutput = errors.New("engine: resize produces an empty image")

	// ErrInvalidFactor is returned for non-positive or non-finite factors.
	ErrInvalidFactor = errors.New("engine: invalid resize factor")
)

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Resizer{}
)

// Register makes a resizer constructor available under name.
// Registering the same name twice replaces the earlier constructor.
func Register(name string, ctor func() Resizer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = ctor
}

// New returns the resizer registered under name. An empty name selects
// DefaultName.
func New(name string) (Resizer, error) {
	if name == "" {
		name = DefaultName
	}

	registryMu.RLock()
	ctor, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown resizer %q (available: %v)", name, Available())
	}
	return ctor(), nil
}

// Available lists the registered resizer names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// targetSize validates factor and returns the output dimensions.
func targetSize(src *image.Gray, factor float64) (int, int, error) {
	if !(factor > 0) || factor > float64(1<<20) {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidFactor, factor)
	}
	b := src.Bounds()
	w, h := OutputSize(b.Dx(), b.Dy(), factor)
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("%w: %dx%d scaled by %v", ErrEmptyOutput, b.Dx(), b.Dy(), factor)
	}
	return w, h, nil
}

func init() {
	Register(NameNative, func() Resizer { return &NativeResizer{} })
	Register(NameNfnt, func() Resizer { return &NfntResizer{} })
}
