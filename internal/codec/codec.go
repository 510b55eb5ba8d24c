// Package codec reads source images as 8-bit grayscale and writes resampled
// images in the format implied by their file extension.
package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Format identifies an image container.
type Format string

// Supported formats.
const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatWebP Format = "webp"
)

const (
	jpegQuality   = 95
	grayPaletteSz = 256
)

var (
	// ErrUnknownFormat is returned for extensions or tokens with no codec.
	ErrUnknownFormat = errors.New("codec: unknown image format")

	// ErrNoEncoder is returned for formats that can be read but not written.
	ErrNoEncoder = errors.New("codec: format cannot be encoded")
)

var extensions = map[string]Format{
	"png":  FormatPNG,
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"gif":  FormatGIF,
	"bmp":  FormatBMP,
	"tif":  FormatTIFF,
	"tiff": FormatTIFF,
	"webp": FormatWebP,
}

// ParseFormat maps an extension or format token such as "png", ".JPG" or
// "tif" to a Format.
func ParseFormat(token string) (Format, error) {
	key := strings.ToLower(strings.TrimPrefix(token, "."))
	f, ok := extensions[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, token)
	}
	return f, nil
}

// FormatFromPath returns the format implied by the extension of path.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Decode reads an image and converts it to 8-bit grayscale.
func Decode(r io.Reader) (*image.Gray, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode: %w", err)
	}
	f, err := ParseFormat(name)
	if err != nil {
		f = Format(name)
	}
	return ToGray(img), f, nil
}

// DecodeFile opens and decodes the image at path.
func DecodeFile(path string) (*image.Gray, Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	return Decode(bufio.NewReader(file))
}

// ToGray returns img as a packed *image.Gray anchored at the origin.
// Color images are converted by luminance.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	if g, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) && g.Stride == b.Dx() {
		return g
	}

	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Encode writes img in format f. Metadata is embedded for PNG only and may
// be nil.
func Encode(w io.Writer, img *image.Gray, f Format, meta *Metadata) error {
	switch f {
	case FormatPNG:
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
		data := buf.Bytes()
		if meta != nil {
			var err error
			if data, err = InjectPNGMetadata(data, *meta); err != nil {
				return err
			}
		}
		_, err := w.Write(data)
		return err

	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})

	case FormatBMP:
		return bmp.Encode(w, img)

	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})

	case FormatGIF:
		return gif.Encode(w, grayPaletted(img), &gif.Options{NumColors: grayPaletteSz})

	case FormatWebP:
		return fmt.Errorf("%w: %s", ErrNoEncoder, f)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// EncodeFile writes img to path in the format implied by its extension.
// The file is written to a temporary sibling and renamed into place.
func EncodeFile(path string, img *image.Gray, meta *Metadata) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = Encode(w, img, f, meta); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// grayPaletted maps each gray level to the palette entry of the same index.
func grayPaletted(img *image.Gray) *image.Paletted {
	pal := make(color.Palette, grayPaletteSz)
	for i := range pal {
		pal[i] = color.Gray{Y: uint8(i)}
	}

	b := img.Bounds()
	out := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal)
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):][:b.Dx()]
		copy(out.Pix[y*out.Stride:], src)
	}
	return out
}
