package codec

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-ppi-resampler/internal/testutil"
)

// TestPPIConversion checks the pixels-per-metre mapping for common rates.
func TestPPIConversion(t *testing.T) {
	tests := []struct {
		ppi int
		ppm uint32
	}{
		{500, 19685},
		{600, 23622},
		{1000, 39370},
		{1200, 47244},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ppm, PPIToPPM(tt.ppi), "ppi %d", tt.ppi)
		assert.Equal(t, tt.ppi, PPMToPPI(tt.ppm), "ppm %d", tt.ppm)
	}
}

// TestInjectPNGMetadata round-trips pHYs and tEXt and keeps pixels intact.
func TestInjectPNGMetadata(t *testing.T) {
	img := testutil.Noise(12, 9, 4)
	data := encodePNG(t, img)

	meta := Metadata{
		PPI: 500,
		Text: []TextEntry{
			{Keyword: "Software", Value: "ppi-resample"},
			{Keyword: "Comment", Value: "1000 to 500 ppi"},
		},
	}
	out, err := InjectPNGMetadata(data, meta)
	require.NoError(t, err)

	got, err := ReadPNGMetadata(out)
	require.NoError(t, err)
	assert.Equal(t, meta, got)

	decoded, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, img.Pix, ToGray(decoded).Pix)
}

// TestInjectPNGMetadata_ReplacesPHYs keeps a single pHYs chunk.
func TestInjectPNGMetadata_ReplacesPHYs(t *testing.T) {
	data := encodePNG(t, testutil.Uniform(4, 4, 128))

	first, err := InjectPNGMetadata(data, Metadata{PPI: 1000})
	require.NoError(t, err)
	second, err := InjectPNGMetadata(first, Metadata{PPI: 500})
	require.NoError(t, err)

	assert.Equal(t, 1, bytes.Count(second, []byte("pHYs")))
	meta, err := ReadPNGMetadata(second)
	require.NoError(t, err)
	assert.Equal(t, 500, meta.PPI)
}

// TestInjectPNGMetadata_Empty leaves the stream unchanged.
func TestInjectPNGMetadata_Empty(t *testing.T) {
	data := encodePNG(t, testutil.Uniform(3, 3, 0))

	out, err := InjectPNGMetadata(data, Metadata{})
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

// TestInjectPNGMetadata_Errors covers malformed streams and keywords.
func TestInjectPNGMetadata_Errors(t *testing.T) {
	valid := encodePNG(t, testutil.Uniform(3, 3, 0))

	corrupt := bytes.Clone(valid)
	corrupt[len(pngSignature)+chunkHeaderLen] ^= 0xff // first IHDR data byte

	tests := []struct {
		name string
		data []byte
		meta Metadata
	}{
		{"bad_signature", []byte("GIF89a"), Metadata{PPI: 500}},
		{"truncated", valid[:len(pngSignature)+6], Metadata{PPI: 500}},
		{"crc_mismatch", corrupt, Metadata{PPI: 500}},
		{"empty_keyword", valid, Metadata{Text: []TextEntry{{Keyword: "", Value: "x"}}}},
		{"leading_space", valid, Metadata{Text: []TextEntry{{Keyword: " Title", Value: "x"}}}},
		{"double_space", valid, Metadata{Text: []TextEntry{{Keyword: "A  B", Value: "x"}}}},
		{"control_char", valid, Metadata{Text: []TextEntry{{Keyword: "A\nB", Value: "x"}}}},
		{"too_long", valid, Metadata{Text: []TextEntry{{Keyword: string(bytes.Repeat([]byte("k"), 80)), Value: "x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InjectPNGMetadata(tt.data, tt.meta)
			require.ErrorIs(t, err, ErrInvalidPNG)
		})
	}
}

// TestReadPNGMetadata_None returns zero metadata for plain files.
func TestReadPNGMetadata_None(t *testing.T) {
	meta, err := ReadPNGMetadata(encodePNG(t, testutil.Uniform(2, 2, 1)))
	require.NoError(t, err)
	assert.Zero(t, meta.PPI)
	assert.Empty(t, meta.Text)
}
