package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"
)

// Metadata is embedded into PNG output.
type Metadata struct {
	// PPI is written as a pHYs chunk in pixels per metre. Zero omits it.
	PPI int

	// Text entries become tEXt chunks in order.
	Text []TextEntry
}

// TextEntry is one PNG tEXt keyword/value pair.
type TextEntry struct {
	Keyword string
	Value   string
}

// ErrInvalidPNG is returned when chunk injection meets malformed data.
var ErrInvalidPNG = errors.New("codec: invalid png stream")

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const (
	chunkHeaderLen = 8 // length + type
	chunkCRCLen    = 4
	physDataLen    = 9
	physUnitMetre  = 1
	metresPerInch  = 0.0254
	maxKeywordLen  = 79
)

// PPIToPPM converts pixels per inch to whole pixels per metre.
func PPIToPPM(ppi int) uint32 {
	return uint32(math.Round(float64(ppi) / metresPerInch))
}

// PPMToPPI converts pixels per metre back to the nearest pixels per inch.
func PPMToPPI(ppm uint32) int {
	return int(math.Round(float64(ppm) * metresPerInch))
}

// InjectPNGMetadata returns a copy of the PNG stream data with a pHYs chunk
// and tEXt chunks inserted after IHDR. Existing pHYs chunks are replaced.
func InjectPNGMetadata(data []byte, meta Metadata) ([]byte, error) {
	chunks, err := splitChunks(data)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 || chunks[0].typ != "IHDR" {
		return nil, fmt.Errorf("%w: IHDR is not the first chunk", ErrInvalidPNG)
	}

	var extra bytes.Buffer
	if meta.PPI > 0 {
		phys := make([]byte, physDataLen)
		ppm := PPIToPPM(meta.PPI)
		binary.BigEndian.PutUint32(phys[0:4], ppm)
		binary.BigEndian.PutUint32(phys[4:8], ppm)
		phys[8] = physUnitMetre
		writeChunk(&extra, "pHYs", phys)
	}
	for _, e := range meta.Text {
		if err := validKeyword(e.Keyword); err != nil {
			return nil, err
		}
		payload := append([]byte(e.Keyword), 0)
		payload = append(payload, e.Value...)
		writeChunk(&extra, "tEXt", payload)
	}

	out := bytes.NewBuffer(make([]byte, 0, len(data)+extra.Len()))
	out.Write(pngSignature)
	for i, c := range chunks {
		if c.typ == "pHYs" && meta.PPI > 0 {
			continue
		}
		out.Write(c.raw)
		if i == 0 {
			out.Write(extra.Bytes())
		}
	}
	return out.Bytes(), nil
}

// ReadPNGMetadata extracts pHYs and tEXt chunks from a PNG stream.
func ReadPNGMetadata(data []byte) (Metadata, error) {
	chunks, err := splitChunks(data)
	if err != nil {
		return Metadata{}, err
	}

	var meta Metadata
	for _, c := range chunks {
		switch c.typ {
		case "pHYs":
			if len(c.data) != physDataLen {
				return Metadata{}, fmt.Errorf("%w: pHYs length %d", ErrInvalidPNG, len(c.data))
			}
			if c.data[8] == physUnitMetre {
				meta.PPI = PPMToPPI(binary.BigEndian.Uint32(c.data[0:4]))
			}
		case "tEXt":
			k, v, ok := bytes.Cut(c.data, []byte{0})
			if !ok {
				return Metadata{}, fmt.Errorf("%w: tEXt without separator", ErrInvalidPNG)
			}
			meta.Text = append(meta.Text, TextEntry{Keyword: string(k), Value: string(v)})
		}
	}
	return meta, nil
}

type chunk struct {
	typ  string
	data []byte
	raw  []byte // length, type, data and CRC
}

func splitChunks(data []byte) ([]chunk, error) {
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, fmt.Errorf("%w: bad signature", ErrInvalidPNG)
	}

	var chunks []chunk
	rest := data[len(pngSignature):]
	for len(rest) > 0 {
		if len(rest) < chunkHeaderLen+chunkCRCLen {
			return nil, fmt.Errorf("%w: truncated chunk", ErrInvalidPNG)
		}
		n := binary.BigEndian.Uint32(rest[0:4])
		total := uint64(chunkHeaderLen) + uint64(n) + chunkCRCLen
		if uint64(len(rest)) < total {
			return nil, fmt.Errorf("%w: chunk length %d exceeds stream", ErrInvalidPNG, n)
		}
		raw := rest[:total]
		typ := string(raw[4:8])
		body := raw[chunkHeaderLen : chunkHeaderLen+int(n)]

		want := binary.BigEndian.Uint32(raw[chunkHeaderLen+int(n):])
		if got := crc32.ChecksumIEEE(raw[4 : chunkHeaderLen+int(n)]); got != want {
			return nil, fmt.Errorf("%w: %s crc mismatch", ErrInvalidPNG, typ)
		}

		chunks = append(chunks, chunk{typ: typ, data: body, raw: raw})
		rest = rest[total:]
		if typ == "IEND" {
			break
		}
	}
	return chunks, nil
}

func writeChunk(buf *bytes.Buffer, typ string, data []byte) {
	var hdr [chunkHeaderLen]byte
	binary.BigEndian.PutUint32(hdr[0:4], uint32(len(data)))
	copy(hdr[4:], typ)
	buf.Write(hdr[:])
	buf.Write(data)

	crc := crc32.NewIEEE()
	crc.Write(hdr[4:])
	crc.Write(data)
	var sum [chunkCRCLen]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	buf.Write(sum[:])
}

// validKeyword checks the tEXt keyword rules: 1 to 79 printable Latin-1
// characters without leading, trailing or doubled spaces.
func validKeyword(k string) error {
	if len(k) == 0 || len(k) > maxKeywordLen {
		return fmt.Errorf("%w: keyword length %d", ErrInvalidPNG, len(k))
	}
	if k[0] == ' ' || k[len(k)-1] == ' ' || bytes.Contains([]byte(k), []byte("  ")) {
		return fmt.Errorf("%w: keyword %q has stray spaces", ErrInvalidPNG, k)
	}
	for i := 0; i < len(k); i++ {
		c := k[i]
		if c < 32 || (c > 126 && c < 161) {
			return fmt.Errorf("%w: keyword %q has non-printable characters", ErrInvalidPNG, k)
		}
	}
	return nil
}
