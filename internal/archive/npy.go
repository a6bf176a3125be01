package archive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var npyMagic = []byte("\x93NUMPY")

// ErrUnsupportedArray indicates an .npy payload this package cannot decode.
var ErrUnsupportedArray = errors.New("unsupported npy array")

var (
	descrPattern   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	fortranPattern = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	shapePattern   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

// array is a decoded n-dimensional float64 array in C order.
type array struct {
	shape []int
	data  []float64
}

func writeNPY(w io.Writer, a array) error {
	dims := make([]string, len(a.shape))
	for i, d := range a.shape {
		dims[i] = strconv.Itoa(d)
	}
	shape := strings.Join(dims, ", ")
	if len(dims) == 1 {
		shape += ","
	}
	header := fmt.Sprintf("{'descr': '<f8', 'fortran_order': False, 'shape': (%s), }", shape)
	// magic(6) + version(2) + length(2) + header + '\n' aligned to 64 bytes
	pad := 64 - (10+len(header)+1)%64
	if pad == 64 {
		pad = 0
	}
	header += strings.Repeat(" ", pad) + "\n"

	var buf bytes.Buffer
	buf.Grow(10 + len(header) + 8*len(a.data))
	buf.Write(npyMagic)
	buf.Write([]byte{1, 0})
	var hl [2]byte
	binary.LittleEndian.PutUint16(hl[:], uint16(len(header)))
	buf.Write(hl[:])
	buf.WriteString(header)
	var word [8]byte
	for _, v := range a.data {
		binary.LittleEndian.PutUint64(word[:], math.Float64bits(v))
		buf.Write(word[:])
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// readNPY decodes an .npy stream. size is the stream's total length; a header
// declaring more data than that is rejected before anything is allocated.
func readNPY(r io.Reader, size uint64) (array, error) {
	prefix := make([]byte, 8)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return array{}, fmt.Errorf("read npy preamble: %w", err)
	}
	if !bytes.Equal(prefix[:6], npyMagic) {
		return array{}, fmt.Errorf("%w: bad magic", ErrUnsupportedArray)
	}

	var headerLen int
	switch major := prefix[6]; major {
	case 1:
		var hl [2]byte
		if _, err := io.ReadFull(r, hl[:]); err != nil {
			return array{}, fmt.Errorf("read npy header length: %w", err)
		}
		headerLen = int(binary.LittleEndian.Uint16(hl[:]))
	case 2, 3:
		var hl [4]byte
		if _, err := io.ReadFull(r, hl[:]); err != nil {
			return array{}, fmt.Errorf("read npy header length: %w", err)
		}
		headerLen = int(binary.LittleEndian.Uint32(hl[:]))
	default:
		return array{}, fmt.Errorf("%w: format version %d", ErrUnsupportedArray, major)
	}

	header := make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return array{}, fmt.Errorf("read npy header: %w", err)
	}
	descr, shape, err := parseHeader(string(header))
	if err != nil {
		return array{}, err
	}

	count, err := elementCount(shape)
	if err != nil {
		return array{}, err
	}
	itemSize := uint64(8)
	if descr[1:] == "f4" {
		itemSize = 4
	}
	if uint64(count) > size/itemSize {
		return array{}, fmt.Errorf("%w: shape %v needs more data than the %d byte entry holds", ErrUnsupportedArray, shape, size)
	}
	var order binary.ByteOrder = binary.LittleEndian
	if strings.HasPrefix(descr, ">") {
		order = binary.BigEndian
	}

	data := make([]float64, count)
	switch descr[1:] {
	case "f8":
		raw := make([]byte, 8*count)
		if _, err := io.ReadFull(r, raw); err != nil {
			return array{}, fmt.Errorf("read npy data: %w", err)
		}
		for i := range data {
			data[i] = math.Float64frombits(order.Uint64(raw[i*8:]))
		}
	case "f4":
		raw := make([]byte, 4*count)
		if _, err := io.ReadFull(r, raw); err != nil {
			return array{}, fmt.Errorf("read npy data: %w", err)
		}
		for i := range data {
			data[i] = float64(math.Float32frombits(order.Uint32(raw[i*4:])))
		}
	}
	return array{shape: shape, data: data}, nil
}

func elementCount(shape []int) (int, error) {
	count := 1
	for _, d := range shape {
		if d != 0 && count > math.MaxInt/d {
			return 0, fmt.Errorf("%w: shape %v overflows", ErrUnsupportedArray, shape)
		}
		count *= d
	}
	return count, nil
}

func parseHeader(header string) (string, []int, error) {
	m := descrPattern.FindStringSubmatch(header)
	if m == nil {
		return "", nil, fmt.Errorf("%w: header has no descr", ErrUnsupportedArray)
	}
	descr := m[1]
	switch descr {
	case "<f8", ">f8", "<f4", ">f4":
	default:
		return "", nil, fmt.Errorf("%w: dtype %s", ErrUnsupportedArray, descr)
	}

	if m := fortranPattern.FindStringSubmatch(header); m == nil || m[1] != "False" {
		return "", nil, fmt.Errorf("%w: only C-order arrays are supported", ErrUnsupportedArray)
	}

	m = shapePattern.FindStringSubmatch(header)
	if m == nil {
		return "", nil, fmt.Errorf("%w: header has no shape", ErrUnsupportedArray)
	}
	var shape []int
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 {
			return "", nil, fmt.Errorf("%w: shape %q", ErrUnsupportedArray, m[1])
		}
		shape = append(shape, d)
	}
	return descr, shape, nil
}
