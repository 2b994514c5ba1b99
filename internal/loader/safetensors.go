package loader

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/born-ml/parinfer/internal/nn"
	"github.com/born-ml/parinfer/internal/tensor"
)

// SafeTensors format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: raw bytes]
//
// A parameter bundle stores weights.{L} as [in, out] and biases.{L} as [out]
// for every layer L.

// SafeTensorsDType represents supported SafeTensors data types.
type SafeTensorsDType string

// Supported SafeTensors dtypes.
const (
	SafeTensorsF32 SafeTensorsDType = "F32"
	SafeTensorsF64 SafeTensorsDType = "F64"
)

const maxHeaderSize = 100 * 1024 * 1024

// SafeTensorInfo describes a tensor in SafeTensors format.
type SafeTensorInfo struct {
	DType       SafeTensorsDType `json:"dtype"`
	Shape       []int            `json:"shape"`
	DataOffsets [2]int64         `json:"data_offsets"` // [start, end]
}

// elementSize returns the byte width of one element.
func (i SafeTensorInfo) elementSize() (int, error) {
	switch i.DType {
	case SafeTensorsF32:
		return 4, nil
	case SafeTensorsF64:
		return 8, nil
	default:
		return 0, fmt.Errorf("%w: unsupported dtype %s", ErrInvalidBundle, i.DType)
	}
}

// SafeTensorsHeader is the JSON header in SafeTensors format.
type SafeTensorsHeader struct {
	Metadata map[string]string
	Tensors  map[string]SafeTensorInfo
}

// UnmarshalJSON implements custom JSON unmarshaling for SafeTensorsHeader.
func (h *SafeTensorsHeader) UnmarshalJSON(data []byte) error {
	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(data, &rawMap); err != nil {
		return err
	}

	if metadataRaw, ok := rawMap["__metadata__"]; ok {
		if err := json.Unmarshal(metadataRaw, &h.Metadata); err != nil {
			return fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	h.Tensors = make(map[string]SafeTensorInfo, len(rawMap))
	for key, value := range rawMap {
		if key == "__metadata__" {
			continue
		}
		var info SafeTensorInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return fmt.Errorf("failed to unmarshal tensor %s: %w", key, err)
		}
		h.Tensors[key] = info
	}
	return nil
}

// MarshalJSON writes tensors and metadata as sibling keys.
func (h SafeTensorsHeader) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(h.Tensors)+1)
	if len(h.Metadata) > 0 {
		out["__metadata__"] = h.Metadata
	}
	for name, info := range h.Tensors {
		out[name] = info
	}
	return json.Marshal(out)
}

// SafeTensorsReader reads SafeTensors format files.
type SafeTensorsReader struct {
	file       *os.File
	header     SafeTensorsHeader
	dataOffset int64
}

// NewSafeTensorsReader opens path and parses its header.
func NewSafeTensorsReader(path string) (*SafeTensorsReader, error) {
	//nolint:gosec // G304: paths come from the configured data directory.
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	var headerSize uint64
	if err := binary.Read(file, binary.LittleEndian, &headerSize); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: header size: %w", ErrInvalidBundle, err)
	}
	if headerSize > maxHeaderSize {
		_ = file.Close()
		return nil, fmt.Errorf("%w: header size %d too large", ErrInvalidBundle, headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerBytes); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: header: %w", ErrInvalidBundle, err)
	}

	var header SafeTensorsHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: header JSON: %w", ErrInvalidBundle, err)
	}

	return &SafeTensorsReader{
		file:       file,
		header:     header,
		dataOffset: int64(8 + headerSize), //nolint:gosec // G115: bounded by maxHeaderSize.
	}, nil
}

// Close closes the underlying file.
func (r *SafeTensorsReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Metadata returns the metadata map from the header.
func (r *SafeTensorsReader) Metadata() map[string]string {
	return r.header.Metadata
}

// TensorInfo returns information about a specific tensor.
func (r *SafeTensorsReader) TensorInfo(name string) (*SafeTensorInfo, error) {
	info, ok := r.header.Tensors[name]
	if !ok {
		return nil, fmt.Errorf("%w: tensor %s not found", ErrInvalidBundle, name)
	}
	return &info, nil
}

// ReadFloats decodes tensor name as float64 values and returns its shape.
func (r *SafeTensorsReader) ReadFloats(name string) ([]float64, []int, error) {
	info, err := r.TensorInfo(name)
	if err != nil {
		return nil, nil, err
	}
	size, err := info.elementSize()
	if err != nil {
		return nil, nil, err
	}

	count := 1
	for _, d := range info.Shape {
		if d < 0 || (d > 0 && count > math.MaxInt/size/d) {
			return nil, nil, fmt.Errorf("%w: tensor %s has shape %v", ErrInvalidBundle, name, info.Shape)
		}
		count *= d
	}
	start, end := info.DataOffsets[0], info.DataOffsets[1]
	if start < 0 || end-start != int64(count*size) {
		return nil, nil, fmt.Errorf("%w: tensor %s offsets [%d, %d] do not match shape %v",
			ErrInvalidBundle, name, start, end, info.Shape)
	}

	raw := make([]byte, end-start)
	if _, err := r.file.ReadAt(raw, r.dataOffset+start); err != nil {
		return nil, nil, fmt.Errorf("%w: tensor %s: %w", ErrIO, name, err)
	}

	out := make([]float64, count)
	for i := range out {
		switch info.DType {
		case SafeTensorsF32:
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:])))
		case SafeTensorsF64:
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
		}
	}
	return out, info.Shape, nil
}

func weightsName(layer int) string { return fmt.Sprintf("weights.%d", layer) }

func biasesName(layer int) string { return fmt.Sprintf("biases.%d", layer) }

// ReadBundle loads a network from a SafeTensors parameter bundle.
func ReadBundle(path string) (*nn.Network, error) {
	r, err := NewSafeTensorsReader(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer r.Close()

	var layers [nn.LayerCount]nn.Dense
	for l := range layers {
		w, shape, err := r.ReadFloats(weightsName(l))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if len(shape) != 2 {
			return nil, fmt.Errorf("%s: %w: %s has shape %v, want 2-D",
				path, ErrInvalidBundle, weightsName(l), shape)
		}
		layers[l].Weight, err = tensor.FromSlice(shape[0], shape[1], w)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		b, shape, err := r.ReadFloats(biasesName(l))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if len(shape) != 1 {
			return nil, fmt.Errorf("%s: %w: %s has shape %v, want 1-D",
				path, ErrInvalidBundle, biasesName(l), shape)
		}
		layers[l].Bias = b
	}

	net, err := nn.NewNetwork(layers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return net, nil
}

// WriteBundle stores net as F64 tensors in SafeTensors format.
func WriteBundle(dst io.Writer, net *nn.Network, metadata map[string]string) error {
	w := bufio.NewWriter(dst)
	header := SafeTensorsHeader{
		Metadata: metadata,
		Tensors:  make(map[string]SafeTensorInfo, 2*nn.LayerCount),
	}
	var payload [][]float64
	var offset int64
	add := func(name string, shape []int, values []float64) {
		end := offset + int64(len(values))*8
		header.Tensors[name] = SafeTensorInfo{DType: SafeTensorsF64, Shape: shape, DataOffsets: [2]int64{offset, end}}
		payload = append(payload, values)
		offset = end
	}
	for l := 0; l < nn.LayerCount; l++ {
		layer := net.Layer(l)
		add(weightsName(l), []int{layer.InFeatures(), layer.OutFeatures()}, layer.Weight.Data())
		add(biasesName(l), []int{len(layer.Bias)}, layer.Bias)
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	var buf [8]byte
	for _, values := range payload {
		for _, v := range values {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			if _, err := w.Write(buf[:]); err != nil {
				return fmt.Errorf("%w: %w", ErrIO, err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}
