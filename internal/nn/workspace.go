package nn

import (
	"fmt"

	"github.com/born-ml/parinfer/internal/tensor"
)

// Workspace is the scratch region of one execution unit.
//
// It holds two ping-pong buffers, each large enough for rows × the widest
// layer. Layer l writes buffer l%2 while reading the other, so at most one
// intermediate plus the one being produced are alive at any time.
type Workspace struct {
	rows    int
	buffers [2]*tensor.Matrix
}

// NewWorkspace allocates scratch for up to rows samples of a network with
// the given topology.
func NewWorkspace(topo Topology, rows int) (*Workspace, error) {
	if rows < 0 {
		return nil, fmt.Errorf("%w: workspace rows %d", tensor.ErrInvalidShape, rows)
	}
	ws := &Workspace{rows: rows}
	for i := range ws.buffers {
		buf, err := tensor.New(rows, topo.MaxWidth())
		if err != nil {
			return nil, err
		}
		ws.buffers[i] = buf
	}
	return ws, nil
}

// Rows returns the sample capacity.
func (ws *Workspace) Rows() int {
	return ws.rows
}

// Bytes returns the scratch size in bytes.
func (ws *Workspace) Bytes() int {
	n := 0
	for _, buf := range ws.buffers {
		if buf != nil {
			n += len(buf.Data()) * 8
		}
	}
	return n
}

// Release drops the scratch buffers. The workspace is unusable afterwards.
func (ws *Workspace) Release() {
	ws.buffers = [2]*tensor.Matrix{}
	ws.rows = 0
}

// buffer returns the rows×cols intermediate for layer l.
func (ws *Workspace) buffer(l, rows, cols int) (*tensor.Matrix, error) {
	buf := ws.buffers[l%2]
	if buf == nil {
		return nil, fmt.Errorf("nn: workspace used after Release")
	}
	return buf.Reshape(rows, cols)
}
