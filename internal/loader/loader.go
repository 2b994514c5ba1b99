package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/born-ml/parinfer/internal/nn"
	"github.com/born-ml/parinfer/internal/tensor"
)

// Dataset is the sample matrix with its labels.
type Dataset struct {
	Samples     *tensor.Matrix
	Labels      tensor.Vector
	SampleStats Stats
	LabelStats  Stats
}

// Loader reads a Layout into tensors.
type Loader struct {
	Layout Layout
	Fill   FillPolicy
	Logger *log.Logger // Nil means log.Default().
}

// New creates a loader with DefaultFill.
func New(layout Layout) *Loader {
	return &Loader{Layout: layout, Fill: DefaultFill}
}

func (l *Loader) logger() *log.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return log.Default()
}

// readFile opens path and hands it to read, logging every recovered issue.
func (l *Loader) readFile(path string, read func(f *os.File) (Stats, error)) (Stats, error) {
	//nolint:gosec // G304: paths come from the configured data directory.
	f, err := os.Open(path)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	defer f.Close()

	stats, err := read(f)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", path, err)
	}
	l.report(path, stats)
	return stats, nil
}

func (l *Loader) report(path string, stats Stats) {
	if stats.Clean() {
		return
	}
	logger := l.logger()
	logger.Printf("warning file=%s rows=%d short_rows=%d missing=%d malformed=%d fill=%s",
		path, stats.Rows, stats.ShortRows, stats.Missing, stats.Malformed, l.Fill.Name)
	for _, issue := range stats.Issues {
		logger.Printf("warning file=%s %v", path, issue)
	}
}

// LoadDataset reads n samples of the given width and their labels.
func (l *Loader) LoadDataset(n, features int) (*Dataset, error) {
	ds := &Dataset{}
	var err error
	ds.SampleStats, err = l.readFile(l.Layout.DataPath(), func(f *os.File) (Stats, error) {
		var stats Stats
		ds.Samples, stats, err = ReadMatrix(f, n, features, l.Fill)
		return stats, err
	})
	if err != nil {
		return nil, err
	}
	ds.LabelStats, err = l.readFile(l.Layout.LabelsPath(), func(f *os.File) (Stats, error) {
		var stats Stats
		ds.Labels, stats, err = ReadVector(f, n, l.Fill)
		return stats, err
	})
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// LoadNetwork reads the parameters for topo. The SafeTensors bundle is used
// when present; otherwise the per-layer CSV files are read.
func (l *Loader) LoadNetwork(topo nn.Topology) (*nn.Network, error) {
	bundle := l.Layout.BundlePath()
	if _, err := os.Stat(bundle); err == nil {
		net, err := ReadBundle(bundle)
		if err != nil {
			return nil, err
		}
		if err := net.Conforms(topo); err != nil {
			return nil, fmt.Errorf("%s: %w", bundle, err)
		}
		return net, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	var layers [nn.LayerCount]nn.Dense
	for i := range layers {
		shape := topo.WeightShape(i)
		var err error
		_, err = l.readFile(l.Layout.WeightsPath(i), func(f *os.File) (Stats, error) {
			var stats Stats
			layers[i].Weight, stats, err = ReadMatrix(f, shape.Rows, shape.Cols, l.Fill)
			return stats, err
		})
		if err != nil {
			return nil, fmt.Errorf("layer %d weights: %w", i, err)
		}
		_, err = l.readFile(l.Layout.BiasesPath(i), func(f *os.File) (Stats, error) {
			var stats Stats
			layers[i].Bias, stats, err = ReadVector(f, shape.Cols, l.Fill)
			return stats, err
		})
		if err != nil {
			return nil, fmt.Errorf("layer %d biases: %w", i, err)
		}
	}

	net, err := nn.NewNetwork(layers)
	if err != nil {
		return nil, err
	}
	if err := net.Conforms(topo); err != nil {
		return nil, err
	}
	return net, nil
}
