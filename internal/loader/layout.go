package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Layout names the files of one data directory:
//
//	<Dir>/csvs/data.csv                      samples, one per line
//	<Dir>/csvs/digits.csv                    labels, first field per line
//	<Dir>/parameters/weights{L}_{Seed}.csv   layer L weights, [in, out]
//	<Dir>/parameters/biases{L}_{Seed}.csv    layer L biases, one per line
//	<Dir>/parameters/network_{Seed}.safetensors  optional bundle of all of the above
type Layout struct {
	Dir  string
	Seed int
}

// DataPath returns the samples file.
func (l Layout) DataPath() string {
	return filepath.Join(l.Dir, "csvs", "data.csv")
}

// LabelsPath returns the labels file.
func (l Layout) LabelsPath() string {
	return filepath.Join(l.Dir, "csvs", "digits.csv")
}

// WeightsPath returns the weight file of layer.
func (l Layout) WeightsPath(layer int) string {
	return filepath.Join(l.Dir, "parameters", fmt.Sprintf("weights%d_%d.csv", layer, l.Seed))
}

// BiasesPath returns the bias file of layer.
func (l Layout) BiasesPath(layer int) string {
	return filepath.Join(l.Dir, "parameters", fmt.Sprintf("biases%d_%d.csv", layer, l.Seed))
}

// BundlePath returns the SafeTensors parameter bundle.
func (l Layout) BundlePath() string {
	return filepath.Join(l.Dir, "parameters", fmt.Sprintf("network_%d.safetensors", l.Seed))
}

// DefaultSearchPaths are tried in order when no data directory is configured.
var DefaultSearchPaths = []string{".", ".."}

// Discover returns the first candidate directory that holds csvs/data.csv.
func Discover(candidates []string) (string, error) {
	for _, dir := range candidates {
		_, err := os.Stat(Layout{Dir: dir}.DataPath())
		if err == nil {
			return dir, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	return "", fmt.Errorf("%w: no csvs/data.csv under %q", ErrNotFound, candidates)
}
