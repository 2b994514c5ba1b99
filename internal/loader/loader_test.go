package loader

import (
	"bufio"
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/parinfer/internal/nn"
)

func TestReadMatrix_Separators(t *testing.T) {
	in := "1 2 3\n4,5,6\n7\t8\t9\r\n10, 11 ,12\n"
	m, stats, err := ReadMatrix(strings.NewReader(in), 4, 3, DefaultFill)
	require.NoError(t, err)
	assert.True(t, stats.Clean())
	assert.Equal(t, 4, stats.Rows)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, m.Data())
}

func TestReadMatrix_FillsMissingAndMalformed(t *testing.T) {
	in := "1 2 3\n4 oops\n"
	for _, fill := range []FillPolicy{DefaultFill, LegacyFill} {
		t.Run(fill.Name, func(t *testing.T) {
			m, stats, err := ReadMatrix(strings.NewReader(in), 3, 3, fill)
			require.NoError(t, err)
			assert.Equal(t, []float64{1, 2, 3}, m.Row(0))
			assert.Equal(t, []float64{4, fill.Value, fill.Value}, m.Row(1))
			assert.Equal(t, []float64{fill.Value, fill.Value, fill.Value}, m.Row(2))

			assert.False(t, stats.Clean())
			assert.Equal(t, 2, stats.Rows)
			assert.Equal(t, 1, stats.Missing)
			assert.Equal(t, 1, stats.Malformed)
			assert.Equal(t, 1, stats.ShortRows)
			require.Len(t, stats.Issues, 3)
			assert.ErrorIs(t, stats.Issues[0], ErrMalformed)
			assert.ErrorIs(t, stats.Issues[1], ErrMissingValue)
			assert.ErrorIs(t, stats.Issues[2], ErrShortFile)
			assert.Equal(t, "row 1, col 2: missing value", stats.Issues[1].Error())
		})
	}
}

func TestReadMatrix_IgnoresExtra(t *testing.T) {
	m, stats, err := ReadMatrix(strings.NewReader("1 2 3\n4 5 6\n7 8 9\n"), 2, 2, DefaultFill)
	require.NoError(t, err)
	assert.True(t, stats.Clean())
	assert.Equal(t, []float64{1, 2, 4, 5}, m.Data())
}

func TestReadMatrix_IssuesBounded(t *testing.T) {
	m, stats, err := ReadMatrix(strings.NewReader("\n"), 1, 100, DefaultFill)
	require.NoError(t, err)
	assert.Equal(t, 100, stats.Missing)
	assert.Len(t, stats.Issues, MaxIssues)
	assert.Equal(t, []int{0}, ZeroRows(m))
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestReadMatrix_ReaderError(t *testing.T) {
	_, _, err := ReadMatrix(errReader{}, 1, 1, DefaultFill)
	require.ErrorIs(t, err, ErrIO)
}

func TestReadMatrix_LineLength(t *testing.T) {
	wide := strings.Repeat("255,", 4*784)
	m, stats, err := ReadMatrix(strings.NewReader(wide+"\n"), 1, 784, DefaultFill)
	require.NoError(t, err)
	assert.True(t, stats.Clean())
	assert.Equal(t, 255.0, m.At(0, 783))

	huge := strings.Repeat("1 ", maxLineBytes/2+1)
	_, _, err = ReadMatrix(strings.NewReader(huge+"\n"), 1, 784, DefaultFill)
	require.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}

func TestReadVector_FirstField(t *testing.T) {
	v, stats, err := ReadVector(strings.NewReader("5,0.1\n0\n4 9\n"), 4, LegacyFill)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ShortRows)
	assert.Equal(t, []float64{5, 0, 4, -1}, []float64(v))
}

func TestParseFillPolicy(t *testing.T) {
	p, err := ParseFillPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFill, p)
	p, err = ParseFillPolicy("legacy")
	require.NoError(t, err)
	assert.Equal(t, -1.0, p.Value)
	_, err = ParseFillPolicy("nan")
	require.Error(t, err)
}

func TestZeroRows(t *testing.T) {
	m, _, err := ReadMatrix(strings.NewReader("0 0\n1 0\n0,0\n"), 3, 2, DefaultFill)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, ZeroRows(m))
}

func TestLayout_Paths(t *testing.T) {
	l := Layout{Dir: "data", Seed: 3}
	assert.Equal(t, filepath.Join("data", "csvs", "data.csv"), l.DataPath())
	assert.Equal(t, filepath.Join("data", "csvs", "digits.csv"), l.LabelsPath())
	assert.Equal(t, filepath.Join("data", "parameters", "weights2_3.csv"), l.WeightsPath(2))
	assert.Equal(t, filepath.Join("data", "parameters", "biases0_3.csv"), l.BiasesPath(0))
	assert.Equal(t, filepath.Join("data", "parameters", "network_3.safetensors"), l.BundlePath())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDiscover(t *testing.T) {
	empty := t.TempDir()
	data := t.TempDir()
	writeFile(t, Layout{Dir: data}.DataPath(), "0\n")

	dir, err := Discover([]string{empty, data})
	require.NoError(t, err)
	assert.Equal(t, data, dir)

	_, err = Discover([]string{empty})
	require.ErrorIs(t, err, ErrNotFound)
}

// writeNetworkCSV writes net in the per-layer CSV layout.
func writeNetworkCSV(t *testing.T, layout Layout, net *nn.Network) {
	t.Helper()
	for l := 0; l < nn.LayerCount; l++ {
		layer := net.Layer(l)
		var w strings.Builder
		for i := 0; i < layer.Weight.Rows(); i++ {
			for j, v := range layer.Weight.Row(i) {
				if j > 0 {
					w.WriteString(",")
				}
				w.WriteString(formatFloat(v))
			}
			w.WriteString("\n")
		}
		writeFile(t, layout.WeightsPath(l), w.String())

		var b strings.Builder
		for _, v := range layer.Bias {
			b.WriteString(formatFloat(v) + "\n")
		}
		writeFile(t, layout.BiasesPath(l), b.String())
	}
}

var smallTopology = nn.Topology{6, 5, 4, 3, 2}

func quietLoader(layout Layout, logs io.Writer) *Loader {
	l := New(layout)
	l.Logger = log.New(logs, "", 0)
	return l
}

func TestLoadNetwork_CSV(t *testing.T) {
	want, err := nn.Random(smallTopology, 7, 1.0)
	require.NoError(t, err)
	layout := Layout{Dir: t.TempDir(), Seed: 3}
	writeNetworkCSV(t, layout, want)

	var logs bytes.Buffer
	got, err := quietLoader(layout, &logs).LoadNetwork(smallTopology)
	require.NoError(t, err)
	assert.Equal(t, want.Fingerprint(), got.Fingerprint())
	assert.Empty(t, logs.String())
}

func TestLoadNetwork_ShortFilesAreFilled(t *testing.T) {
	net, err := nn.Random(smallTopology, 7, 1.0)
	require.NoError(t, err)
	layout := Layout{Dir: t.TempDir(), Seed: 1}
	writeNetworkCSV(t, layout, net)

	var logs bytes.Buffer
	got, err := quietLoader(layout, &logs).LoadNetwork(nn.Topology{6, 5, 4, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Classes())
	assert.Equal(t, 0.0, got.Layer(3).Bias[2])
	assert.Contains(t, logs.String(), "missing=3")
	assert.Contains(t, logs.String(), "short_rows=1")
}

func TestLoadNetwork_MissingFile(t *testing.T) {
	_, err := quietLoader(Layout{Dir: t.TempDir()}, io.Discard).LoadNetwork(smallTopology)
	require.ErrorIs(t, err, ErrIO)
}

func TestLoadNetwork_PrefersBundle(t *testing.T) {
	want, err := nn.Random(smallTopology, 9, 1.0)
	require.NoError(t, err)
	layout := Layout{Dir: t.TempDir(), Seed: 4}

	var buf bytes.Buffer
	require.NoError(t, WriteBundle(&buf, want, nil))
	writeFile(t, layout.BundlePath(), buf.String())

	got, err := quietLoader(layout, io.Discard).LoadNetwork(smallTopology)
	require.NoError(t, err)
	assert.Equal(t, want.Fingerprint(), got.Fingerprint())

	_, err = quietLoader(layout, io.Discard).LoadNetwork(nn.DefaultTopology)
	require.ErrorIs(t, err, nn.ErrTopology)
}

func TestLoadDataset(t *testing.T) {
	layout := Layout{Dir: t.TempDir(), Seed: 3}
	writeFile(t, layout.DataPath(), "1 0 0\n0 0 0\n0 1\n")
	writeFile(t, layout.LabelsPath(), "0\n1\n2\n")

	var logs bytes.Buffer
	ds, err := quietLoader(layout, &logs).LoadDataset(3, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Samples.Rows())
	assert.Equal(t, []float64{0, 1, 0}, ds.Samples.Row(2))
	assert.Equal(t, []float64{0, 1, 2}, []float64(ds.Labels))
	assert.Equal(t, 1, ds.SampleStats.Missing)
	assert.True(t, ds.LabelStats.Clean())
	assert.Contains(t, logs.String(), "missing=1")
	assert.Equal(t, []int{1}, ZeroRows(ds.Samples))
}
