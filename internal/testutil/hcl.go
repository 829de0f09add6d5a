package testutil

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/pathgraph/internal/dataset"
	"github.com/specialistvlad/pathgraph/internal/store"
)

// Binary file names used by RunHCLPipelineTest.
const (
	InputPaths      = "in/paths.dat"
	InputLocations  = "in/locations.dat"
	OutputPaths     = "out/paths.dat"
	OutputLocations = "out/locations.dat"
)

// RunHCLPipelineTest writes input as binary files, points a pipeline at them
// and at binary output files, appends extraHCL (which may override any of
// that) and runs it.
func RunHCLPipelineTest(t *testing.T, input dataset.Dataset, extraHCL string) *HarnessResult {
	t.Helper()

	files := map[string]string{
		"config/10-io.hcl": `
input {
  format    = "binary"
  paths     = "{{dir}}/` + InputPaths + `"
  locations = "{{dir}}/` + InputLocations + `"
}

output {
  format    = "binary"
  paths     = "{{dir}}/` + OutputPaths + `"
  locations = "{{dir}}/` + OutputLocations + `"
}
`,
		"config/20-test.hcl": extraHCL,
	}
	return RunPipeline(t, files, func(dir string) {
		WriteDataset(t, store.FormatBinary,
			filepath.Join(dir, InputPaths), filepath.Join(dir, InputLocations), input)
	})
}

// Output reads the binary output written by RunHCLPipelineTest.
func (r *HarnessResult) Output(t *testing.T) dataset.Dataset {
	t.Helper()
	return ReadDataset(t, store.FormatBinary, r.Path(OutputPaths), r.Path(OutputLocations))
}
