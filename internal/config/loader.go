package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
	"github.com/specialistvlad/pathgraph/internal/ctxlog"
	"github.com/specialistvlad/pathgraph/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// DefaultEnvFile is read when no other dotenv file is configured.
const DefaultEnvFile = ".env"

// Loader reads pipeline configuration files.
type Loader struct {
	envFile string
	environ func() []string
}

// NewLoader returns a Loader that applies envFile to the environment before
// evaluating expressions. An empty envFile means DefaultEnvFile.
func NewLoader(envFile string) *Loader {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	return &Loader{envFile: envFile, environ: os.Environ}
}

// Load reads every .hcl file found under paths, in order, on top of Default,
// and validates the result. With no paths it returns the validated defaults.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Pipeline, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading pipeline configuration.", "path_count", len(paths))

	if err := godotenv.Load(l.envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", l.envFile, err)
		}
		logger.Debug("No env file found.", "file", l.envFile)
	} else {
		logger.Debug("Env file applied.", "file", l.envFile)
	}

	files, missing, err := fsutil.ExpandPaths(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	for _, m := range missing {
		logger.Warn("Configuration path does not exist; skipping.", "path", m)
	}

	p := Default()
	evalCtx := l.evalContext()
	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		p.apply(&root)
		logger.Debug("Configuration file applied.", "file", file)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Pipeline configuration loaded.", "files", len(files),
		"input_format", p.Input.Format, "output_format", p.Output.Format, "mode", p.Optimize.Mode)
	return p, nil
}

// evalContext exposes the environment as the env object.
func (l *Loader) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{"env": env}}
}
