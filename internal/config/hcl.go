package config

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

// hclConfig is the HCL layout of Config. Every block and attribute is
// optional; missing values keep their defaults.
type hclConfig struct {
	Build *struct {
		Source    string `hcl:"source,optional"`
		Target    string `hcl:"target,optional"`
		Catalogue string `hcl:"catalogue,optional"`
	} `hcl:"build,block"`
	Dump *struct {
		Source string `hcl:"source,optional"`
		Output string `hcl:"output,optional"`
	} `hcl:"dump,block"`
	Log *struct {
		Level string `hcl:"level,optional"`
	} `hcl:"log,block"`
}

// parseHCL decodes an HCL configuration. Environment variables are
// available to expressions as env.NAME.
func parseHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("failed to parse config file: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envObject(),
		},
	}

	var raw hclConfig
	diags = gohcl.DecodeBody(file.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("failed to decode config file: %s", diags.Error())
	}

	decoded := &Config{}
	if raw.Build != nil {
		decoded.Build = BuildConfig{Source: raw.Build.Source, Target: raw.Build.Target, Catalogue: raw.Build.Catalogue}
	}
	if raw.Dump != nil {
		decoded.Dump = DumpConfig{Source: raw.Dump.Source, Output: raw.Dump.Output}
	}
	if raw.Log != nil {
		decoded.Log = LogConfig{Level: raw.Log.Level}
	}

	cfg := DefaultConfig()
	cfg.overlay(decoded)
	return cfg, nil
}

func envObject() cty.Value {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(vars)
}

// encodeHCL renders cfg in the layout parseHCL reads.
func encodeHCL(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	build := root.AppendNewBlock("build", nil).Body()
	build.SetAttributeValue("source", cty.StringVal(cfg.Build.Source))
	build.SetAttributeValue("target", cty.StringVal(cfg.Build.Target))
	build.SetAttributeValue("catalogue", cty.StringVal(cfg.Build.Catalogue))
	root.AppendNewline()

	dump := root.AppendNewBlock("dump", nil).Body()
	dump.SetAttributeValue("source", cty.StringVal(cfg.Dump.Source))
	dump.SetAttributeValue("output", cty.StringVal(cfg.Dump.Output))
	root.AppendNewline()

	log := root.AppendNewBlock("log", nil).Body()
	log.SetAttributeValue("level", cty.StringVal(cfg.Log.Level))

	return f.Bytes()
}
