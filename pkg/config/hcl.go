package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/insertsym/pkg/symbol"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return hasExt(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	defaults := make([]cty.Value, len(symbol.DefaultSpecialTokens))
	for i, tok := range symbol.DefaultSpecialTokens {
		defaults[i] = cty.StringVal(tok)
	}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_special_tokens": cty.ListVal(defaults),
		},
	}

	type hclConfig struct {
		Database         string   `hcl:"database,optional"`
		Ephemeral        bool     `hcl:"ephemeral,optional"`
		SpecialTokens    []string `hcl:"special_tokens,optional"`
		StrictSubstrings bool     `hcl:"strict_substrings,optional"`
		LogLevel         string   `hcl:"log_level,optional"`
		Import           *struct {
			Patterns []string `hcl:"patterns,optional"`
			Format   string   `hcl:"format,optional"`
		} `hcl:"import,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Database:         hclCfg.Database,
		Ephemeral:        hclCfg.Ephemeral,
		SpecialTokens:    hclCfg.SpecialTokens,
		StrictSubstrings: hclCfg.StrictSubstrings,
		LogLevel:         hclCfg.LogLevel,
	}
	if hclCfg.Import != nil {
		cfg.Import = ImportArgs{
			Patterns: hclCfg.Import.Patterns,
			Format:   hclCfg.Import.Format,
		}
	}
	return cfg, nil
}
