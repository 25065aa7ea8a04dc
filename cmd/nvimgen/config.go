package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// nvimgen config.toml key mapping to generate-command settings. Keys
// present in the file override the command's built-in defaults; flags
// given on the command line are not touched.
type fileConfig struct {
	Nvim           string `toml:"nvim"`
	Input          string `toml:"input"`
	Out            string `toml:"out"`
	Package        string `toml:"package"`
	SkipDeprecated bool   `toml:"skip_deprecated"`
}

func applyConfig(path string, c *GenerateCmd) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return fmt.Errorf("load config %s: unknown key %q", path, undec[0].String())
	}

	if meta.IsDefined("nvim") && c.Nvim == "nvim" {
		c.Nvim = strings.TrimSpace(raw.Nvim)
	}
	if meta.IsDefined("input") && c.Input == "" {
		c.Input = strings.TrimSpace(raw.Input)
	}
	if meta.IsDefined("out") && c.Out == "" {
		c.Out = strings.TrimSpace(raw.Out)
	}
	if meta.IsDefined("package") && c.Package == "nvim" {
		c.Package = strings.TrimSpace(raw.Package)
	}
	if meta.IsDefined("skip_deprecated") && !c.SkipDeprecated {
		c.SkipDeprecated = raw.SkipDeprecated
	}
	return nil
}
