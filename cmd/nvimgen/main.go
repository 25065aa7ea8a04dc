// Command nvimgen turns a Neovim --api-info manifest into a Go source
// file of typed call stubs.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/nvimbind/nvimgen/gen"
	"github.com/nvimbind/nvimgen/manifest"
	"github.com/nvimbind/nvimgen/rpc"
)

const version = "0.1.0"

// CLI defines the command-line interface for nvimgen.
var CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	Config  string `help:"TOML file with generation defaults" type:"path"`

	Generate GenerateCmd `cmd:"" help:"Generate Go stubs from a manifest"`
	Inspect  InspectCmd  `cmd:"" help:"Print a manifest summary"`
	Explore  ExploreCmd  `cmd:"" help:"Browse manifest functions interactively"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("nvimgen"),
		kong.Description("Typed stub generator for the Neovim msgpack-RPC API."),
		kong.UsageOnError(),
	)

	if CLI.Verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			rpc.SetLogger(logger)
			defer logger.Sync()
		}
	}

	ctx.FatalIfErrorf(ctx.Run())
}

// loadManifest acquires a manifest from a captured file when --input is
// given, otherwise by spawning the nvim binary.
func loadManifest(ctx context.Context, input, nvim string) (*manifest.Manifest, error) {
	var src manifest.Source
	if input != "" {
		src = manifest.File(input)
	} else {
		src = manifest.NewCommand(nvim)
	}
	return manifest.Load(ctx, src)
}

// GenerateCmd generates the stub file.
type GenerateCmd struct {
	Nvim           string `help:"Binary to spawn for the manifest dump" default:"nvim"`
	Input          string `help:"Read the manifest from a captured file instead" type:"existingfile"`
	Out            string `short:"o" help:"Output file (stdout when empty)" type:"path"`
	Package        string `help:"Package name of the generated file" default:"nvim"`
	SkipDeprecated bool   `help:"Omit functions carrying a deprecation ordinal"`
}

func (c *GenerateCmd) Run() error {
	if CLI.Config != "" {
		if err := applyConfig(CLI.Config, c); err != nil {
			return err
		}
	}

	m, err := loadManifest(context.Background(), c.Input, c.Nvim)
	if err != nil {
		return err
	}

	src, err := gen.New(m, gen.Options{
		PackageName:    c.Package,
		SkipDeprecated: c.SkipDeprecated,
	}).Generate()
	if err != nil {
		return err
	}

	if c.Out == "" {
		_, err = os.Stdout.Write(src)
		return err
	}
	if err := os.WriteFile(c.Out, src, 0644); err != nil {
		return fmt.Errorf("write %s: %w", c.Out, err)
	}
	fmt.Printf("Generated: %s (%d functions)\n", c.Out, len(m.Functions))
	return nil
}

// InspectCmd prints a manifest summary.
type InspectCmd struct {
	Nvim      string `help:"Binary to spawn for the manifest dump" default:"nvim"`
	Input     string `help:"Read the manifest from a captured file instead" type:"existingfile"`
	Functions bool   `help:"List every function signature"`
}

func (c *InspectCmd) Run() error {
	m, err := loadManifest(context.Background(), c.Input, c.Nvim)
	if err != nil {
		return err
	}

	v := m.Version
	fmt.Printf("API version: %d.%d.%d (level %d, compatible %d)\n",
		v.Major, v.Minor, v.Patch, v.APILevel, v.APICompatible)

	fmt.Printf("\nHandle types:\n")
	for _, name := range m.TypeNames() {
		t := m.Types[name]
		fmt.Printf("  %-8s tag %d  prefix %s\n", name, t.ID, t.Prefix)
	}

	fmt.Printf("\nError types:\n")
	for _, name := range m.ErrorTypeNames() {
		fmt.Printf("  %-12s id %d\n", name, m.ErrorTypes[name].ID)
	}

	deprecated := 0
	for _, fn := range m.Functions {
		if fn.DeprecatedSince != nil {
			deprecated++
		}
	}
	fmt.Printf("\nFunctions: %d (%d deprecated)\n", len(m.Functions), deprecated)
	fmt.Printf("UI options: %d\n", len(m.UIOptions))
	fmt.Printf("UI events: %d\n", len(m.UIEvents))

	if c.Functions {
		names := make([]string, 0, len(m.Functions))
		byName := make(map[string]manifest.Function, len(m.Functions))
		for _, fn := range m.Functions {
			names = append(names, fn.Name)
			byName[fn.Name] = fn
		}
		sort.Strings(names)

		fmt.Println()
		for _, name := range names {
			fmt.Printf("  %s\n", formatFunction(byName[name]))
		}
	}

	return nil
}

func formatFunction(fn manifest.Function) string {
	sig := fn.Name + "("
	for i, p := range fn.Parameters {
		if i > 0 {
			sig += ", "
		}
		sig += p.Name + ": " + fmt.Sprint(p.Type)
	}
	sig += ")"
	if s, ok := fn.ReturnType.(manifest.ScalarType); !ok || s != "void" {
		sig += " -> " + fmt.Sprint(fn.ReturnType)
	}
	if fn.DeprecatedSince != nil {
		sig += "  [deprecated]"
	}
	return sig
}

// ExploreCmd opens the interactive manifest browser.
type ExploreCmd struct {
	Nvim  string `help:"Binary to spawn for the manifest dump" default:"nvim"`
	Input string `help:"Read the manifest from a captured file instead" type:"existingfile"`
}

func (c *ExploreCmd) Run() error {
	return runExplore(c.Input, c.Nvim)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("nvimgen %s\n", version)
	return nil
}
