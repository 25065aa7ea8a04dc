package manifest

import (
	"context"
	"os"
	"os/exec"

	"github.com/nvimbind/nvimgen/errors"
)

// Source produces manifest bytes, or fails. It is the narrow seam
// between the codec/generator and whatever process boundary the bytes
// cross; any failure here is fatal to the whole generation pass, with
// no retry and no partial-manifest fallback.
type Source interface {
	Manifest(ctx context.Context) ([]byte, error)
}

// Command acquires the manifest by spawning the target application and
// reading its one reply from stdout.
type Command struct {
	// Path is the executable to spawn, "nvim" by default.
	Path string
	// Args are the arguments requesting the manifest dump.
	Args []string
}

// NewCommand creates a Command source for the given executable.
func NewCommand(path string) *Command {
	if path == "" {
		path = "nvim"
	}
	return &Command{Path: path, Args: []string{"--api-info"}}
}

func (c *Command) Manifest(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stderr = nil
	out, err := cmd.Output()
	if err != nil {
		return nil, errors.Acquire("spawn "+c.Path, err)
	}
	if len(out) == 0 {
		return nil, errors.Acquire(c.Path+" produced no manifest output", nil)
	}
	return out, nil
}

// File acquires the manifest from a file of previously captured bytes.
type File string

func (f File) Manifest(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(string(f))
	if err != nil {
		return nil, errors.Acquire("read manifest file "+string(f), err)
	}
	return data, nil
}

// Bytes is an in-memory manifest source, used for canned fixtures.
type Bytes []byte

func (b Bytes) Manifest(ctx context.Context) ([]byte, error) {
	return b, nil
}

// Load acquires and decodes a manifest in one step.
func Load(ctx context.Context, src Source) (*Manifest, error) {
	data, err := src.Manifest(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
