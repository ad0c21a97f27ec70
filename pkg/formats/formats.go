// Package formats provides import and export codecs for voxel model files
// and the registry the host application wires them into.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/voxelforge/voxedit/pkg/voxel"
)

// Registry errors.
var (
	ErrUnknownExtension = errors.New("no codec registered for extension")
	ErrNotReadable      = errors.New("codec cannot read")
	ErrNotWritable      = errors.New("codec cannot write")
)

// Capability declares what a codec can do. It is stated explicitly at
// registration instead of being probed from whatever methods happen to
// exist on the handler.
type Capability uint8

// Capability flags.
const (
	CapRead Capability = 1 << iota
	CapWrite

	CapReadWrite = CapRead | CapWrite
)

// String returns a human-readable capability description.
func (c Capability) String() string {
	switch c {
	case CapRead:
		return "read"
	case CapWrite:
		return "write"
	case CapReadWrite:
		return "read/write"
	default:
		return fmt.Sprintf("Capability(%d)", uint8(c))
	}
}

// Codec describes one file format handler.
type Codec interface {
	// Name is the human-readable format description, e.g. "Zoxel Files".
	Name() string
	// Extension is the lowercase file extension including the dot.
	Extension() string
	// Capabilities declares the directions this codec supports.
	Capabilities() Capability
}

// Reader loads a model from disk. Load must either return a fully built
// frame set or an error; it never commits partial content.
type Reader interface {
	Codec
	Load(path string) (*voxel.FrameSet, error)
}

// Writer saves a model to disk.
type Writer interface {
	Codec
	Save(path string, frames *voxel.FrameSet) error
}

// Registry holds the registered codecs. It is owned by the host application
// and injected where needed; there is no package-level instance.
type Registry struct {
	codecs []Codec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a codec after validating that its declared capabilities
// match the interfaces it actually implements.
func (r *Registry) Register(c Codec) error {
	caps := c.Capabilities()
	if caps&CapReadWrite == 0 {
		return fmt.Errorf("codec %q declares no capabilities", c.Name())
	}
	if _, ok := c.(Reader); ok != (caps&CapRead != 0) {
		return fmt.Errorf("codec %q: declared read capability does not match implementation", c.Name())
	}
	if _, ok := c.(Writer); ok != (caps&CapWrite != 0) {
		return fmt.Errorf("codec %q: declared write capability does not match implementation", c.Name())
	}
	r.codecs = append(r.codecs, c)
	return nil
}

// Codecs returns all registered codecs in registration order.
func (r *Registry) Codecs() []Codec {
	return r.codecs
}

// ByExtension returns the codec registered for the extension of path, or
// nil if none matches.
func (r *Registry) ByExtension(path string) Codec {
	ext := strings.ToLower(filepath.Ext(path))
	for _, c := range r.codecs {
		if c.Extension() == ext {
			return c
		}
	}
	return nil
}

// Load loads the model at path using the codec matching its extension.
func (r *Registry) Load(path string) (*voxel.FrameSet, error) {
	c := r.ByExtension(path)
	if c == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExtension, filepath.Ext(path))
	}
	reader, ok := c.(Reader)
	if !ok || c.Capabilities()&CapRead == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotReadable, c.Name())
	}
	return reader.Load(path)
}

// Save saves the model to path using the codec matching its extension.
func (r *Registry) Save(path string, frames *voxel.FrameSet) error {
	c := r.ByExtension(path)
	if c == nil {
		return fmt.Errorf("%w: %s", ErrUnknownExtension, filepath.Ext(path))
	}
	writer, ok := c.(Writer)
	if !ok || c.Capabilities()&CapWrite == 0 {
		return fmt.Errorf("%w: %s", ErrNotWritable, c.Name())
	}
	return writer.Save(path, frames)
}
