package mesh

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed assets/*.obj
var assets embed.FS

// BuiltinPrefix selects a built-in mesh in Load, e.g. "builtin:cube".
const BuiltinPrefix = "builtin:"

var ErrUnknownBuiltin = errors.New("mesh: unknown built-in mesh")

// Builtins lists the built-in mesh names.
func Builtins() []string {
	names := []string{"torus"}
	entries, _ := assets.ReadDir("assets")
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".obj"))
	}
	sort.Strings(names)
	return names
}

// Builtin returns a fresh copy of a built-in mesh.
func Builtin(name string) (*Mesh, error) {
	if name == "torus" {
		return Torus(1, 0.4, 32, 16), nil
	}
	b, err := assets.ReadFile(path.Join("assets", name+".obj"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuiltin, name)
	}
	m, err := ParseOBJ(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("builtin %s: %w", name, err)
	}
	if m.Name == "" {
		m.Name = name
	}
	return m, nil
}

// Load reads "builtin:<name>" or an OBJ file path.
func Load(src string) (*Mesh, error) {
	if name, ok := strings.CutPrefix(src, BuiltinPrefix); ok {
		return Builtin(name)
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	}
	return m, nil
}
