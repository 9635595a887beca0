// Command mkmesh writes built-in or generated meshes as OBJ files.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"facet/mesh"
)

func main() {
	var (
		name      = flag.String("mesh", "cube", "Built-in mesh name, or torus to use the -major/-minor/-u/-v parameters.")
		outPath   = flag.String("out", "", "Output .obj file (default stdout).")
		major     = flag.Float64("major", 1, "Torus ring radius.")
		minor     = flag.Float64("minor", 0.4, "Torus tube radius.")
		segU      = flag.Int("u", 32, "Torus segments around the ring.")
		segV      = flag.Int("v", 16, "Torus segments around the tube.")
		normalize = flag.Bool("normalize", false, "Center the mesh and scale it into [-1, 1].")
		list      = flag.Bool("list", false, "List built-in meshes.")
	)
	flag.Parse()

	if *list {
		fmt.Println(strings.Join(mesh.Builtins(), "\n"))
		return
	}

	var m *mesh.Mesh
	if *name == "torus" {
		if *minor <= 0 || *major <= *minor {
			fatalf("torus: need 0 < minor < major (got major=%v minor=%v)", *major, *minor)
		}
		m = mesh.Torus(float32(*major), float32(*minor), *segU, *segV)
	} else {
		var err error
		if m, err = mesh.Builtin(*name); err != nil {
			fatalf("%v (have: %s)", err, strings.Join(mesh.Builtins(), ", "))
		}
	}
	if *normalize {
		m.Normalize()
	}
	if _, err := m.Triangles(); err != nil {
		fatalf("%s: %v", m.Name, err)
	}

	var w io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fatalf("create: %v", err)
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s: %d vertices, %d faces\n", m.Name, len(m.Vertices), len(m.Faces))
	if err := mesh.WriteOBJ(bw, m); err != nil {
		fatalf("write: %v", err)
	}
	if err := bw.Flush(); err != nil {
		fatalf("write: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
