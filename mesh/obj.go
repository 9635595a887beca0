package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"facet/facetgl"
)

var ErrSyntax = errors.New("mesh: obj syntax error")

// ParseOBJ reads the geometry of a Wavefront OBJ file.
//
// Only "v" and "f" records are used. A face vertex written as "i", "i/t",
// "i//n" or "i/t/n" contributes its position index i; negative indices count
// back from the last vertex read so far. Faces with more than three vertices
// are split into a fan. Indices are not range-checked here; see
// Mesh.Triangles.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	m := &Mesh{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "o":
			if m.Name == "" && len(fields) > 1 {
				m.Name = fields[1]
			}
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: vertex needs 3 coordinates", ErrSyntax, line)
			}
			var xyz [3]float32
			for i := range xyz {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, line, err)
				}
				xyz[i] = float32(f)
			}
			m.Vertices = append(m.Vertices, facetgl.V3(xyz[0], xyz[1], xyz[2]))
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: face needs at least 3 vertices", ErrSyntax, line)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				i, err := faceIndex(ref, len(m.Vertices))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", line, err)
				}
				idx = append(idx, i)
			}
			for k := 1; k+1 < len(idx); k++ {
				m.Faces = append(m.Faces, [3]int{idx[0], idx[k], idx[k+1]})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func faceIndex(ref string, seen int) (int, error) {
	head, _, _ := strings.Cut(ref, "/")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("%w: bad face vertex %q", ErrSyntax, ref)
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0:
		return seen + n, nil
	default:
		return 0, fmt.Errorf("%w: index 0 in %q", ErrFaceIndex, ref)
	}
}

// WriteOBJ writes m as "v" and "f" records with 1-based indices.
func WriteOBJ(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	if m.Name != "" {
		fmt.Fprintf(bw, "o %s\n", m.Name)
	}
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", fmtFloat(v.X), fmtFloat(v.Y), fmtFloat(v.Z))
	}
	for _, f := range m.Faces {
		fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	return bw.Flush()
}

func fmtFloat(f float32) string { return strconv.FormatFloat(float64(f), 'g', -1, 32) }
