package ribbon

import (
	"fmt"
	"strings"
)

// WriteOBJ renders meshes as a minimal Wavefront-OBJ-like text dump: one
// "v" line per quad corner (no vertex deduplication) and one "f" line
// per quad, grouped under a "g" line per leg. This is a debug aid for
// external viewers, not a rendering feature in its own right.
func WriteOBJ(meshes []Mesh) string {
	var b strings.Builder
	vertexIndex := 1
	for _, m := range meshes {
		if len(m.Quads) == 0 {
			continue
		}
		fmt.Fprintf(&b, "g %s\n", m.Leg.Kind().String())
		for _, q := range m.Quads {
			for _, v := range [4][3]float64{
				{q.A.X, q.A.Y, q.A.Z},
				{q.B.X, q.B.Y, q.B.Z},
				{q.C.X, q.C.Y, q.C.Z},
				{q.D.X, q.D.Y, q.D.Z},
			} {
				fmt.Fprintf(&b, "v %.9f %.9f %.9f\n", v[0], v[1], v[2])
			}
			fmt.Fprintf(&b, "f %d %d %d %d\n", vertexIndex, vertexIndex+1, vertexIndex+2, vertexIndex+3)
			vertexIndex += 4
		}
	}
	return b.String()
}
