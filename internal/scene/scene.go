// Package scene loads YAML scene documents and walks them into an export session.
package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/stlexport/internal/export"
	"github.com/Faultbox/stlexport/pkg/math"
)

// Scene errors.
var (
	ErrNoRoot         = errors.New("scene has no root node")
	ErrInvalidMaxVert = errors.New("max_verts must be 3 or 4")
)

// Scene is a tree of transformed nodes holding meshes.
type Scene struct {
	Name string `yaml:"name"`
	Root *Node  `yaml:"root"`
}

// Node is one level of the scene tree. Its transform is applied as
// translation * rotation * scale on top of the parent's.
type Node struct {
	Name        string      `yaml:"name"`
	Translation *[3]float32 `yaml:"translation"`
	Rotation    *Rotation   `yaml:"rotation"`
	Scale       *[3]float32 `yaml:"scale"`
	Mesh        *Mesh       `yaml:"mesh"`
	Children    []*Node     `yaml:"children"`
}

// Rotation is an axis-angle rotation with the angle in degrees.
type Rotation struct {
	Axis  [3]float32 `yaml:"axis"`
	Angle float32    `yaml:"angle"`
}

// Mesh is the YAML form of export.Mesh.
type Mesh struct {
	Vertices [][3]float32 `yaml:"vertices"`
	Normals  [][3]float32 `yaml:"normals"`
	Polygons [][]int      `yaml:"polygons"`
	Select   *[]int       `yaml:"select"`    // Omitted selects every polygon, [] selects none
	MaxVerts int          `yaml:"max_verts"` // 0 infers 3 or 4 from the polygons
}

// Load reads a scene document from path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scene document.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Root == nil {
		return nil, ErrNoRoot
	}
	if err := validate(s.Root); err != nil {
		return nil, err
	}
	return &s, nil
}

func validate(n *Node) error {
	if n.Mesh != nil {
		switch n.Mesh.MaxVerts {
		case 0, 3, 4:
		default:
			return fmt.Errorf("node %q: %w, got %d", n.Name, ErrInvalidMaxVert, n.Mesh.MaxVerts)
		}
	}
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		if err := validate(c); err != nil {
			return err
		}
	}
	return nil
}

// ToExport converts the mesh to the form the exporter consumes.
func (m *Mesh) ToExport() export.Mesh {
	out := export.Mesh{
		Vertices:           vecs(m.Vertices),
		Normals:            vecs(m.Normals),
		Polygons:           make([]export.Polygon, len(m.Polygons)),
		MaxVertsPerPolygon: m.MaxVerts,
	}
	for i, p := range m.Polygons {
		out.Polygons[i] = export.Polygon(p)
	}
	if m.Select != nil {
		out.Selection = export.Select(*m.Select...)
	}
	if out.MaxVertsPerPolygon == 0 {
		out.MaxVertsPerPolygon = 3
		for _, p := range m.Polygons {
			if len(p) >= 4 {
				out.MaxVertsPerPolygon = 4
				break
			}
		}
	}
	return out
}

// Count returns the number of nodes and meshes in the scene.
func (s *Scene) Count() (nodes, meshes int) {
	var visit func(n *Node)
	visit = func(n *Node) {
		if n == nil {
			return
		}
		nodes++
		if n.Mesh != nil {
			meshes++
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(s.Root)
	return nodes, meshes
}

func vecs(in [][3]float32) []math.Vec3 {
	if in == nil {
		return nil
	}
	out := make([]math.Vec3, len(in))
	for i, v := range in {
		out[i] = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}
	return out
}
