package scene

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/stlexport/internal/export"
)

// Sink receives the walk. *export.Session implements it.
type Sink interface {
	PushTransform() error
	PopTransform() error
	ApplyAttribute(kind export.AttributeKind, values ...float32) error
	SubmitMesh(m export.Mesh) error
}

// Walk visits the scene depth-first. Every node is bracketed by a push and
// a pop, so the sink's transform is back to its starting value afterwards.
func Walk(s *Scene, sink Sink) error {
	if s.Root == nil {
		return ErrNoRoot
	}
	return walkNode(s.Root, sink, "/")
}

func walkNode(n *Node, sink Sink, path string) error {
	if n == nil {
		return nil
	}
	path += n.Name

	if err := sink.PushTransform(); err != nil {
		return err
	}
	if err := applyTransform(n, sink); err != nil {
		return fmt.Errorf("node %s: %w", path, err)
	}
	if n.Mesh != nil {
		if err := sink.SubmitMesh(n.Mesh.ToExport()); err != nil {
			return fmt.Errorf("node %s: %w", path, err)
		}
	}
	for _, c := range n.Children {
		if err := walkNode(c, sink, path+"/"); err != nil {
			return err
		}
	}
	return sink.PopTransform()
}

func applyTransform(n *Node, sink Sink) error {
	if t := n.Translation; t != nil {
		if err := sink.ApplyAttribute(export.AttributeTranslation, t[0], t[1], t[2]); err != nil {
			return err
		}
	}
	if r := n.Rotation; r != nil {
		rad := float32(float64(r.Angle) * gomath.Pi / 180)
		if err := sink.ApplyAttribute(export.AttributeRotation, r.Axis[0], r.Axis[1], r.Axis[2], rad); err != nil {
			return err
		}
	}
	if sc := n.Scale; sc != nil {
		if err := sink.ApplyAttribute(export.AttributeScale, sc[0], sc[1], sc[2]); err != nil {
			return err
		}
	}
	return nil
}

// Export runs a complete export of s: Begin, Walk, End.
func Export(s *Scene, sess *export.Session) (uint32, error) {
	if err := sess.Begin(); err != nil {
		return 0, err
	}
	if err := Walk(s, sess); err != nil {
		return 0, err
	}
	return sess.End()
}
