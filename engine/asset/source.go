package asset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidSource is returned for identifiers that cannot name a scene.
	ErrInvalidSource = errors.New("asset: invalid source")
	// ErrNoScene is returned when a document has no scene for the requested label.
	ErrNoScene = errors.New("asset: no such scene")
)

// Source identifies a scene inside an asset file: "path#Scene<N>".
// Without a label the document's default scene is used.
type Source struct {
	Path  string
	Label string
}

// ParseSource splits an identifier into its file path and sub-resource label.
func ParseSource(id string) (Source, error) {
	path, label, _ := strings.Cut(id, "#")
	if path == "" {
		return Source{}, fmt.Errorf("%w: empty path in %q", ErrInvalidSource, id)
	}
	if label != "" {
		if _, err := sceneIndex(label); err != nil {
			return Source{}, fmt.Errorf("%w: %q", err, id)
		}
	}
	return Source{Path: path, Label: label}, nil
}

func (s Source) String() string {
	if s.Label == "" {
		return s.Path
	}
	return s.Path + "#" + s.Label
}

// SceneIndex returns the scene index named by the label, or -1 for the default scene.
func (s Source) SceneIndex() int {
	if s.Label == "" {
		return -1
	}
	i, err := sceneIndex(s.Label)
	if err != nil {
		return -1
	}
	return i
}

func sceneIndex(label string) (int, error) {
	n, ok := strings.CutPrefix(label, "Scene")
	if !ok || n == "" {
		return 0, fmt.Errorf("%w: unsupported label %q", ErrInvalidSource, label)
	}
	i, err := strconv.Atoi(n)
	if err != nil || i < 0 {
		return 0, fmt.Errorf("%w: bad scene index %q", ErrInvalidSource, label)
	}
	return i, nil
}
