package sink

import (
	"encoding/json"

	"github.com/matzehuels/stackviz/pkg/errors"
	"github.com/matzehuels/stackviz/pkg/render/scene"
)

// RenderJSON exports the scene tree. The output can be decoded back into a
// [scene.Scene] and rendered by any other sink.
func RenderJSON(s *scene.Scene) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	return data, nil
}

// ReadJSON decodes a scene exported by RenderJSON.
func ReadJSON(data []byte) (*scene.Scene, error) {
	var s scene.Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scene")
	}
	if s.Root == nil {
		s.Root = scene.Group("root")
	}
	return &s, nil
}
