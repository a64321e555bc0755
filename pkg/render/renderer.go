package render

import (
	"context"

	"github.com/goliatone/go-fnaform/pkg/model"
)

// Renderer converts a FormModel into bytes (HTML page, terminal text, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel) ([]byte, error)
}
