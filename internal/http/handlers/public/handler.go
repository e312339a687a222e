package public

import "github.com/heatspares-next/internal/provider"

// Handler serves the storefront and customer APIs.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
