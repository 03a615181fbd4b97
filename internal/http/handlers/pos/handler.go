package pos

import "github.com/sanjose-despensas/backend/internal/provider"

// Handler serves the authenticated counter endpoints: dashboard, member
// registry and delivery recording.
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
