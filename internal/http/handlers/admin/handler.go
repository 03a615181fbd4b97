package admin

import "github.com/sanjose-despensas/backend/internal/provider"

// Handler serves the administrative endpoints: stock movements, account
// management and registry maintenance.
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
