package public

import "github.com/sanjose-despensas/backend/internal/provider"

// Handler serves the unauthenticated endpoints: login and captcha.
type Handler struct {
	*provider.Container
}

func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
