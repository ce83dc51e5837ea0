package out

import (
	"context"

	sessionout "github.com/SdReum/classmood-cli/internal/modules/session/port/out"
	"github.com/SdReum/classmood-cli/internal/platform/api"
)

type HTTPAuthGateway struct {
	client *api.Client
}

func NewHTTPAuthGateway(client *api.Client) sessionout.AuthGateway {
	return &HTTPAuthGateway{client: client}
}

func (g *HTTPAuthGateway) Login(ctx context.Context, username, password string) (string, error) {
	return g.client.Login(ctx, username, password)
}

func (g *HTTPAuthGateway) Register(ctx context.Context, username, password string) (string, error) {
	return g.client.Register(ctx, username, password)
}

func (g *HTTPAuthGateway) CurrentUser(ctx context.Context, token string) (string, error) {
	return g.client.Me(ctx, token)
}
