package out

import (
	"context"

	sessionout "github.com/SdReum/classmood-cli/internal/modules/session/port/out"
	"github.com/SdReum/classmood-cli/internal/platform/api"
)

// APIBootProbe reads the backend's boot id. The id changes whenever the
// server process restarts, and every token issued before the restart
// dies with it.
type APIBootProbe struct {
	client *api.Client
}

func NewAPIBootProbe(client *api.Client) sessionout.BootProbe {
	return &APIBootProbe{client: client}
}

func (p *APIBootProbe) BootID(ctx context.Context) (string, error) {
	return p.client.BootID(ctx)
}
