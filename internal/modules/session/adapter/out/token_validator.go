package out

import (
	"context"

	sessionout "github.com/SdReum/classmood-cli/internal/modules/session/port/out"
	"github.com/SdReum/classmood-cli/internal/platform/api"
)

// APITokenValidator checks a token by listing the caller's files, the
// cheapest protected endpoint the backend offers.
type APITokenValidator struct {
	client *api.Client
}

func NewAPITokenValidator(client *api.Client) sessionout.TokenValidator {
	return &APITokenValidator{client: client}
}

func (v *APITokenValidator) Validate(ctx context.Context, token string) error {
	_, err := v.client.ListFiles(ctx, token)
	return err
}
