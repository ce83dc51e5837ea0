package out

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/session/domain"
)

type CredentialStore interface {
	Load(ctx context.Context) (domain.Credentials, error)
	Save(ctx context.Context, creds domain.Credentials) error
	Clear(ctx context.Context) error
}

type BootProbe interface {
	BootID(ctx context.Context) (string, error)
}

// TokenValidator asks the backend whether a bearer token is still
// accepted. Any error counts as a failed validation.
type TokenValidator interface {
	Validate(ctx context.Context, token string) error
}

type AuthGateway interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) (string, error)
	CurrentUser(ctx context.Context, token string) (string, error)
}
