package out

import (
	"context"

	mediaout "github.com/SdReum/classmood-cli/internal/modules/media/port/out"
	sessionout "github.com/SdReum/classmood-cli/internal/modules/session/port/out"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

// SessionTokenSource reads the bearer token from the session module's
// credential store on every call, mirroring how the guard keeps that
// store authoritative.
type SessionTokenSource struct {
	store sessionout.CredentialStore
}

func NewSessionTokenSource(store sessionout.CredentialStore) mediaout.TokenSource {
	return &SessionTokenSource{store: store}
}

func (s *SessionTokenSource) Token(ctx context.Context) (string, error) {
	creds, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}
	if !creds.HasToken() {
		return "", apperrors.ErrNoSession
	}
	return creds.Token, nil
}
