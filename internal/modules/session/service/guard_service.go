package service

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/session/domain"
	sessionout "github.com/SdReum/classmood-cli/internal/modules/session/port/out"
)

type GuardService struct {
	probe     sessionout.BootProbe
	validator sessionout.TokenValidator
}

func NewGuardService(probe sessionout.BootProbe, validator sessionout.TokenValidator) *GuardService {
	return &GuardService{probe: probe, validator: validator}
}

// ReconcileBoot compares stored credentials with the backend's current
// boot id. A changed boot id drops the token, because the user table
// that issued it died with the previous server process. Probe failures
// leave the credentials untouched.
func (s *GuardService) ReconcileBoot(ctx context.Context, creds domain.Credentials) (domain.Credentials, bool) {
	bootID, err := s.probe.BootID(ctx)
	if err != nil || bootID == "" {
		return creds, false
	}
	next := creds
	changed := creds.BootID != "" && creds.BootID != bootID
	if changed {
		next.Token = ""
	}
	next.BootID = bootID
	return next, changed
}

// ValidateToken reports whether the stored token is still accepted. It
// never touches the network when no token is present.
func (s *GuardService) ValidateToken(ctx context.Context, creds domain.Credentials) bool {
	if !creds.HasToken() {
		return false
	}
	return s.validator.Validate(ctx, creds.Token) == nil
}
