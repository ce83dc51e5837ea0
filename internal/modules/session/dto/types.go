package dto

import "github.com/SdReum/classmood-cli/internal/modules/session/domain"

type CheckInput struct {
	Path string
}

type CheckOutput struct {
	State      domain.GuardState
	TargetPath string
	// TokenCleared reports that this check invalidated the stored token,
	// either because the backend rebooted or because validation failed.
	TokenCleared bool
	BootChanged  bool
}

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	Username   string
	TargetPath string
}

type RegisterInput struct {
	Username string
	Password string
}

type RegisterOutput struct {
	Message string
}

type LogoutOutput struct {
	HadSession bool
	TargetPath string
}

type CurrentUserOutput struct {
	Username string
}
