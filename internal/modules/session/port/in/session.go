package in

import (
	"context"

	"github.com/SdReum/classmood-cli/internal/modules/session/dto"
)

type Usecase interface {
	Check(ctx context.Context, input dto.CheckInput) (dto.CheckOutput, error)
	Login(ctx context.Context, input dto.LoginInput) (dto.LoginOutput, error)
	Register(ctx context.Context, input dto.RegisterInput) (dto.RegisterOutput, error)
	Logout(ctx context.Context) (dto.LogoutOutput, error)
	CurrentUser(ctx context.Context) (dto.CurrentUserOutput, error)
}
