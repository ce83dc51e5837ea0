package in

import (
	"context"

	sessiondto "github.com/SdReum/classmood-cli/internal/modules/session/dto"
	sessionin "github.com/SdReum/classmood-cli/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Check(ctx context.Context, path string) (sessiondto.CheckOutput, error) {
	return h.usecase.Check(ctx, sessiondto.CheckInput{Path: path})
}

func (h CLIHandler) Login(ctx context.Context, username, password string) (sessiondto.LoginOutput, error) {
	return h.usecase.Login(ctx, sessiondto.LoginInput{Username: username, Password: password})
}

func (h CLIHandler) Register(ctx context.Context, username, password string) (sessiondto.RegisterOutput, error) {
	return h.usecase.Register(ctx, sessiondto.RegisterInput{Username: username, Password: password})
}

func (h CLIHandler) Logout(ctx context.Context) (sessiondto.LogoutOutput, error) {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) CurrentUser(ctx context.Context) (sessiondto.CurrentUserOutput, error) {
	return h.usecase.CurrentUser(ctx)
}
