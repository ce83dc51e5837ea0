package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	activitydto "github.com/SdReum/classmood-cli/internal/modules/activity/dto"
	activityin "github.com/SdReum/classmood-cli/internal/modules/activity/port/in"
	"github.com/SdReum/classmood-cli/internal/modules/session/domain"
	sessiondto "github.com/SdReum/classmood-cli/internal/modules/session/dto"
	sessionin "github.com/SdReum/classmood-cli/internal/modules/session/port/in"
	sessionout "github.com/SdReum/classmood-cli/internal/modules/session/port/out"
	"github.com/SdReum/classmood-cli/internal/modules/session/service"
	apperrors "github.com/SdReum/classmood-cli/internal/platform/errors"
)

type Interactor struct {
	svc      *service.GuardService
	gateway  sessionout.AuthGateway
	store    sessionout.CredentialStore
	activity activityin.Usecase
}

func NewInteractor(svc *service.GuardService, gateway sessionout.AuthGateway, store sessionout.CredentialStore, activity activityin.Usecase) sessionin.Usecase {
	return &Interactor{svc: svc, gateway: gateway, store: store, activity: activity}
}

// Check runs the navigation guard for one path: reconcile the stored
// boot id, validate the token if the page outcome depends on it, and
// persist whatever changed. A stored token that survives Check is
// either valid for the current boot or already cleared.
func (i *Interactor) Check(ctx context.Context, input sessiondto.CheckInput) (sessiondto.CheckOutput, error) {
	page := domain.ClassifyPage(input.Path)

	loaded, err := i.store.Load(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNoSession) {
		return sessiondto.CheckOutput{}, err
	}

	creds, bootChanged := i.svc.ReconcileBoot(ctx, loaded)
	tokenCleared := bootChanged

	tokenValid := false
	if page.Kind != domain.PageUnknown && creds.HasToken() {
		tokenValid = i.svc.ValidateToken(ctx, creds)
		if !tokenValid {
			creds.Token = ""
			tokenCleared = true
		}
	}

	if creds != loaded {
		if err := i.store.Save(ctx, creds); err != nil {
			return sessiondto.CheckOutput{}, err
		}
	}

	decision := domain.Decide(page.Kind, creds.HasToken(), tokenValid)
	return sessiondto.CheckOutput{
		State:        decision.State,
		TargetPath:   decision.Target.Path,
		TokenCleared: tokenCleared,
		BootChanged:  bootChanged,
	}, nil
}

func (i *Interactor) Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.LoginOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return sessiondto.LoginOutput{}, fmt.Errorf("%w: username and password are required", apperrors.ErrInvalidInput)
	}

	token, err := i.gateway.Login(ctx, username, input.Password)
	if err != nil {
		return sessiondto.LoginOutput{}, err
	}

	creds := domain.Credentials{}
	if current, loadErr := i.store.Load(ctx); loadErr == nil {
		creds = current
	}
	creds.Token = token
	if err := i.store.Save(ctx, creds); err != nil {
		return sessiondto.LoginOutput{}, err
	}

	if i.activity != nil {
		_ = i.activity.Record(ctx, activitydto.RecordInput{Kind: "login", Detail: username})
	}
	return sessiondto.LoginOutput{Username: username, TargetPath: domain.PathUpload}, nil
}

func (i *Interactor) Register(ctx context.Context, input sessiondto.RegisterInput) (sessiondto.RegisterOutput, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return sessiondto.RegisterOutput{}, fmt.Errorf("%w: username and password are required", apperrors.ErrInvalidInput)
	}
	message, err := i.gateway.Register(ctx, username, input.Password)
	if err != nil {
		return sessiondto.RegisterOutput{}, err
	}
	if message == "" {
		message = "registered"
	}
	return sessiondto.RegisterOutput{Message: message}, nil
}

// Logout drops the stored credentials unconditionally. Logging out
// without a session is not an error.
func (i *Interactor) Logout(ctx context.Context) (sessiondto.LogoutOutput, error) {
	hadSession := false
	if creds, err := i.store.Load(ctx); err == nil && creds.HasToken() {
		hadSession = true
	}
	if err := i.store.Clear(ctx); err != nil {
		return sessiondto.LogoutOutput{}, err
	}
	if hadSession && i.activity != nil {
		_ = i.activity.Record(ctx, activitydto.RecordInput{Kind: "logout"})
	}
	return sessiondto.LogoutOutput{HadSession: hadSession, TargetPath: domain.PathHome}, nil
}

// CurrentUser resolves the logged-in username. Without a stored token
// it fails with ErrNoSession before any network call; a rejected token
// is cleared so the next guard pass starts clean.
func (i *Interactor) CurrentUser(ctx context.Context) (sessiondto.CurrentUserOutput, error) {
	creds, err := i.store.Load(ctx)
	if err != nil {
		return sessiondto.CurrentUserOutput{}, err
	}
	if !creds.HasToken() {
		return sessiondto.CurrentUserOutput{}, apperrors.ErrNoSession
	}

	username, err := i.gateway.CurrentUser(ctx, creds.Token)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			creds.Token = ""
			if saveErr := i.store.Save(ctx, creds); saveErr != nil {
				return sessiondto.CurrentUserOutput{}, saveErr
			}
		}
		return sessiondto.CurrentUserOutput{}, err
	}
	return sessiondto.CurrentUserOutput{Username: username}, nil
}
