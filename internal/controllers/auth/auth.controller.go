package authController

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"matchly/internal/database"
	"matchly/internal/models"
	"matchly/internal/repositories"
	"matchly/internal/services"
	"matchly/internal/types"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	msgEmailRequired      = "The email field is required."
	msgEmailInvalid       = "The email field must be a valid email address."
	msgPasswordRequired   = "The password field is required."
	msgInvalidCredentials = "The provided credentials are incorrect."
)

type AuthController struct {
	authService *services.AuthService
	userRepo    repositories.UserRepository
	db          database.DB
	log         logger.Logger
}

type AuthControllerInterface interface {
	Login(ctx context.Context, req models.LoginRequest) (*types.LoginResponse, error)
}

func New(
	services services.Service,
	repos repositories.Repository,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		authService: services.Auth,
		userRepo:    repos.User,
		db:          db,
		log:         logger.New("authController"),
	}
}

func validateLogin(req models.LoginRequest) *types.ValidationError {
	validation := types.NewValidationError()

	email := strings.TrimSpace(req.Email)
	switch {
	case email == "":
		validation.Add("email", msgEmailRequired)
	case !isEmail(email):
		validation.Add("email", msgEmailInvalid)
	}

	if req.Password == "" {
		validation.Add("password", msgPasswordRequired)
	}

	if validation.HasErrors() {
		return validation
	}
	return nil
}

func isEmail(value string) bool {
	address, err := mail.ParseAddress(value)
	return err == nil && address.Address == value
}

// Login checks the credentials and issues a bearer token. Unknown emails and
// wrong passwords produce the same validation error.
func (ac *AuthController) Login(
	ctx context.Context,
	req models.LoginRequest,
) (*types.LoginResponse, error) {
	log := ac.log.TraceFromContext(ctx).Function("Login")

	if validation := validateLogin(req); validation != nil {
		return nil, validation
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	tx := ac.db.SQLWithContext(ctx)

	user, err := ac.userRepo.GetByEmail(ctx, tx, email)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		return nil, log.Err("failed to look up user", err)
	}

	if user == nil || !ac.authService.CheckPassword(user.Password, req.Password) {
		log.Info("login rejected", "email", email)
		return nil, types.NewValidationError().Add("email", msgInvalidCredentials)
	}

	profile, err := ac.userRepo.GetByID(ctx, tx, user.ID)
	if err != nil {
		return nil, log.Err("failed to load user profile", err, "userID", user.ID)
	}

	issued, err := ac.authService.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	log.Info("user logged in", "userID", user.ID)
	return &types.LoginResponse{
		Token: issued.Token,
		User:  profile.ToResource(),
	}, nil
}
