package application

import (
	"context"
	"time"

	"github.com/mahmoudAmagdy/VendingMachine/internal/machine/domain"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/jwt"
	"github.com/mahmoudAmagdy/VendingMachine/internal/pkg/logging"
)

const tokenTimeLimit = time.Hour

type Authenticator struct {
	usersRepository domain.UsersRepository
	passwordHasher  domain.PasswordHasher
	tokenIssuer     jwt.TokenIssuer
	secretKey       []byte
	logger          logging.Logger
}

func NewAuthenticator(
	usersRepository domain.UsersRepository,
	passwordHasher domain.PasswordHasher,
	tokenIssuer jwt.TokenIssuer,
	secretKey string,
	logger logging.Logger,
) *Authenticator {
	return &Authenticator{
		usersRepository: usersRepository,
		passwordHasher:  passwordHasher,
		tokenIssuer:     tokenIssuer,
		secretKey:       []byte(secretKey),
		logger:          logger,
	}
}

// Register creates an account with a zero deposit. The role decides
// which operations the token will later allow: buyers vend, sellers
// manage products.
func (a *Authenticator) Register(ctx context.Context, username, password, role string) (domain.UserProfile, error) {
	if username == "" || password == "" {
		return domain.UserProfile{}, &domain.InvalidArgumentsError{Msg: "username and password are required"}
	}

	if role != domain.RoleBuyer && role != domain.RoleSeller {
		return domain.UserProfile{}, &domain.InvalidArgumentsError{Msg: "role must be either buyer or seller"}
	}

	passwordHash, err := a.passwordHasher.HashPassword(password)
	if err != nil {
		return domain.UserProfile{}, err
	}

	account, err := a.usersRepository.CreateUser(ctx, username, passwordHash, role)
	if err != nil {
		return domain.UserProfile{}, err
	}

	a.logger.Info("user registered", "userId", account.ID, "role", account.Role)

	return domain.UserProfile{
		ID:       account.ID,
		Username: account.Username,
		Role:     account.Role,
		Deposit:  0,
	}, nil
}

func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	account, found, err := a.usersRepository.TryGetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if !found {
		return "", &domain.CredentialsMismatchError{Msg: "username or password is incorrect"}
	}

	valid, err := a.passwordHasher.VerifyPassword(password, account.PasswordHash)
	if err != nil {
		return "", err
	}

	if !valid {
		return "", &domain.CredentialsMismatchError{Msg: "username or password is incorrect"}
	}

	return a.tokenIssuer.IssueToken(a.secretKey, account.ID, account.Username, account.Role, tokenTimeLimit)
}
