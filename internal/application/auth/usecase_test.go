package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/recycle-api/internal/application/auth"
	"github.com/jhoicas/recycle-api/internal/application/dto"
	"github.com/jhoicas/recycle-api/internal/domain"
	"github.com/jhoicas/recycle-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/recycle-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewStore().Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "recycle-api-test"})
}

func TestRegisterYLogin(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Name: "Ana", Email: "Ana@Recicla.com ", Password: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@recicla.com", user.Email)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@recicla.com", Password: "outrasenha"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@recicla.com", Password: "segredo123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, out.User.ID)

	userID, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@recicla.com", Password: "segredo123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@recicla.com", Password: "errada123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@recicla.com", Password: "segredo123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
