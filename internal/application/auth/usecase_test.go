package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magazyn-erp/magazyn-api/internal/application/auth"
	"github.com/magazyn-erp/magazyn-api/internal/application/dto"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/pkg/jwt"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

const testSecret = "test-secret-0123456789"

func newAuthUC() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "magazyn-api",
	}), repo
}

func TestRegisterUser(t *testing.T) {
	uc, repo := newAuthUC()

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "jan@example.com",
		Password: "bardzo-tajne",
		Name:     "Jan Kowalski",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, entity.RoleAdmin, resp.Role)

	stored, _ := repo.GetByEmail("jan@example.com")
	require.NotNil(t, stored)
	assert.NotEqual(t, "bardzo-tajne", stored.PasswordHash, "password must be hashed")
}

func TestRegisterUser_DefaultsToWarehouseRole(t *testing.T) {
	uc, _ := newAuthUC()

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "magazynier@example.com",
		Password: "bardzo-tajne",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleWarehouse, resp.Role)
	assert.Equal(t, "magazynier@example.com", resp.Name, "name falls back to email")
}

func TestRegisterUser_Validation(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "a@b.pl", Password: "krotkie"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "password below 8 chars rejected")

	_, err = uc.RegisterUser(dto.RegisterRequest{Password: "bardzo-tajne"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "email required")

	_, err = uc.RegisterUser(dto.RegisterRequest{
		Email: "a@b.pl", Password: "bardzo-tajne", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unknown role rejected")
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	uc, _ := newAuthUC()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "jan@example.com", Password: "bardzo-tajne"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "jan@example.com", Password: "inne-haslo"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	uc, _ := newAuthUC()
	reg, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "jan@example.com",
		Password: "bardzo-tajne",
		Role:     entity.RoleAccountant,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "jan@example.com", Password: "bardzo-tajne"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, reg.ID, resp.User.ID)

	userID, role, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, userID)
	assert.Equal(t, entity.RoleAccountant, role)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _ := newAuthUC()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "jan@example.com", Password: "bardzo-tajne"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "jan@example.com", Password: "zle-haslo"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.Login(dto.LoginRequest{Email: "nikt@example.com", Password: "cokolwiek"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
