package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/auth"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/pkg/jwt"
)

const (
	testSecret    = "auth-test-secret"
	testCompanyID = int64(1)
)

type fakeUserRepo struct {
	users  map[string]*entity.User
	nextID int64
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := f.users[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeCompanyRepo struct {
	companies map[int64]*entity.Company
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error { return nil }

func (f *fakeCompanyRepo) GetByID(id int64) (*entity.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCompanyRepo) List() ([]*entity.Company, error) { return nil, nil }

func newAuthUC() (*auth.AuthUseCase, *fakeUserRepo) {
	users := &fakeUserRepo{users: make(map[string]*entity.User)}
	companies := &fakeCompanyRepo{companies: map[int64]*entity.Company{
		testCompanyID: {ID: testCompanyID, Name: "ACME"},
	}}
	return auth.NewAuthUseCase(users, companies, testSecret, "stock-ledger-test", 60), users
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		CompanyID: testCompanyID,
		FirstName: "Ana",
		LastName:  "Gómez",
		Email:     "Ana@Acme.com",
		Password:  "s3creta!",
	}
}

func TestRegister_NormalizaEmailYHasheaPassword(t *testing.T) {
	uc, users := newAuthUC()

	out, err := uc.Register(registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "ana@acme.com", out.Email, "el email se normaliza a minúsculas")
	assert.Equal(t, entity.RoleUser, out.Role, "sin rol explícito se asigna user")

	stored := users.users["ana@acme.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3creta!", stored.PasswordHash, "la contraseña nunca se guarda en claro")
	assert.True(t, stored.IsActive)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUC()
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	in := registerRequest()
	in.Email = "ANA@acme.com" // misma dirección con otra capitalización
	_, err = uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_RolNoPermitido(t *testing.T) {
	uc, _ := newAuthUC()
	in := registerRequest()
	in.Role = "superadmin"
	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_EmpresaInexistente(t *testing.T) {
	uc, _ := newAuthUC()
	in := registerRequest()
	in.CompanyID = 99
	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_EmiteTokenConContextoDeTenant(t *testing.T) {
	uc, _ := newAuthUC()
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@acme.com", Password: "s3creta!"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, testCompanyID, claims.CompanyID)
	assert.Equal(t, "Ana Gómez", claims.Name)
	assert.Equal(t, entity.RoleUser, claims.Role)
}

func TestLogin_PasswordIncorrecta_Unauthorized(t *testing.T) {
	uc, _ := newAuthUC()
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@acme.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente_Unauthorized(t *testing.T) {
	uc, _ := newAuthUC()
	_, err := uc.Login(dto.LoginRequest{Email: "nadie@acme.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo_Unauthorized(t *testing.T) {
	uc, users := newAuthUC()
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)
	users.users["ana@acme.com"].IsActive = false

	_, err = uc.Login(dto.LoginRequest{Email: "ana@acme.com", Password: "s3creta!"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
