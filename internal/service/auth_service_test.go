package service_test

import (
	"context"
	"testing"

	"heladopos/internal/dto"
	"heladopos/internal/model"
	"heladopos/internal/repository"
	"heladopos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUsuarioRepo struct {
	usuarios []*model.Usuario
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios = append(r.usuarios, u)
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error { return nil }

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	for _, u := range r.usuarios {
		if u.ID == id {
			u.Activo = false
		}
	}
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	for _, u := range r.usuarios {
		if u.ID == id {
			u.Activo = true
		}
	}
	return nil
}

func newAuthFixture(t *testing.T) (service.AuthService, *stubUsuarioRepo) {
	t.Helper()
	repo := &stubUsuarioRepo{}
	svc := service.NewAuthService(repo, testConfig())

	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	sucursal := sucursalMP
	require.NoError(t, repo.Create(context.Background(), &model.Usuario{
		Username:     "maximo",
		Nombre:       "Vendedor Máximo Paz",
		PasswordHash: string(hash),
		Rol:          "vendedor",
		Sucursal:     &sucursal,
		Activo:       true,
	}))
	return svc, repo
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maximo", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "maximo", resp.User.Username)
	require.NotNil(t, resp.User.Sucursal)
	assert.Equal(t, sucursalMP, *resp.User.Sucursal)
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maximo", Password: "otra"})
	require.ErrorIs(t, err, service.ErrCredencialesInvalidas)
}

func TestLoginUsuarioInactivo(t *testing.T) {
	svc, repo := newAuthFixture(t)
	require.NoError(t, repo.SoftDelete(context.Background(), repo.usuarios[0].ID))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maximo", Password: "secreto123"})
	require.ErrorIs(t, err, service.ErrCredencialesInvalidas)
}

func TestRefresh(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "maximo", Password: "secreto123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "maximo", refreshed.User.Username)

	_, err = svc.Refresh(ctx, "no-es-un-token")
	require.Error(t, err)
}

func TestRefreshUsuarioDesactivado(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, dto.LoginRequest{Username: "maximo", Password: "secreto123"})
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, repo.usuarios[0].ID))
	_, err = svc.Refresh(ctx, login.RefreshToken)
	require.ErrorIs(t, err, service.ErrUsuarioInactivo)
}

func TestCrearUsuarioDuplicado(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	resp, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "admin", Nombre: "Admin General", Password: "1234", Rol: "admin",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Sucursal) // admin opera todas las sucursales
	assert.True(t, resp.Activo)

	_, err = svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "admin", Nombre: "Otro", Password: "1234", Rol: "admin",
	})
	require.ErrorIs(t, err, service.ErrNombreDuplicado)
}

func TestListarUsuarios(t *testing.T) {
	svc, repo := newAuthFixture(t)
	ctx := context.Background()
	require.NoError(t, repo.SoftDelete(ctx, repo.usuarios[0].ID))

	activos, err := svc.ListarUsuarios(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, activos)

	todos, err := svc.ListarUsuarios(ctx, true)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}
