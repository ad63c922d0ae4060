package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"buildledger/internal/pkg/jwt"
	"buildledger/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserReader) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func testUser(t *testing.T, role Role) *User {
	t.Helper()
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	return &User{ID: "u-1", Name: "Alex Admin", Email: "alex@example.com", Password: hash, Role: role}
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserReader)
	users.On("GetByEmail", ctx, "alex@example.com").Return(testUser(t, RoleAdmin), nil)

	jwtService := jwt.New("secret", time.Hour)
	svc := NewService(users, jwtService, nil)

	resp, err := svc.Login(ctx, LoginRequest{Email: "alex@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", resp.User.ID)
	assert.Equal(t, RoleAdmin, resp.User.Role)

	claims, err := jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	users.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserReader)
	users.On("GetByEmail", ctx, "alex@example.com").Return(testUser(t, RoleUser), nil)

	svc := NewService(users, jwt.New("secret", time.Hour), nil)
	_, err := svc.Login(ctx, LoginRequest{Email: "alex@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserReader)
	users.On("GetByEmail", ctx, "ghost@example.com").
		Return(nil, fmt.Errorf("user: %w", store.ErrNotFound))

	svc := NewService(users, jwt.New("secret", time.Hour), nil)
	_, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserReader)
	users.On("GetByID", ctx, "u-1").Return(testUser(t, RoleUser), nil)
	users.On("GetByID", ctx, "gone").Return(nil, store.ErrNotFound)

	svc := NewService(users, jwt.New("secret", time.Hour), nil)

	me, err := svc.Me(ctx, Actor{ID: "u-1", Role: RoleUser})
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", me.Email)

	_, err = svc.Me(ctx, Actor{ID: "gone"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Me(ctx, Actor{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRepository_GetByEmailIgnoresCase(t *testing.T) {
	backend, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	repo := NewRepository(store.New(backend))

	ctx := context.Background()
	require.NoError(t, repo.Replace(ctx, []User{{ID: "1", Email: "Office@Example.com", Role: RoleAdmin}}))

	u, err := repo.GetByEmail(ctx, "office@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1", u.ID)

	_, err = repo.GetByEmail(ctx, "other@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserResponseOmitsPassword(t *testing.T) {
	u := testUser(t, RoleUser)
	resp := u.ToResponse()
	assert.Equal(t, u.Email, resp.Email)
	assert.NotContains(t, fmt.Sprintf("%+v", resp), u.Password)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, CheckPassword("s3cret-pass", hash))
	assert.ErrorIs(t, CheckPassword("wrong", hash), ErrInvalidCredentials)
	assert.ErrorIs(t, CheckPassword("s3cret-pass", ""), ErrInvalidCredentials)
}
