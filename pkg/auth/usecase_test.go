package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserRepo stores users in memory and enforces username uniqueness,
// like the real store's constraint would.
type fakeUserRepo struct {
	users     map[string]User
	createErr error
	getErr    error
	getCalls  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user User) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := strings.ToLower(user.Username)
	if _, ok := f.users[key]; ok {
		return ErrUserAlreadyExists
	}
	f.users[key] = user
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (User, error) {
	f.getCalls++
	if f.getErr != nil {
		return User{}, f.getErr
	}
	u, ok := f.users[strings.ToLower(username)]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

type fakeTokens struct {
	token string
	err   error
}

func (f *fakeTokens) Generate(ctx context.Context, user User) (string, error) {
	return f.token, f.err
}

func newTestService(repo UserRepository) AuthUseCase {
	return NewAuthService(repo, &fakeTokens{token: "tok"}, bcrypt.MinCost)
}

func TestRegister_HashesWithPerUserSalt(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	res, err := svc.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.Username)
	assert.Equal(t, "tok", res.Token)
	assert.NotEmpty(t, res.User.Salt)
	assert.NotContains(t, res.User.PasswordHash, "pw1")

	// The stored hash verifies against password+salt, not the bare password.
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("pw1"+res.User.Salt)))
	require.Error(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("pw1")))
}

func TestRegister_SaltsDifferPerUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	a, err := svc.Register(context.Background(), "alice", "samepw")
	require.NoError(t, err)
	b, err := svc.Register(context.Background(), "bob", "samepw")
	require.NoError(t, err)

	assert.NotEqual(t, a.User.Salt, b.User.Salt)
	assert.NotEqual(t, a.User.PasswordHash, b.User.PasswordHash)
}

func TestRegister_Duplicate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "pw2")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegister_EmptyCredentials(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), "alice", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_StoreFailurePropagates(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = errors.New("db down")
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "alice", "pw1")
	assert.EqualError(t, err, "db down")
}

func TestLogin_RoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	reg, err := svc.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	assert.Equal(t, "alice", res.User.Username)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, repo.getCalls)
}

func TestLogin_StoreFailureIsNotInvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	repo.getErr = errors.New("db down")
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), "alice", "pw1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_TokenFailurePropagates(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, &fakeTokens{token: "tok"}, bcrypt.MinCost)
	_, err := svc.Register(context.Background(), "alice", "pw1")
	require.NoError(t, err)

	failing := NewAuthService(repo, &fakeTokens{err: errors.New("sign failed")}, bcrypt.MinCost)
	_, err = failing.Login(context.Background(), "alice", "pw1")
	assert.EqualError(t, err, "sign failed")
}
