package user

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	seq     int
	byID    map[string]*User
	byEmail map[string]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*User{}, byEmail: map[string]*User{}}
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return ErrEmailAlreadyUsed
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// fakeHasher marks hashes with a prefix instead of running bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (fakeHasher) Compare(hash, plain string) error {
	if hash != "hashed:"+plain {
		return errors.New("mismatch")
	}
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a local user with a hashed password", func(t *testing.T) {
		svc := NewService(newFakeRepo(), fakeHasher{})

		u, err := svc.Register(ctx, "Asha", "Asha@Example.com ", "secret123")
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "asha@example.com", u.Email, "email must be normalized")
		assert.Equal(t, ProviderLocal, u.Provider)
		assert.Equal(t, "hashed:secret123", u.PasswordHash)
		assert.False(t, u.IsAdmin)
	})

	t.Run("rejects blank name and email", func(t *testing.T) {
		svc := NewService(newFakeRepo(), fakeHasher{})

		_, err := svc.Register(ctx, "   ", "a@b.com", "secret123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")

		_, err = svc.Register(ctx, "Asha", "  ", "secret123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email is required")
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		svc := NewService(newFakeRepo(), fakeHasher{})

		_, err := svc.Register(ctx, "Asha", "a@b.com", "12345")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 6 characters")
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewService(newFakeRepo(), fakeHasher{})

		_, err := svc.Register(ctx, "Asha", "a@b.com", "secret123")
		require.NoError(t, err)

		// Same address with different case still collides.
		_, err = svc.Register(ctx, "Other", "A@B.COM", "secret456")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) Service {
		t.Helper()
		svc := NewService(newFakeRepo(), fakeHasher{})
		_, err := svc.Register(ctx, "Asha", "a@b.com", "secret123")
		require.NoError(t, err)
		return svc
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc := setup(t)

		u, err := svc.Login(ctx, "A@B.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "a@b.com", u.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := setup(t)

		_, err := svc.Login(ctx, "a@b.com", "wrong-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is reported like a bad password", func(t *testing.T) {
		svc := setup(t)

		_, err := svc.Login(ctx, "nobody@b.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("blank credentials", func(t *testing.T) {
		svc := setup(t)

		_, err := svc.Login(ctx, "", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = svc.Login(ctx, "a@b.com", "   ")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
