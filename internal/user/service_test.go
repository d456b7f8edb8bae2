package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepository struct {
	usersByEmail map[string]*User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{usersByEmail: make(map[string]*User)}
}

func (m *mockUserRepository) createUser(_ context.Context, user *User) error {
	m.usersByEmail[user.Email] = user
	return nil
}

func (m *mockUserRepository) getUserByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.usersByEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserRepository) getUserByID(_ context.Context, userID uuid.UUID) (*User, error) {
	for _, u := range m.usersByEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) doesEmailExist(_ context.Context, email string) (bool, error) {
	_, ok := m.usersByEmail[email]
	return ok, nil
}

func TestRegister(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	newUser, err := service.Register(context.Background(), "Jamie", "jamie@example.com", "correct horse battery")

	assert.NoError(t, err)
	assert.Equal(t, "Jamie", newUser.Name)
	assert.Equal(t, "jamie@example.com", newUser.Email)
	assert.NotEqual(t, "correct horse battery", newUser.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newUser.PasswordHash), []byte("correct horse battery")))
}

func TestRegister_DefaultsNameFromEmail(t *testing.T) {
	service := NewUserService(newMockUserRepository())

	newUser, err := service.Register(context.Background(), "", "jamie@example.com", "long enough password")

	assert.NoError(t, err)
	assert.Equal(t, "jamie", newUser.Name)
}

func TestRegister_InvalidEmail(t *testing.T) {
	service := NewUserService(newMockUserRepository())

	_, err := service.Register(context.Background(), "Jamie", "not-an-email", "long enough password")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestRegister_ShortPassword(t *testing.T) {
	service := NewUserService(newMockUserRepository())

	_, err := service.Register(context.Background(), "Jamie", "jamie@example.com", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepository()
	service := NewUserService(repo)

	_, err := service.Register(context.Background(), "Jamie", "jamie@example.com", "long enough password")
	assert.NoError(t, err)

	_, err = service.Register(context.Background(), "Other Jamie", "Jamie@Example.com", "another password here")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}
