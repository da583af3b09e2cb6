package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundiclass/backend/internal/user/domain"
)

// memUserRepo is an in-memory UserRepository for command tests
type memUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uint]*domain.User)}
}

func (r *memUserRepo) Create(u *domain.User) error {
	r.nextID++
	u.ID = r.nextID
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *memUserRepo) FindByID(id uint) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		found := *u
		return &found, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByUsername(username string) (*domain.User, error) {
	return r.findBy(func(u *domain.User) bool { return u.Username == username })
}

func (r *memUserRepo) FindByEmail(email string) (*domain.User, error) {
	return r.findBy(func(u *domain.User) bool { return u.Email == email })
}

func (r *memUserRepo) FindByCedula(cedula string) (*domain.User, error) {
	return r.findBy(func(u *domain.User) bool { return u.Cedula == cedula })
}

func (r *memUserRepo) findBy(match func(*domain.User) bool) (*domain.User, error) {
	for _, u := range r.users {
		if match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindAll(role string, limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUserRepo) Update(u *domain.User) error {
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *memUserRepo) Delete(id uint) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) Count() (int64, error) {
	return int64(len(r.users)), nil
}

func validRegistration() RegisterUserCommand {
	return RegisterUserCommand{
		Username: "mlopez",
		Email:    "mlopez@example.com",
		Cedula:   "001-1234567-8",
		Password: "s3cret-pass",
		FullName: "Maria Lopez",
	}
}

func TestRegisterUser(t *testing.T) {
	repo := newMemUserRepo()
	handler := NewRegisterUserHandler(repo)

	user, err := handler.Handle(validRegistration())
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, domain.RoleUser, user.Role, "role defaults to user")
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret-pass", user.Password, "password must be stored hashed")
}

func TestRegisterUserValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterUserCommand)
	}{
		{"short username", func(c *RegisterUserCommand) { c.Username = "ab" }},
		{"bad email", func(c *RegisterUserCommand) { c.Email = "not-an-email" }},
		{"missing cedula", func(c *RegisterUserCommand) { c.Cedula = "" }},
		{"short password", func(c *RegisterUserCommand) { c.Password = "short" }},
		{"unknown role", func(c *RegisterUserCommand) { c.Role = "superuser" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validRegistration()
			tt.mutate(&cmd)

			_, err := NewRegisterUserHandler(newMemUserRepo()).Handle(cmd)
			assert.Error(t, err)
		})
	}
}

func TestRegisterUserRejectsDuplicates(t *testing.T) {
	repo := newMemUserRepo()
	handler := NewRegisterUserHandler(repo)

	_, err := handler.Handle(validRegistration())
	require.NoError(t, err)

	dup := validRegistration()
	dup.Email = "other@example.com"
	dup.Cedula = "002-7654321-0"
	_, err = handler.Handle(dup)
	assert.ErrorIs(t, err, domain.ErrUserExists, "duplicate username")

	dup = validRegistration()
	dup.Username = "otheruser"
	dup.Cedula = "002-7654321-0"
	_, err = handler.Handle(dup)
	assert.ErrorIs(t, err, domain.ErrUserExists, "duplicate email")

	dup = validRegistration()
	dup.Username = "otheruser"
	dup.Email = "other@example.com"
	_, err = handler.Handle(dup)
	assert.ErrorIs(t, err, domain.ErrUserExists, "duplicate cedula")
}

func TestLoginUser(t *testing.T) {
	repo := newMemUserRepo()
	_, err := NewRegisterUserHandler(repo).Handle(validRegistration())
	require.NoError(t, err)

	result, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "mlopez", Password: "s3cret-pass"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "mlopez", result.User.Username)
}

func TestLoginUserWrongPassword(t *testing.T) {
	repo := newMemUserRepo()
	_, err := NewRegisterUserHandler(repo).Handle(validRegistration())
	require.NoError(t, err)

	_, err = NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "mlopez", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUserUnknownUsername(t *testing.T) {
	_, err := NewLoginUserHandler(newMemUserRepo()).Handle(LoginUserCommand{Username: "ghost", Password: "whatever1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "lookup failure must not leak whether the user exists")
}

func TestLoginUserInactiveAccount(t *testing.T) {
	repo := newMemUserRepo()
	user, err := NewRegisterUserHandler(repo).Handle(validRegistration())
	require.NoError(t, err)

	inactive := false
	_, err = NewUpdateUserHandler(repo).Handle(UpdateUserCommand{ID: user.ID, IsActive: &inactive})
	require.NoError(t, err)

	_, err = NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "mlopez", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	repo := newMemUserRepo()
	user, err := NewRegisterUserHandler(repo).Handle(validRegistration())
	require.NoError(t, err)
	oldHash := user.Password

	newPass := "another-pass"
	updated, err := NewUpdateUserHandler(repo).Handle(UpdateUserCommand{ID: user.ID, Password: &newPass})
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, updated.Password)

	_, err = NewLoginUserHandler(repo).Handle(LoginUserCommand{Username: "mlopez", Password: "another-pass"})
	assert.NoError(t, err)
}

func TestDeleteUserScrubsPasswordFromSnapshot(t *testing.T) {
	repo := newMemUserRepo()
	user, err := NewRegisterUserHandler(repo).Handle(validRegistration())
	require.NoError(t, err)

	recorder := &captureRecorder{}
	require.NoError(t, NewDeleteUserHandler(repo, recorder).Handle(context.Background(), DeleteUserCommand{ID: user.ID}))

	require.Len(t, recorder.snapshots, 1)
	snapshot, ok := recorder.snapshots[0].(*domain.User)
	require.True(t, ok)
	assert.Empty(t, snapshot.Password, "bcrypt hash must not reach the audit log")
	assert.Equal(t, "users", recorder.tables[0])
}

type captureRecorder struct {
	tables    []string
	snapshots []interface{}
}

func (c *captureRecorder) RecordDeletion(ctx context.Context, entityTable string, recordID uint, snapshot interface{}) error {
	c.tables = append(c.tables, entityTable)
	c.snapshots = append(c.snapshots, snapshot)
	return nil
}
