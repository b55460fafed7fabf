package user

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users  map[int64]user.User
	nextID int64

	bootstrap sync.Mutex
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]user.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, filter user.ListUsersFilter) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if filter.ActiveOnly && !u.IsActive {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	u, ok := f.users[req.ID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) SetActive(ctx context.Context, id int64, active bool) (user.User, error) {
	return f.Update(ctx, user.UpdateUserRequest{ID: id, IsActive: &active})
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) ExistsByEmailOrEmployeeID(ctx context.Context, email, employeeID string) (bool, bool, error) {
	var emailTaken, idTaken bool
	for _, u := range f.users {
		emailTaken = emailTaken || u.Email == email
		idTaken = idTaken || u.EmployeeID == employeeID
	}
	return emailTaken, idTaken, nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, role user.Role) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// LockAdminBootstrap holds bootstrap until the passthroughTx that owns ctx ends.
func (f *fakeUserRepo) LockAdminBootstrap(ctx context.Context) error {
	held, ok := ctx.Value(txLocksKey{}).(*[]func())
	if !ok {
		return errors.New("advisory lock requested outside a transaction")
	}
	f.bootstrap.Lock()
	*held = append(*held, f.bootstrap.Unlock)
	return nil
}

type txLocksKey struct{}

// passthroughTx runs fn directly and releases the locks taken inside it.
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	var held []func()
	defer func() {
		for _, unlock := range held {
			unlock()
		}
	}()
	return fn(context.WithValue(ctx, txLocksKey{}, &held))
}

func validCreateRequest() user.CreateUserRequest {
	return user.CreateUserRequest{
		EmployeeID: "EMP001",
		Name:       "Ayesha Khan",
		Email:      "Ayesha@Example.com",
		Password:   "secret123",
	}
}

func TestCreate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(passthroughTx{}, repo)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "employee", resp.Role)
	assert.Equal(t, "ayesha@example.com", resp.Email)
	assert.True(t, resp.IsActive)

	stored := repo.users[resp.ID]
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestCreate_Duplicates(t *testing.T) {
	svc := NewUserService(passthroughTx{}, newFakeUserRepo())
	ctx := context.Background()
	_, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	req := validCreateRequest()
	req.EmployeeID = "EMP002"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	req = validCreateRequest()
	req.Email = "other@example.com"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, user.ErrEmployeeIDExists)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewUserService(passthroughTx{}, newFakeUserRepo())

	tests := []struct {
		name  string
		mut   func(*user.CreateUserRequest)
		field string
	}{
		{"short employee id", func(r *user.CreateUserRequest) { r.EmployeeID = "E1" }, "employee_id"},
		{"short name", func(r *user.CreateUserRequest) { r.Name = "A" }, "name"},
		{"bad email", func(r *user.CreateUserRequest) { r.Email = "not-an-email" }, "email"},
		{"short password", func(r *user.CreateUserRequest) { r.Password = "12345" }, "password"},
		{"unknown role", func(r *user.CreateUserRequest) { r.Role = "owner" }, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mut(&req)

			_, err := svc.Create(context.Background(), req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}
}

func TestCreateAdmin_OnlyOnce(t *testing.T) {
	svc := NewUserService(passthroughTx{}, newFakeUserRepo())
	ctx := context.Background()

	req := validCreateRequest()
	req.Role = "employee" // ignored
	resp, err := svc.CreateAdmin(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)

	req.EmployeeID, req.Email = "ADM002", "second@example.com"
	_, err = svc.CreateAdmin(ctx, req)
	assert.ErrorIs(t, err, user.ErrAdminAlreadyExists)
}

func TestCreateAdmin_ConcurrentBootstrap(t *testing.T) {
	svc := NewUserService(passthroughTx{}, newFakeUserRepo())
	ctx := context.Background()

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validCreateRequest()
			req.EmployeeID = fmt.Sprintf("ADM%03d", i)
			req.Email = fmt.Sprintf("admin%d@example.com", i)

			_, err := svc.CreateAdmin(ctx, req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, user.ErrAdminAlreadyExists):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, callers-1, conflicts)
}

func TestUpdateActivateDelete(t *testing.T) {
	svc := NewUserService(passthroughTx{}, newFakeUserRepo())
	ctx := context.Background()
	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	name, role := "Ayesha K.", "manager"
	updated, err := svc.Update(ctx, user.UpdateUserRequest{ID: created.ID, Name: &name, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "Ayesha K.", updated.Name)
	assert.Equal(t, "manager", updated.Role)

	deactivated, err := svc.Deactivate(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	active, err := svc.List(ctx, user.ListUsersFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, active)

	activated, err := svc.Activate(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, activated.IsActive)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID, created.ID), user.ErrCannotDeleteSelf)
	require.NoError(t, svc.Delete(ctx, 999, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
