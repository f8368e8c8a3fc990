package service

import (
	"context"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/careerlane/jobportal/internal/dto"
	apperrors "github.com/careerlane/jobportal/internal/errors"
	"github.com/careerlane/jobportal/internal/model"
	"github.com/careerlane/jobportal/pkg/hashing"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[uint]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (r *fakeUserRepo) UpdateDetails(ctx context.Context, id uint, updates map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if v, ok := updates["full_name"]; ok {
		user.FullName = v.(string)
	}
	if v, ok := updates["email"]; ok {
		user.Email = v.(string)
	}
	if v, ok := updates["location"]; ok {
		user.Location = v.(string)
	}
	return nil
}

type fakeTokenRepo struct {
	mu       sync.Mutex
	nextID   uint
	sessions map[string]*model.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{nextID: 1, sessions: make(map[string]*model.RefreshToken)}
}

func (r *fakeTokenRepo) Create(ctx context.Context, token *model.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = r.nextID
	r.nextID++
	stored := *token
	r.sessions[token.Token] = &stored
	return nil
}

func (r *fakeTokenRepo) ConsumeByToken(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[token]; !ok {
		return false, nil
	}
	delete(r.sessions, token)
	return true, nil
}

func (r *fakeTokenRepo) DeleteByUserID(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, token)
		}
	}
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (r *fakeTokenRepo) count(userID uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, session := range r.sessions {
		if session.UserID == userID {
			n++
		}
	}
	return n
}

func newUserServiceForTest(t *testing.T) (UserService, *fakeUserRepo, *fakeTokenRepo) {
	t.Helper()
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	hasher := hashing.NewHasher(2, bcrypt.MinCost)
	svc := NewUserService(users, tokens, NewTokenService(testJWTConfig()), hasher)
	return svc, users, tokens
}

func register(t *testing.T, svc UserService) dto.UserResponse {
	t.Helper()
	user, err := svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "Asha Patel",
		Email:    "asha@example.com",
		Password: "password123",
		Location: "Pune",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return *user
}

func TestRegister(t *testing.T) {
	svc, users, _ := newUserServiceForTest(t)

	resp := register(t, svc)
	if resp.ID == 0 {
		t.Error("registered user has zero id")
	}
	if resp.Email != "asha@example.com" {
		t.Errorf("Email = %q, want asha@example.com", resp.Email)
	}

	stored, err := users.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if stored.Password == "password123" {
		t.Error("password stored in plaintext")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)
	register(t, svc)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "Another Asha",
		Email:    "asha@example.com",
		Password: "password456",
	})
	if !apperrors.Is(err, apperrors.ErrEmailExists) {
		t.Errorf("Register with duplicate email = %v, want EMAIL_EXISTS", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newUserServiceForTest(t)
	registered := register(t, svc)

	session, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.AccessToken == "" || session.RefreshToken == "" {
		t.Error("login returned empty token pair")
	}
	if session.User.ID != registered.ID {
		t.Errorf("User.ID = %d, want %d", session.User.ID, registered.ID)
	}
	if tokens.count(registered.ID) != 1 {
		t.Errorf("stored sessions = %d, want 1", tokens.count(registered.ID))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)
	register(t, svc)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-password",
	})
	if !apperrors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Login with wrong password = %v, want INVALID_CREDENTIALS", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	if !apperrors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("Login with unknown email = %v, want USER_NOT_FOUND", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, tokens := newUserServiceForTest(t)
	registered := register(t, svc)

	session, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), session.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if pair.RefreshToken == session.RefreshToken {
		t.Error("refresh returned the same refresh token")
	}
	if tokens.count(registered.ID) != 1 {
		t.Errorf("stored sessions after rotation = %d, want 1", tokens.count(registered.ID))
	}

	// The consumed token must not work a second time.
	if _, err := svc.Refresh(context.Background(), session.RefreshToken); !apperrors.Is(err, apperrors.ErrStaleToken) {
		t.Errorf("Refresh with spent token = %v, want STALE_TOKEN", err)
	}
}

func TestConcurrentRefreshSingleWinner(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)
	register(t, svc)

	session, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	// Racing rotations of the same token must produce exactly one winner;
	// consuming the stored row is the single-use permit.
	const n = 8
	var wg sync.WaitGroup
	results := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Refresh(context.Background(), session.RefreshToken)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		switch {
		case err == nil:
			winners++
		case apperrors.Is(err, apperrors.ErrStaleToken):
		default:
			t.Errorf("unexpected refresh error: %v", err)
		}
	}
	if winners != 1 {
		t.Errorf("concurrent refresh winners = %d, want exactly 1", winners)
	}
}

func TestRefreshInvalidToken(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	if !apperrors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("Refresh with garbage token = %v, want INVALID_TOKEN", err)
	}
}

func TestLogoutRevokesAllSessions(t *testing.T) {
	svc, _, tokens := newUserServiceForTest(t)
	registered := register(t, svc)

	// Two logins means two live sessions.
	for i := 0; i < 2; i++ {
		if _, err := svc.Login(context.Background(), dto.LoginRequest{
			Email:    "asha@example.com",
			Password: "password123",
		}); err != nil {
			t.Fatalf("Login returned error: %v", err)
		}
	}
	if tokens.count(registered.ID) != 2 {
		t.Fatalf("stored sessions = %d, want 2", tokens.count(registered.ID))
	}

	if err := svc.Logout(context.Background(), registered.ID); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if tokens.count(registered.ID) != 0 {
		t.Errorf("stored sessions after logout = %d, want 0", tokens.count(registered.ID))
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)
	registered := register(t, svc)

	err := svc.ChangePassword(context.Background(), registered.ID, dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpassword456",
	})
	if err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}

	// The old password must stop working and the new one must take over.
	if _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "password123",
	}); !apperrors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("Login with old password = %v, want INVALID_CREDENTIALS", err)
	}
	if _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "asha@example.com",
		Password: "newpassword456",
	}); err != nil {
		t.Errorf("Login with new password returned error: %v", err)
	}
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)
	registered := register(t, svc)

	err := svc.ChangePassword(context.Background(), registered.ID, dto.ChangePasswordRequest{
		OldPassword: "wrong-password",
		NewPassword: "newpassword456",
	})
	if !apperrors.Is(err, apperrors.ErrIncorrectPassword) {
		t.Errorf("ChangePassword with wrong old password = %v, want INCORRECT_PASSWORD", err)
	}
}

func TestUpdateDetailsSparsePatch(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)
	registered := register(t, svc)

	newName := "Asha P. Sharma"
	updated, err := svc.UpdateDetails(context.Background(), registered.ID, dto.UpdateUserRequest{
		FullName: &newName,
	})
	if err != nil {
		t.Fatalf("UpdateDetails returned error: %v", err)
	}
	if updated.FullName != newName {
		t.Errorf("FullName = %q, want %q", updated.FullName, newName)
	}
	// Untouched fields keep their values.
	if updated.Email != "asha@example.com" {
		t.Errorf("Email = %q, want asha@example.com", updated.Email)
	}
	if updated.Location != "Pune" {
		t.Errorf("Location = %q, want Pune", updated.Location)
	}
}

func TestUpdateDetailsEmptyPatch(t *testing.T) {
	svc, _, _ := newUserServiceForTest(t)
	registered := register(t, svc)

	_, err := svc.UpdateDetails(context.Background(), registered.ID, dto.UpdateUserRequest{})
	if !apperrors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("UpdateDetails with no fields = %v, want BAD_REQUEST", err)
	}

	blank := "   "
	_, err = svc.UpdateDetails(context.Background(), registered.ID, dto.UpdateUserRequest{FullName: &blank})
	if !apperrors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("UpdateDetails with blank name = %v, want BAD_REQUEST", err)
	}
}
