package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/2phishy/phishy-backend/internal/domain/entity"
	"github.com/2phishy/phishy-backend/pkg/helpers"
)

func newUserService() (*UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	jwt := helpers.NewJWTManager("test-access", "test-refresh", time.Hour, 24*time.Hour)
	svc := NewUserService(repo, jwt, nil, testLogger(), nil, nil, "", nil, "")
	svc.now = fixedNow
	return svc, repo
}

func register(t *testing.T, svc *UserService, username string, role entity.Role) *entity.User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "hunter2secret",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u
}

func TestRegisterDefaultsToStudent(t *testing.T) {
	svc, _ := newUserService()

	u, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "alice@example.com", Password: "hunter2secret"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Role != entity.RoleStudent {
		t.Errorf("role = %q, want student", u.Role)
	}
	if u.Status != entity.StatusActive {
		t.Errorf("status = %q, want active", u.Status)
	}
	if u.Password == "hunter2secret" {
		t.Error("password stored in plain text")
	}
}

func TestRegisterRejectsUnknownRoleAndDuplicates(t *testing.T) {
	svc, _ := newUserService()
	register(t, svc, "alice", entity.RoleStudent)

	if _, err := svc.Register(context.Background(), RegisterInput{Username: "bob", Email: "b@example.com", Password: "x", Role: "root"}); !errors.Is(err, entity.ErrInvalidRole) {
		t.Errorf("unknown role: got %v, want ErrInvalidRole", err)
	}
	if _, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "other@example.com", Password: "x"}); !errors.Is(err, entity.ErrDuplicateUsername) {
		t.Errorf("duplicate username: got %v, want ErrDuplicateUsername", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, repo := newUserService()
	u := register(t, svc, "alice", entity.RoleStudent)

	got, err := svc.Authenticate(context.Background(), "alice", "hunter2secret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("authenticated wrong user: %s", got.ID)
	}
	if got.LastLogin == nil {
		t.Error("last login not stamped")
	}
	stored, _ := repo.GetByID(u.ID)
	if stored.LastLogin == nil {
		t.Error("last login not persisted")
	}

	if _, err := svc.Authenticate(context.Background(), "alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody", "hunter2secret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginIssuesParsableTokens(t *testing.T) {
	svc, _ := newUserService()
	u := register(t, svc, "alice", entity.RoleStudent)

	_, pair, err := svc.Login(context.Background(), "alice", "hunter2secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != u.ID || claims.SessionID == "" {
		t.Errorf("claims = %+v", claims)
	}
	rclaims, err := svc.JWT.ParseRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("parse refresh token: %v", err)
	}
	if rclaims.SessionID != claims.SessionID {
		t.Error("access and refresh tokens must share the session id")
	}
}

func TestGetUserForPolicy(t *testing.T) {
	svc, _ := newUserService()
	alice := register(t, svc, "alice", entity.RoleStudent)
	bob := register(t, svc, "bob", entity.RoleStudent)
	admin := register(t, svc, "carol", entity.RoleAdmin)

	if _, err := svc.GetUserFor(alice, alice.ID); err != nil {
		t.Errorf("self view: %v", err)
	}
	if _, err := svc.GetUserFor(bob, alice.ID); !errors.Is(err, entity.ErrForbidden) {
		t.Errorf("cross view by student: got %v, want ErrForbidden", err)
	}
	if _, err := svc.GetUserFor(admin, alice.ID); err != nil {
		t.Errorf("cross view by admin: %v", err)
	}
}

func TestUpdateSelf(t *testing.T) {
	svc, _ := newUserService()
	u := register(t, svc, "alice", entity.RoleStudent)

	name := "alice2"
	got, err := svc.UpdateSelf(context.Background(), u.ID, SelfPatch{Username: &name})
	if err != nil {
		t.Fatalf("UpdateSelf: %v", err)
	}
	if got.Username != "alice2" {
		t.Errorf("username = %q", got.Username)
	}
	if got.Email != u.Email {
		t.Errorf("email changed unexpectedly: %q", got.Email)
	}
}

func TestAdminUpdateUserPolicies(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()
	superAdmin := register(t, svc, "root", entity.RoleSuperAdmin)
	admin := register(t, svc, "carol", entity.RoleAdmin)
	alice := register(t, svc, "alice", entity.RoleStudent)

	// Self role change denied even for super-admin.
	role := entity.RoleAdmin
	if _, err := svc.AdminUpdateUser(ctx, superAdmin, superAdmin.ID, AdminUserPatch{Role: &role}); !errors.Is(err, entity.ErrSelfRoleChange) {
		t.Errorf("self role change: got %v, want ErrSelfRoleChange", err)
	}

	// Only a super-admin may grant super-admin.
	super := entity.RoleSuperAdmin
	if _, err := svc.AdminUpdateUser(ctx, admin, alice.ID, AdminUserPatch{Role: &super}); !errors.Is(err, entity.ErrSuperAdminGrant) {
		t.Errorf("grant by admin: got %v, want ErrSuperAdminGrant", err)
	}
	if _, err := svc.AdminUpdateUser(ctx, superAdmin, alice.ID, AdminUserPatch{Role: &super}); err != nil {
		t.Errorf("grant by super-admin: %v", err)
	}

	// Self status change denied.
	status := entity.StatusSuspended
	if _, err := svc.AdminUpdateUser(ctx, admin, admin.ID, AdminUserPatch{Status: &status}); !errors.Is(err, entity.ErrSelfStatusChange) {
		t.Errorf("self status change: got %v, want ErrSelfStatusChange", err)
	}
	if got, err := svc.UpdateStatus(ctx, admin, alice.ID, entity.StatusSuspended); err != nil || got.Status != entity.StatusSuspended {
		t.Errorf("status change of other: %v, %+v", err, got)
	}

	bad := entity.Role("root")
	if _, err := svc.AdminUpdateUser(ctx, admin, alice.ID, AdminUserPatch{Role: &bad}); !errors.Is(err, entity.ErrInvalidRole) {
		t.Errorf("invalid role: got %v, want ErrInvalidRole", err)
	}
}

func TestDeleteUser(t *testing.T) {
	svc, repo := newUserService()
	admin := register(t, svc, "carol", entity.RoleAdmin)
	alice := register(t, svc, "alice", entity.RoleStudent)

	if err := svc.DeleteUser(admin, admin.ID); !errors.Is(err, entity.ErrSelfDelete) {
		t.Errorf("self delete: got %v, want ErrSelfDelete", err)
	}
	if err := svc.DeleteUser(admin, alice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(alice.ID); !errors.Is(err, entity.ErrUserNotFound) {
		t.Error("user still present after delete")
	}
	if err := svc.DeleteUser(admin, alice.ID); !errors.Is(err, entity.ErrUserNotFound) {
		t.Errorf("double delete: got %v, want ErrUserNotFound", err)
	}
}

func TestListUsersByRoleValidates(t *testing.T) {
	svc, _ := newUserService()
	register(t, svc, "alice", entity.RoleStudent)
	register(t, svc, "carol", entity.RoleAdmin)

	students, err := svc.ListUsersByRole(entity.RoleStudent)
	if err != nil || len(students) != 1 {
		t.Errorf("students: %v, %d rows", err, len(students))
	}
	if _, err := svc.ListUsersByRole("root"); !errors.Is(err, entity.ErrInvalidRole) {
		t.Errorf("invalid role: got %v, want ErrInvalidRole", err)
	}
}

func TestUserStats(t *testing.T) {
	svc, _ := newUserService()
	register(t, svc, "alice", entity.RoleStudent)
	register(t, svc, "bob", entity.RoleStudent)
	register(t, svc, "carol", entity.RoleAdmin)

	stats, err := svc.UserStats()
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if stats.TotalUsers != 3 || stats.Students != 2 || stats.Admins != 1 || stats.ActiveUsers != 3 {
		t.Errorf("stats = %+v", stats)
	}
}
