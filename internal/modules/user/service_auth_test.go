package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates an unverified account", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		u, err := env.svc.Register(context.Background(), "Ada", "Ada@Example.com", "password123", RoleTutor)
		require.NoError(t, err)

		assert.Equal(t, "ada@example.com", u.Email, "email is stored lowercased")
		assert.Equal(t, RoleTutor, u.Role)
		assert.Nil(t, u.EmailVerifiedAt)
		assert.Nil(t, u.ApprovedAt)
		assert.Equal(t, StateUnverified, u.AccountState())
		assert.NotEqual(t, "password123", u.PasswordHash)
	})

	t.Run("rejects the admin role", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		_, err := env.svc.Register(context.Background(), "Eve", "eve@example.com", "password123", RoleAdmin)
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("rejects a duplicate email regardless of case", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, &User{ID: "u1", Email: "taken@example.com", Role: RoleStudent})

		_, err := env.svc.Register(context.Background(), "Bob", "TAKEN@example.com", "password123", RoleStudent)
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestLoginGate(t *testing.T) {
	t.Parallel()

	hash := mustHash(t, "correct-horse")

	unverifiedTutor := &User{ID: "u1", Email: "tutor@example.com", PasswordHash: hash, Role: RoleTutor}
	verifiedTutor := &User{ID: "u2", Email: "verified@example.com", PasswordHash: hash, Role: RoleTutor,
		EmailVerifiedAt: ptrTime(testClock)}
	approvedTutor := &User{ID: "u3", Email: "approved@example.com", PasswordHash: hash, Role: RoleTutor,
		EmailVerifiedAt: ptrTime(testClock), ApprovedAt: ptrTime(testClock)}
	verifiedStudent := &User{ID: "u4", Email: "student@example.com", PasswordHash: hash, Role: RoleStudent,
		EmailVerifiedAt: ptrTime(testClock)}

	tests := []struct {
		name    string
		email   string
		pass    string
		wantErr error
	}{
		{"unknown email", "nobody@example.com", "correct-horse", ErrInvalidCredentials},
		{"wrong password", "approved@example.com", "wrong", ErrInvalidCredentials},
		{"unverified email", "tutor@example.com", "correct-horse", ErrEmailNotVerified},
		{"verified but unapproved tutor", "verified@example.com", "correct-horse", ErrPendingApproval},
		{"approved tutor", "approved@example.com", "correct-horse", nil},
		{"verified student needs no approval record", "student@example.com", "correct-horse", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, unverifiedTutor, verifiedTutor, approvedTutor, verifiedStudent)

			u, token, err := env.svc.Login(context.Background(), tt.email, tt.pass, "go-test", "127.0.0.1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, u)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, u)
			assert.NotEmpty(t, token)
		})
	}

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, approvedTutor)

		_, _, errUnknown := env.svc.Login(context.Background(), "ghost@example.com", "whatever", "", "")
		_, _, errWrongPass := env.svc.Login(context.Background(), "approved@example.com", "whatever", "", "")
		assert.Equal(t, errUnknown, errWrongPass)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, &User{
		ID: "u1", Email: "a@example.com", PasswordHash: mustHash(t, "pw-123456"),
		Role: RoleStudent, EmailVerifiedAt: ptrTime(testClock),
	})

	_, token, err := env.svc.Login(context.Background(), "a@example.com", "pw-123456", "", "")
	require.NoError(t, err)

	require.NoError(t, env.svc.Logout(context.Background(), token))
	_, err = env.sessions.GetAndExtend(context.Background(), token)
	assert.Error(t, err, "session is revoked server-side")
}

func TestApprove(t *testing.T) {
	t.Parallel()

	admin := &User{ID: "admin", Email: "admin@example.com", Role: RoleAdmin,
		EmailVerifiedAt: ptrTime(testClock), ApprovedAt: ptrTime(testClock)}
	tutor := &User{ID: "t1", Email: "t1@example.com", Role: RoleTutor,
		EmailVerifiedAt: ptrTime(testClock)}
	student := &User{ID: "s1", Email: "s1@example.com", Role: RoleStudent}

	t.Run("admin approves a pending tutor", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, admin, tutor)

		require.NoError(t, env.svc.Approve(context.Background(), "admin", "t1"))

		got := env.repo.get("t1")
		require.NotNil(t, got.ApprovedAt)
		assert.Equal(t, StateApproved, got.AccountState())
	})

	t.Run("approving twice is a no-op success", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, admin, tutor)

		require.NoError(t, env.svc.Approve(context.Background(), "admin", "t1"))
		first := env.repo.get("t1").ApprovedAt

		require.NoError(t, env.svc.Approve(context.Background(), "admin", "t1"))
		assert.Equal(t, first, env.repo.get("t1").ApprovedAt, "timestamp not overwritten")
	})

	t.Run("non-admin actor is forbidden", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, admin, tutor, student)

		err := env.svc.Approve(context.Background(), "s1", "t1")
		assert.ErrorIs(t, err, ErrForbidden)
		assert.Nil(t, env.repo.get("t1").ApprovedAt)
	})

	t.Run("unverified target cannot be approved", func(t *testing.T) {
		t.Parallel()
		unverified := &User{ID: "t2", Email: "t2@example.com", Role: RoleTutor}
		env := newTestEnv(t, admin, unverified)

		err := env.svc.Approve(context.Background(), "admin", "t2")
		assert.ErrorIs(t, err, ErrEmailNotVerified)
		assert.Nil(t, env.repo.get("t2").ApprovedAt)
	})

	t.Run("unknown target", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, admin)

		err := env.svc.Approve(context.Background(), "admin", "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
