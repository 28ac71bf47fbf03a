package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccountState(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name string
		user User
		want AccountState
	}{
		{
			name: "fresh student is unverified",
			user: User{Role: RoleStudent},
			want: StateUnverified,
		},
		{
			name: "fresh tutor is unverified",
			user: User{Role: RoleTutor},
			want: StateUnverified,
		},
		{
			name: "verified student is approved without an approval record",
			user: User{Role: RoleStudent, EmailVerifiedAt: &now},
			want: StateApproved,
		},
		{
			name: "verified tutor awaits approval",
			user: User{Role: RoleTutor, EmailVerifiedAt: &now},
			want: StateVerifiedPendingApproval,
		},
		{
			name: "verified contributor awaits approval",
			user: User{Role: RoleContributor, EmailVerifiedAt: &now},
			want: StateVerifiedPendingApproval,
		},
		{
			name: "approved tutor is approved",
			user: User{Role: RoleTutor, EmailVerifiedAt: &now, ApprovedAt: &now},
			want: StateApproved,
		},
		{
			name: "approval without verification still reads unverified",
			user: User{Role: RoleTutor, ApprovedAt: &now},
			want: StateUnverified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.user.AccountState())
		})
	}
}

func TestRoleSelfRegistrable(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleStudent.SelfRegistrable())
	assert.True(t, RoleTutor.SelfRegistrable())
	assert.True(t, RoleContributor.SelfRegistrable())
	assert.False(t, RoleAdmin.SelfRegistrable())
	assert.False(t, Role("moderator").SelfRegistrable())
}
