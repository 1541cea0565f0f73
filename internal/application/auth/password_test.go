package auth

import (
	"context"
	"testing"

	"github.com/ekklesia/church-directory/internal/domain"
)

func TestPasswordChange_MissingUserID(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newSvcForTest(t)

	err := svc.PasswordChange(context.Background(), "", "old", "new")
	requireErrCode(t, err, "token_missing")
}

func TestPasswordChange_FailureCases(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newSvcForTest(t)
	users.put(domain.User{ID: "u1", Email: "e@x.com", PasswordHash: "hash:old", IsActive: true})
	users.put(domain.User{ID: "u2", Email: "i@x.com", PasswordHash: "hash:old", IsActive: false})

	cases := []struct {
		name    string
		userID  string
		current string
	}{
		{"unknown user", "missing", "old"},
		{"inactive user", "u2", "old"},
		{"wrong current password", "u1", "nope"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.PasswordChange(context.Background(), tc.userID, tc.current, "new")
			requireErrCode(t, err, "invalid_credentials")
		})
	}
}

// After a change, the new password logs in and the old one no longer does.
func TestPasswordChange_ThenLoginRoundTrip(t *testing.T) {
	t.Parallel()

	svc, users, _, _ := newSvcForTest(t)
	users.put(domain.User{ID: "u1", Email: "e@x.com", PasswordHash: "hash:old", Role: domain.RoleUser, IsActive: true})

	if err := svc.PasswordChange(context.Background(), "u1", "old", "new"); err != nil {
		t.Fatalf("change: %v", err)
	}

	if _, err := svc.Login(context.Background(), "e@x.com", "new"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	_, err := svc.Login(context.Background(), "e@x.com", "old")
	requireErrCode(t, err, "invalid_credentials")
}
