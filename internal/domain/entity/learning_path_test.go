package entity

import (
	"errors"
	"testing"
)

func TestPriorityForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  Priority
	}{
		{0, PriorityHigh},
		{0.3, PriorityHigh},
		{0.45, PriorityHigh},
		{0.46, PriorityModerate},
		{0.5, PriorityModerate},
		{0.85, PriorityModerate},
		{0.86, PriorityLow},
		{1, PriorityLow},
	}
	for _, c := range cases {
		got, err := PriorityForScore(c.score)
		if err != nil {
			t.Fatalf("PriorityForScore(%v): unexpected error %v", c.score, err)
		}
		if got != c.want {
			t.Errorf("PriorityForScore(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestPriorityForScoreOutOfRange(t *testing.T) {
	for _, score := range []float64{-0.01, 1.01, 2} {
		if _, err := PriorityForScore(score); !errors.Is(err, ErrScoreOutOfRange) {
			t.Errorf("PriorityForScore(%v) error = %v, want ErrScoreOutOfRange", score, err)
		}
	}
}

func TestRoleLevels(t *testing.T) {
	if !RoleSuperAdmin.AtLeast(RoleAdmin) {
		t.Error("super-admin should satisfy admin requirement")
	}
	if !RoleAdmin.AtLeast(RoleStudent) {
		t.Error("admin should satisfy student requirement")
	}
	if RoleStudent.AtLeast(RoleAdmin) {
		t.Error("student should not satisfy admin requirement")
	}
	if Role("ghost").AtLeast(RoleStudent) {
		t.Error("unknown role should rank below every real role")
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("super-admin")
	if err != nil || r != RoleSuperAdmin {
		t.Fatalf("ParseRole(super-admin) = %v, %v", r, err)
	}
	if _, err := ParseRole("root"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("ParseRole(root) error = %v, want ErrInvalidRole", err)
	}
}

func TestParseAccountStatus(t *testing.T) {
	s, err := ParseAccountStatus("suspended")
	if err != nil || s != StatusSuspended {
		t.Fatalf("ParseAccountStatus(suspended) = %v, %v", s, err)
	}
	if _, err := ParseAccountStatus("banned"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("ParseAccountStatus(banned) error = %v, want ErrInvalidStatus", err)
	}
}
