package middleware

import (
	"Carnival/models"
	"testing"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		op   string
		role string
		want bool
	}{
		{OpCheckin, models.RoleStaff, true},
		{OpCheckin, models.RoleRegister, true},
		{OpCheckin, models.RoleUser, false},
		{OpGrantPoints, models.RoleStaff, true},
		{OpGrantPoints, models.RoleRegister, false},
		{OpClaimTicket, models.RoleRegister, true},
		{OpClaimTicket, models.RoleNone, false},
		{OpToggleVote, models.RoleAdmin, true},
		{OpToggleVote, models.RoleStaff, false},
		{OpAdjustPoints, models.RoleSuperAdmin, true},
		{OpAdjustPoints, models.RoleUser, false},
		{OpSetRole, models.RoleAdmin, true},
		{OpSetRole, models.RoleStaff, false},
		{OpListAudit, models.RoleAdmin, true},
		{OpListAudit, models.RoleUser, false},
		{"unknown.op", models.RoleSuperAdmin, false},
		{OpPodium, "", false},
	}

	for _, tc := range cases {
		if got := Allowed(tc.op, tc.role); got != tc.want {
			t.Errorf("Allowed(%q, %q) = %v, want %v", tc.op, tc.role, got, tc.want)
		}
	}
}
