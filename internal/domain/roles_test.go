package domain

import "testing"

func TestParseRole_CaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"admin", "Admin", "ADMIN", " admin "} {
		r, ok := ParseRole(in)
		if !ok || r != RoleAdmin {
			t.Fatalf("ParseRole(%q) = %q, %v; want admin, true", in, r, ok)
		}
	}

	for _, in := range []string{"DataCurator", "data_curator", "DATACURATOR"} {
		r, ok := ParseRole(in)
		if !ok || r != RoleDataCurator {
			t.Fatalf("ParseRole(%q) = %q, %v; want data_curator, true", in, r, ok)
		}
	}
}

func TestParseRole_Unknown(t *testing.T) {
	t.Parallel()

	if _, ok := ParseRole("superuser"); ok {
		t.Fatalf("expected unknown role to not match")
	}
	if _, ok := ParseRole(""); ok {
		t.Fatalf("expected empty role to not match")
	}
}

func TestRoleRank_Ordering(t *testing.T) {
	t.Parallel()

	if !(RoleRank(RoleAdmin) > RoleRank(RoleDataCurator) && RoleRank(RoleDataCurator) > RoleRank(RoleUser)) {
		t.Fatalf("expected admin > data_curator > user")
	}
	if RoleRank(Role("bogus")) != 0 {
		t.Fatalf("expected unknown role rank 0")
	}
}
