package auth

import "testing"

func TestEveryRoleHasPermissions(t *testing.T) {
	for _, role := range Roles {
		perms, ok := RolePermissions[role]
		if !ok || len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
	}
}

func TestRolePermissionsAreKnown(t *testing.T) {
	known := make(map[string]bool, len(DefaultPermissions))
	for _, p := range DefaultPermissions {
		known[p] = true
	}
	for role, perms := range RolePermissions {
		for _, p := range perms {
			if !known[p] {
				t.Fatalf("role %s grants unknown permission %s", role, p)
			}
		}
	}
}

func TestOnlySystemAdminHasAdminPermission(t *testing.T) {
	for role, perms := range RolePermissions {
		for _, p := range perms {
			if p == PermSystemAdmin && role != RoleSystemAdmin {
				t.Fatalf("role %s must not hold %s", role, PermSystemAdmin)
			}
		}
	}
}
