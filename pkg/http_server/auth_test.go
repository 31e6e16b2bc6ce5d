package http_server

import "testing"

func TestRoleForToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected UserRole
	}{
		{name: "operator prefix", token: "op_9f2c", expected: UserRoleOperator},
		{name: "admin prefix", token: "admin_11aa", expected: UserRoleAdmin},
		{name: "plain token", token: "commuter-token", expected: UserRoleCommuter},
		{name: "operator prefix mid-token", token: "xop_123", expected: UserRoleCommuter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if role := roleForToken(tt.token); role != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, role)
			}
		})
	}
}
