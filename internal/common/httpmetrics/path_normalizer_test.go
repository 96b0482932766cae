package httpmetrics

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "/"},
		{"/", "/"},
		{"/api/users", "/api/users"},
		{"/api/users/", "/api/users"},
		{"/api/state", "/api/state"},
		{"/ws", "/ws"},
		{"/metrics", "/metrics"},
		{"/api/users/42", "/api/users/{param}"},
		{"/api/users/0b6e4f1c-2f7a-4d1e-9c3b-6a2f0e8d9b71", "/api/users/{param}"},
		{"/wp-admin/setup.php", "/{unmatched}"},
		{"/trace/0b6e4f1c-2f7a-4d1e-9c3b-6a2f0e8d9b71/x", "/{unmatched}"},
	}
	for _, tc := range cases {
		if got := NormalizePath(tc.in); got != tc.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
