package middlewares

import (
	"reflect"
	"testing"
)

func TestAllowedOrigins(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", defaultOrigins},
		{"*", defaultOrigins},
		{"https://app.emptrack.io/, https://admin.emptrack.io", []string{"https://app.emptrack.io", "https://admin.emptrack.io"}},
		{" , https://app.emptrack.io,", []string{"https://app.emptrack.io"}},
	}
	for _, tc := range cases {
		if got := allowedOrigins(tc.raw); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("allowedOrigins(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
