package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func ctxWithRealIP(ip string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/admin/stats", nil)
	if ip != "" {
		c.Set("real_ip", ip)
	}
	return c
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	cases := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"172.16.4.5", true},
		{"192.168.0.9", true},
		{"127.0.0.1", true},
		{"8.8.8.8", false},
		{"203.0.113.7", false},
		{"not-an-ip", false},
	}
	for _, tc := range cases {
		if got := allow(ctxWithRealIP(tc.ip)); got != tc.want {
			t.Errorf("AllowPrivateIP(%q) = %v, want %v", tc.ip, got, tc.want)
		}
	}
}

func TestKeyByIPAndPathSeparatesEndpoints(t *testing.T) {
	key := KeyByIPAndPath()

	login := ctxWithRealIP("203.0.113.7")
	login.Request = httptest.NewRequest("POST", "/api/users/login", nil)
	register := ctxWithRealIP("203.0.113.7")
	register.Request = httptest.NewRequest("POST", "/api/users/register", nil)

	if key(login) == key(register) {
		t.Fatalf("login and register share key %q", key(login))
	}
}
