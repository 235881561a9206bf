package shell

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hospihub/adminkit/internal/config"
	"hospihub/adminkit/internal/cookie"
	"hospihub/adminkit/internal/httpclient"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestController(t *testing.T, handler http.Handler) *HeaderController {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.Config{
		API: config.APIConfig{
			BaseURL:    srv.URL + "/api/",
			Timeout:    5 * time.Second,
			Retries:    1,
			RetryDelay: time.Millisecond,
		},
		Cookies: config.CookiesConfig{AuthToken: "auth_token", CSRFToken: "csrftoken"},
	}
	client := httpclient.New(cfg, cookie.NewJar(), nil, nil)
	return NewHeaderController(client, nil)
}

func TestLoginFollowsServerRedirect(t *testing.T) {
	var received authActionRequest
	r := gin.New()
	r.POST("/api/auth/action/", func(c *gin.Context) {
		if err := c.ShouldBindJSON(&received); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":       "success",
			"message":      "Redirecting to login page",
			"redirect_url": "/portal/login",
		})
	})
	h := newTestController(t, r)

	if got := h.Login(context.Background()); got != "/portal/login" {
		t.Fatalf("Login = %q", got)
	}
	if received.Action != "login_redirect" {
		t.Fatalf("action = %q", received.Action)
	}
	if _, err := time.Parse(time.RFC3339, received.Timestamp); err != nil {
		t.Fatalf("timestamp %q not RFC3339: %v", received.Timestamp, err)
	}
}

func TestSignupAction(t *testing.T) {
	var received authActionRequest
	r := gin.New()
	r.POST("/api/auth/action/", func(c *gin.Context) {
		if err := c.ShouldBindJSON(&received); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "success", "redirect_url": "/portal/register"})
	})
	h := newTestController(t, r)

	if got := h.Signup(context.Background()); got != "/portal/register" {
		t.Fatalf("Signup = %q", got)
	}
	if received.Action != "signup_redirect" {
		t.Fatalf("action = %q", received.Action)
	}
}

func TestLoginDegradesSilentlyOnServerError(t *testing.T) {
	r := gin.New()
	r.POST("/api/auth/action/", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
	h := newTestController(t, r)

	if got := h.Login(context.Background()); got != "/auth/login" {
		t.Fatalf("Login fallback = %q", got)
	}
	if got := h.Signup(context.Background()); got != "/auth/register" {
		t.Fatalf("Signup fallback = %q", got)
	}
}

func TestLoginFallsBackWithoutRedirectURL(t *testing.T) {
	r := gin.New()
	r.POST("/api/auth/action/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "Unknown action"})
	})
	h := newTestController(t, r)

	if got := h.Login(context.Background()); got != "/auth/login" {
		t.Fatalf("Login fallback = %q", got)
	}
}
