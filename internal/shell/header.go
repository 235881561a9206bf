// Package shell wires the rendered admin page to the API client: the
// header login/signup actions and the data-attribute driven bindings for
// forms and delete buttons.
package shell

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hospihub/adminkit/internal/httpclient"
)

const (
	authActionPath = "auth/action/"

	actionLoginRedirect  = "login_redirect"
	actionSignupRedirect = "signup_redirect"

	fallbackLoginURL  = "/auth/login"
	fallbackSignupURL = "/auth/register"
)

type authActionRequest struct {
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

type authActionResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirect_url"`
}

// HeaderController drives the header login and signup buttons.
type HeaderController struct {
	client *httpclient.Client
	logger *zap.Logger

	// now is swapped out in tests.
	now func() time.Time
}

func NewHeaderController(client *httpclient.Client, logger *zap.Logger) *HeaderController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HeaderController{
		client: client,
		logger: logger.Named("shell"),
		now:    time.Now,
	}
}

// Login resolves the login redirect URL. Any failure degrades silently to
// the fixed fallback.
func (h *HeaderController) Login(ctx context.Context) string {
	return h.authAction(ctx, actionLoginRedirect, fallbackLoginURL)
}

// Signup resolves the signup redirect URL, falling back the same way.
func (h *HeaderController) Signup(ctx context.Context) string {
	return h.authAction(ctx, actionSignupRedirect, fallbackSignupURL)
}

func (h *HeaderController) authAction(ctx context.Context, action, fallback string) string {
	req := authActionRequest{
		Action:    action,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}

	res := h.client.Post(ctx, authActionPath, req)
	if !res.OK {
		h.logger.Warn("auth action failed, using fallback redirect",
			zap.String("action", action),
			zap.Int("status", res.Status),
			zap.String("fallback", fallback))
		return fallback
	}

	var resp authActionResponse
	if err := res.Decode(&resp); err != nil || resp.RedirectURL == "" {
		h.logger.Warn("auth action response missing redirect_url, using fallback",
			zap.String("action", action),
			zap.String("fallback", fallback))
		return fallback
	}
	return resp.RedirectURL
}
