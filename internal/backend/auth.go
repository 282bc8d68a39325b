package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
)

// Auth endpoints live outside /api; CAPTCHA verification and session
// issuance are entirely backend-side.
const (
	pathSignIn         = "/auth/sign-in/email"
	pathSignUp         = "/auth/sign-up/email"
	pathForgotPassword = "/auth/forgot-password"
	pathSignOut        = "/auth/sign-out"

	captchaHeader = "x-captcha-response"
)

// SignInResult carries what the backend handed back on a successful
// sign-in: an optional bearer token and the session cookies to relay to the
// browser.
type SignInResult struct {
	Token      string
	SetCookies []string
}

// SignIn posts credentials plus the CAPTCHA token to the sign-in endpoint.
func (c *Client) SignIn(ctx context.Context, email, password, captchaToken string) (SignInResult, error) {
	payload := map[string]string{"email": email, "password": password}
	body, _ := json.Marshal(payload)

	headers := http.Header{}
	if captchaToken != "" {
		headers.Set(captchaHeader, captchaToken)
	}

	resp, err := c.do(ctx, http.MethodPost, pathSignIn, bytes.NewReader(body), "application/json", headers)
	if err != nil {
		return SignInResult{}, err
	}

	var parsed struct {
		Token string `json:"token"`
	}
	resp.DecodeLenient(&parsed)

	return SignInResult{
		Token:      parsed.Token,
		SetCookies: resp.Header.Values("Set-Cookie"),
	}, nil
}

// SignUp posts registration details plus the CAPTCHA token.
func (c *Client) SignUp(ctx context.Context, name, email, password, captchaToken string) error {
	payload := map[string]string{"name": name, "email": email, "password": password}
	body, _ := json.Marshal(payload)

	headers := http.Header{}
	if captchaToken != "" {
		headers.Set(captchaHeader, captchaToken)
	}

	_, err := c.do(ctx, http.MethodPost, pathSignUp, bytes.NewReader(body), "application/json", headers)
	return err
}

// ForgotPassword posts the email and new password. There is no separate
// reset-token flow; the backend decides whether to accept.
func (c *Client) ForgotPassword(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	_, err := c.sendJSON(ctx, http.MethodPost, pathForgotPassword, payload, nil)
	return err
}

// SignOut tears down the backend session.
func (c *Client) SignOut(ctx context.Context) error {
	_, err := c.sendJSON(ctx, http.MethodPost, pathSignOut, nil, nil)
	return err
}
