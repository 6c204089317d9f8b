package api

import (
	"context"
	"net/http"
)

// SignUpRequest carries the registration form. InstituteID is required
// by the backend for professor registrations.
type SignUpRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	InstituteID string `json:"instituteId,omitempty"`
}

// SignUpResponse is the registration outcome. When the server mandates
// two-factor enrollment it supplies the provisioning artifact; it never
// supplies a session token — a fresh account signs in separately.
type SignUpResponse struct {
	UserID        string `json:"userId"`
	TwoFARequired bool   `json:"twofaRequired"`
	QRCodeURL     string `json:"qrCodeUrl,omitempty"`
}

// SignInResponse is the credential-exchange outcome: either a usable
// token, or a two-factor requirement with the enrollment artifact.
type SignInResponse struct {
	Token         string `json:"token,omitempty"`
	TwoFARequired bool   `json:"twofaRequired"`
	QRCodeURL     string `json:"qrCodeUrl,omitempty"`
}

// VerifyOTPResponse carries the token issued after a successful
// one-time-code check.
type VerifyOTPResponse struct {
	Token string `json:"token"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// SignUp registers an account. Thrown-style: failures come back as a
// Go error carrying the server message.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResponse, error) {
	var out SignUpResponse
	if err := c.authJSON(ctx, http.MethodPost, "/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignIn exchanges credentials for either a session token or a
// two-factor challenge. Thrown-style.
func (c *Client) SignIn(ctx context.Context, email, password string) (*SignInResponse, error) {
	var out SignInResponse
	req := signInRequest{Email: email, Password: password}
	if err := c.authJSON(ctx, http.MethodPost, "/auth/signin", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP submits the one-time code for a pending two-factor
// challenge. Thrown-style.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (*VerifyOTPResponse, error) {
	var out VerifyOTPResponse
	req := verifyOTPRequest{Email: email, Code: code}
	if err := c.authJSON(ctx, http.MethodPost, "/auth/verify-otp", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
