// Package authflow drives the sign-in, sign-up and one-time-code
// screens through credential submission, the optional two-factor
// challenge, and token acquisition.
package authflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/campusrate/campusrate-go/internal/api"
)

// State is the flow's position in the authentication state machine.
type State int

const (
	// StateIdle: no attempt in progress. A failed credential submission
	// lands back here with a displayable error.
	StateIdle State = iota
	// StateSubmittingCredentials: sign-in or sign-up request in flight.
	StateSubmittingCredentials
	// StateTwoFactorPending: the server mandated a one-time-code check;
	// the enrollment artifact, when supplied, is available for display.
	StateTwoFactorPending
	// StateSubmittingOTP: one-time-code verification in flight.
	StateSubmittingOTP
	// StateAuthenticated: token obtained and handed to the session
	// store. Terminal for this flow instance.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmittingCredentials:
		return "submitting-credentials"
	case StateTwoFactorPending:
		return "two-factor-pending"
	case StateSubmittingOTP:
		return "submitting-otp"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// AuthService is the slice of the backend client the flow needs.
// *api.Client satisfies it.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*api.SignInResponse, error)
	SignUp(ctx context.Context, req api.SignUpRequest) (*api.SignUpResponse, error)
	VerifyOTP(ctx context.Context, email, code string) (*api.VerifyOTPResponse, error)
}

// TokenSink receives the token on successful authentication.
// *session.Store satisfies it.
type TokenSink interface {
	SetToken(raw string) error
}

// Flow is one authentication attempt. It is not safe for concurrent
// use: like the UI it models, all transitions happen on one goroutine,
// after the in-flight request resolves.
type Flow struct {
	svc      AuthService
	sessions TokenSink
	logger   *zap.Logger

	state        State
	pendingEmail string
	enrollment   string
	fieldErrors  FieldErrors
	errMessage   string
}

// New creates an idle flow.
func New(svc AuthService, sessions TokenSink, logger *zap.Logger) *Flow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{svc: svc, sessions: sessions, logger: logger}
}

// State returns the current flow state.
func (f *Flow) State() State { return f.state }

// FieldErrors returns the field-level validation errors of the last
// submission, keyed by field name. Nil when validation passed.
func (f *Flow) FieldErrors() FieldErrors { return f.fieldErrors }

// ErrorMessage returns the general-purpose error from the last failed
// service call, distinct from field-level validation errors.
func (f *Flow) ErrorMessage() string { return f.errMessage }

// EnrollmentURL returns the two-factor enrollment artifact (a
// provisioning QR payload) when the server supplied one.
func (f *Flow) EnrollmentURL() string { return f.enrollment }

// PendingEmail returns the email a pending two-factor challenge belongs to.
func (f *Flow) PendingEmail() string { return f.pendingEmail }

// Cancel abandons the attempt. No partial state persists; the next
// submission starts fresh.
func (f *Flow) Cancel() {
	f.reset()
}

func (f *Flow) reset() {
	f.state = StateIdle
	f.pendingEmail = ""
	f.enrollment = ""
	f.fieldErrors = nil
	f.errMessage = ""
}

// SignIn validates and submits credentials. Validation failures
// short-circuit without contacting the server. A response carrying a
// usable token authenticates immediately; a two-factor requirement
// parks the flow in StateTwoFactorPending. Deployments without 2FA take
// the first path.
func (f *Flow) SignIn(ctx context.Context, email, password string) State {
	f.reset()

	if errs := ValidateSignIn(email, password); errs != nil {
		f.fieldErrors = errs
		return f.state
	}

	email = SanitizeEmail(email)
	f.state = StateSubmittingCredentials

	resp, err := f.svc.SignIn(ctx, email, password)
	if err != nil {
		f.logger.Info("sign-in rejected", zap.String("email", email), zap.Error(err))
		f.state = StateIdle
		f.errMessage = err.Error()
		return f.state
	}

	switch {
	case resp.TwoFARequired:
		f.state = StateTwoFactorPending
		f.pendingEmail = email
		f.enrollment = resp.QRCodeURL
	case resp.Token != "":
		f.authenticate(resp.Token)
	default:
		// Neither a token nor a challenge: the server broke contract.
		f.state = StateIdle
		f.errMessage = "sign-in returned no session"
	}

	return f.state
}

// SignUp validates and submits the registration form. A two-factor
// enrollment requirement parks the flow in StateTwoFactorPending with
// the artifact on display; otherwise the flow ends unauthenticated —
// the account exists but sign-in is a separate step. This asymmetry
// with SignIn is deliberate.
func (f *Flow) SignUp(ctx context.Context, form SignUpForm) State {
	f.reset()

	if errs := ValidateSignUp(form); errs != nil {
		f.fieldErrors = errs
		return f.state
	}

	email := SanitizeEmail(form.Email)
	f.state = StateSubmittingCredentials

	resp, err := f.svc.SignUp(ctx, api.SignUpRequest{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Email:       email,
		Password:    form.Password,
		Role:        string(form.Role),
		InstituteID: form.InstituteID,
	})
	if err != nil {
		f.logger.Info("sign-up rejected", zap.String("email", email), zap.Error(err))
		f.state = StateIdle
		f.errMessage = err.Error()
		return f.state
	}

	if resp.TwoFARequired {
		f.state = StateTwoFactorPending
		f.pendingEmail = email
		f.enrollment = resp.QRCodeURL
	} else {
		f.state = StateIdle
	}

	return f.state
}

// SubmitOTP verifies the entered one-time code for the pending
// challenge. Failure keeps the flow in StateTwoFactorPending with an
// error; success authenticates.
func (f *Flow) SubmitOTP(ctx context.Context, code string) State {
	if f.state != StateTwoFactorPending {
		f.errMessage = "no two-factor challenge pending"
		return f.state
	}

	f.errMessage = ""
	f.state = StateSubmittingOTP

	resp, err := f.svc.VerifyOTP(ctx, f.pendingEmail, code)
	if err != nil {
		f.logger.Info("one-time code rejected", zap.String("email", f.pendingEmail), zap.Error(err))
		f.state = StateTwoFactorPending
		f.errMessage = err.Error()
		return f.state
	}

	if resp.Token == "" {
		f.state = StateTwoFactorPending
		f.errMessage = "verification returned no session"
		return f.state
	}

	f.authenticate(resp.Token)
	return f.state
}

func (f *Flow) authenticate(raw string) {
	if err := f.sessions.SetToken(raw); err != nil {
		f.logger.Error("failed to persist session token", zap.Error(err))
		f.state = StateIdle
		f.errMessage = "failed to persist session"
		return
	}
	f.state = StateAuthenticated
	f.fieldErrors = nil
	f.errMessage = ""
}
