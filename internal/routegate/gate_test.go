package routegate

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/campusrate/campusrate-go/internal/session"
	"github.com/campusrate/campusrate-go/internal/token"
)

func userWithRole(role token.Role) *token.CurrentUser {
	return &token.CurrentUser{
		ID:        "u-1",
		Email:     "a@b.com",
		Name:      "Ada Byron",
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestDecidePublicRoutes(t *testing.T) {
	paths := map[string]View{
		"/":                ViewHome,
		"/institutes":      ViewInstituteList,
		"/institutes/i-1":  ViewInstituteDetail,
		"/professors":      ViewProfessorList,
		"/professors/p-1":  ViewProfessorDetail,
		"/signin":          ViewSignIn,
		"/signup":          ViewSignUp,
	}

	users := map[string]*token.CurrentUser{
		"anonymous": nil,
		"student":   userWithRole(token.RoleStudent),
		"professor": userWithRole(token.RoleProfessor),
		"admin":     userWithRole(token.RoleAdmin),
	}

	for path, want := range paths {
		for name, user := range users {
			d := Decide(path, user)
			if d.View != want {
				t.Errorf("Decide(%q, %s) = %v, want %v", path, name, d.View, want)
			}
			if d.RedirectTo != "" {
				t.Errorf("Decide(%q, %s) redirects to %q, public routes never redirect", path, name, d.RedirectTo)
			}
		}
	}
}

func TestDecideReviewForm(t *testing.T) {
	const path = "/professors/p-1/review"

	tests := []struct {
		name string
		user *token.CurrentUser
		want View
	}{
		{"anonymous gets placeholder", nil, ViewUnauthorized},
		{"student gets form", userWithRole(token.RoleStudent), ViewReviewForm},
		{"professor gets placeholder", userWithRole(token.RoleProfessor), ViewUnauthorized},
		{"admin gets placeholder", userWithRole(token.RoleAdmin), ViewUnauthorized},
		{"unknown role is an error", userWithRole(token.Role("root")), ViewRoleError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(path, tt.user)
			if d.View != tt.want {
				t.Errorf("Decide(%q) = %v, want %v", path, d.View, tt.want)
			}
			if d.RedirectTo != "" {
				t.Errorf("review gate must render in place, got redirect to %q", d.RedirectTo)
			}
		})
	}
}

func TestDecideProfileDispatch(t *testing.T) {
	tests := []struct {
		name         string
		user         *token.CurrentUser
		want         View
		wantRedirect string
	}{
		{"student", userWithRole(token.RoleStudent), ViewStudentProfile, ""},
		{"professor", userWithRole(token.RoleProfessor), ViewProfessorProfile, ""},
		{"admin", userWithRole(token.RoleAdmin), ViewAdminProfile, ""},
		{"anonymous redirects to sign-in", nil, ViewSignIn, "/signin"},
		{"unknown role never falls through to admin", userWithRole(token.Role("root")), ViewRoleError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide("/profile", tt.user)
			if d.View != tt.want {
				t.Errorf("Decide(/profile) = %v, want %v", d.View, tt.want)
			}
			if d.RedirectTo != tt.wantRedirect {
				t.Errorf("RedirectTo = %q, want %q", d.RedirectTo, tt.wantRedirect)
			}
		})
	}
}

func TestSignedInOnlyRoutesAbsentWhenAnonymous(t *testing.T) {
	for _, path := range []string{"/notifications", "/admin"} {
		d := Decide(path, nil)
		if d.View != ViewNotFound {
			t.Errorf("Decide(%q, anonymous) = %v, want not-found (route absent, not forbidden)", path, d.View)
		}
	}
}

func TestNotificationsForSignedIn(t *testing.T) {
	for _, role := range []token.Role{token.RoleStudent, token.RoleProfessor, token.RoleAdmin} {
		d := Decide("/notifications", userWithRole(role))
		if d.View != ViewNotifications {
			t.Errorf("Decide(/notifications, %s) = %v, want notifications", role, d.View)
		}
	}
}

func TestAdminDashboardRequiresAdminRole(t *testing.T) {
	tests := []struct {
		role token.Role
		want View
	}{
		{token.RoleAdmin, ViewAdminDashboard},
		{token.RoleStudent, ViewUnauthorized},
		{token.RoleProfessor, ViewUnauthorized},
		{token.Role("root"), ViewRoleError},
	}

	for _, tt := range tests {
		d := Decide("/admin", userWithRole(tt.role))
		if d.View != tt.want {
			t.Errorf("Decide(/admin, %s) = %v, want %v", tt.role, d.View, tt.want)
		}
	}
}

func TestDecideUnknownPaths(t *testing.T) {
	for _, path := range []string{"/nope", "/institutes/i-1/extra", "/professors/p-1/reviews/r-1/x", "/admin/users"} {
		if d := Decide(path, userWithRole(token.RoleAdmin)); d.View != ViewNotFound {
			t.Errorf("Decide(%q) = %v, want not-found", path, d.View)
		}
	}
}

func TestSignOutClearsSessionBeforeRendering(t *testing.T) {
	store := session.NewStore(filepath.Join(t.TempDir(), "session"), nil)
	signer := token.NewSigner("test-secret-key-minimum-32-chars", time.Hour)
	raw, _, err := signer.Sign("u-1", "a@b.com", "Ada Byron", token.RoleStudent)
	if err != nil {
		t.Fatalf("Sign() failed: %v", err)
	}
	if err := store.SetToken(raw); err != nil {
		t.Fatalf("SetToken() failed: %v", err)
	}

	d := SignOut(store)

	if d.View != ViewHome || d.RedirectTo != "/" {
		t.Errorf("SignOut() = %+v, want home redirect", d)
	}
	if store.GetCurrentUser() != nil {
		t.Error("session must already be cleared when the decision is returned")
	}

	// Idempotent: signing out twice leaves the same no-session state.
	d = SignOut(store)
	if d.View != ViewHome || store.GetCurrentUser() != nil {
		t.Error("second sign-out must be a no-op landing on home")
	}
}
