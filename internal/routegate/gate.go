// Package routegate decides, per navigation, which view a route renders
// for the current user. Decide is pure: it is re-evaluated on every
// route change and whenever the current user changes, and renders
// nothing itself.
package routegate

import (
	"strings"

	"github.com/campusrate/campusrate-go/internal/token"
)

// View identifies what the router should render for a route.
type View int

const (
	// ViewNotFound: the route does not exist for this user. Signed-out
	// users get this for notification and admin routes rather than an
	// authorization error — the routes are absent, not forbidden.
	ViewNotFound View = iota

	// Public views, rendered regardless of the current user.
	ViewHome
	ViewInstituteList
	ViewInstituteDetail
	ViewProfessorList
	ViewProfessorDetail
	ViewSignIn
	ViewSignUp

	// ViewReviewForm: the review-submission sub-route, students only.
	ViewReviewForm
	// ViewUnauthorized: the placeholder rendered in place of a gated
	// view. Deliberately not a redirect.
	ViewUnauthorized

	// Role-dispatched profile views.
	ViewStudentProfile
	ViewProfessorProfile
	ViewAdminProfile

	// Signed-in-only views.
	ViewNotifications
	ViewAdminDashboard

	// ViewRoleError: the current user carries a role outside the known
	// set. Rendered as an explicit error, never defaulted to the most
	// privileged view.
	ViewRoleError
)

func (v View) String() string {
	switch v {
	case ViewNotFound:
		return "not-found"
	case ViewHome:
		return "home"
	case ViewInstituteList:
		return "institute-list"
	case ViewInstituteDetail:
		return "institute-detail"
	case ViewProfessorList:
		return "professor-list"
	case ViewProfessorDetail:
		return "professor-detail"
	case ViewSignIn:
		return "sign-in"
	case ViewSignUp:
		return "sign-up"
	case ViewReviewForm:
		return "review-form"
	case ViewUnauthorized:
		return "unauthorized"
	case ViewStudentProfile:
		return "student-profile"
	case ViewProfessorProfile:
		return "professor-profile"
	case ViewAdminProfile:
		return "admin-profile"
	case ViewNotifications:
		return "notifications"
	case ViewAdminDashboard:
		return "admin-dashboard"
	case ViewRoleError:
		return "role-error"
	}
	return "unknown"
}

// Decision is the outcome of gating one navigation. RedirectTo, when
// non-empty, sends the user to another route instead of rendering.
type Decision struct {
	View       View
	RedirectTo string
}

// Decide maps a requested path and the current user (nil when signed
// out) to a render decision.
func Decide(path string, user *token.CurrentUser) Decision {
	segments := splitPath(path)

	switch {
	case len(segments) == 0:
		return Decision{View: ViewHome}

	case segments[0] == "signin" && len(segments) == 1:
		return Decision{View: ViewSignIn}

	case segments[0] == "signup" && len(segments) == 1:
		return Decision{View: ViewSignUp}

	case segments[0] == "institutes":
		switch len(segments) {
		case 1:
			return Decision{View: ViewInstituteList}
		case 2:
			return Decision{View: ViewInstituteDetail}
		}
		return Decision{View: ViewNotFound}

	case segments[0] == "professors":
		switch len(segments) {
		case 1:
			return Decision{View: ViewProfessorList}
		case 2:
			return Decision{View: ViewProfessorDetail}
		case 3:
			if segments[2] == "review" {
				return decideReviewForm(user)
			}
		}
		return Decision{View: ViewNotFound}

	case segments[0] == "profile" && len(segments) == 1:
		return decideProfile(user)

	case segments[0] == "notifications" && len(segments) == 1:
		if user == nil {
			return Decision{View: ViewNotFound}
		}
		return Decision{View: ViewNotifications}

	case segments[0] == "admin" && len(segments) == 1:
		return decideAdminDashboard(user)
	}

	return Decision{View: ViewNotFound}
}

// decideReviewForm gates the review-submission sub-route: students get
// the form, everyone else (anonymous included) gets the unauthorized
// placeholder in place.
func decideReviewForm(user *token.CurrentUser) Decision {
	if user == nil {
		return Decision{View: ViewUnauthorized}
	}
	switch user.Role {
	case token.RoleStudent:
		return Decision{View: ViewReviewForm}
	case token.RoleProfessor, token.RoleAdmin:
		return Decision{View: ViewUnauthorized}
	default:
		return Decision{View: ViewRoleError}
	}
}

// decideProfile dispatches the single profile path to the per-role
// view. An unrecognized role is an error view, not an implicit admin.
func decideProfile(user *token.CurrentUser) Decision {
	if user == nil {
		return Decision{View: ViewSignIn, RedirectTo: "/signin"}
	}
	switch user.Role {
	case token.RoleStudent:
		return Decision{View: ViewStudentProfile}
	case token.RoleProfessor:
		return Decision{View: ViewProfessorProfile}
	case token.RoleAdmin:
		return Decision{View: ViewAdminProfile}
	default:
		return Decision{View: ViewRoleError}
	}
}

func decideAdminDashboard(user *token.CurrentUser) Decision {
	if user == nil {
		return Decision{View: ViewNotFound}
	}
	switch user.Role {
	case token.RoleAdmin:
		return Decision{View: ViewAdminDashboard}
	case token.RoleStudent, token.RoleProfessor:
		return Decision{View: ViewUnauthorized}
	default:
		return Decision{View: ViewRoleError}
	}
}

// SessionClearer is the slice of the session store sign-out needs.
type SessionClearer interface {
	ClearToken()
}

// SignOut clears the session and lands on the public home route. The
// store is cleared before the decision is returned, so no caller can
// render authenticated UI from a stale session afterwards.
func SignOut(sessions SessionClearer) Decision {
	sessions.ClearToken()
	return Decision{View: ViewHome, RedirectTo: "/"}
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
