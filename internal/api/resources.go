package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/campusrate/campusrate-go/pkg/apierror"
)

// Institute is an academic institution listing entry.
type Institute struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Website string `json:"website,omitempty"`
}

// Professor is a rated professor record.
type Professor struct {
	ID          string  `json:"id"`
	InstituteID string  `json:"instituteId"`
	Name        string  `json:"name"`
	Department  string  `json:"department"`
	AvgRating   float64 `json:"avgRating"`
	ReviewCount int     `json:"reviewCount"`
}

// Review is a student-submitted professor review.
type Review struct {
	ID          string    `json:"id"`
	ProfessorID string    `json:"professorId"`
	AuthorID    string    `json:"authorId"`
	Rating      int       `json:"rating"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReviewInput is the submit-review form payload.
type ReviewInput struct {
	Rating int    `json:"rating"`
	Text   string `json:"text"`
}

// Bookmark marks a professor saved by the current user.
type Bookmark struct {
	ID          string    `json:"id"`
	ProfessorID string    `json:"professorId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Notification is an in-app notification for the current user.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Account is an admin-visible user record.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Report is a moderation report filed against a review.
type Report struct {
	ID       string `json:"id"`
	ReviewID string `json:"reviewId"`
	Reason   string `json:"reason"`
	Status   string `json:"status"`
}

// AuditEvent is one entry of the admin audit trail.
type AuditEvent struct {
	ID     string    `json:"id"`
	Actor  string    `json:"actor"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

// All operations below follow the returned-style convention: a nil
// fault means success, a non-nil fault is the normalized failure and
// the data result is the zero value.

// ListInstitutes fetches the institute listing.
func (c *Client) ListInstitutes(ctx context.Context) ([]Institute, *apierror.ResourceFault) {
	var out []Institute
	if fault := c.resourceJSON(ctx, http.MethodGet, "/institutes", nil, nil, &out); fault != nil {
		return nil, fault
	}
	return out, nil
}

// GetInstitute fetches one institute.
func (c *Client) GetInstitute(ctx context.Context, id string) (*Institute, *apierror.ResourceFault) {
	var out Institute
	if fault := c.resourceJSON(ctx, http.MethodGet, "/institutes/"+id, nil, nil, &out); fault != nil {
		return nil, fault
	}
	return &out, nil
}

// SearchProfessors fetches professors matching the search query; an
// empty query lists everyone.
func (c *Client) SearchProfessors(ctx context.Context, query string) ([]Professor, *apierror.ResourceFault) {
	var q url.Values
	if query != "" {
		q = url.Values{"q": {query}}
	}
	var out []Professor
	if fault := c.resourceJSON(ctx, http.MethodGet, "/professors", q, nil, &out); fault != nil {
		return nil, fault
	}
	return out, nil
}

// GetProfessor fetches one professor.
func (c *Client) GetProfessor(ctx context.Context, id string) (*Professor, *apierror.ResourceFault) {
	var out Professor
	if fault := c.resourceJSON(ctx, http.MethodGet, "/professors/"+id, nil, nil, &out); fault != nil {
		return nil, fault
	}
	return &out, nil
}

// ListReviews fetches a professor's reviews.
func (c *Client) ListReviews(ctx context.Context, professorID string) ([]Review, *apierror.ResourceFault) {
	var out []Review
	if fault := c.resourceJSON(ctx, http.MethodGet, "/professors/"+professorID+"/reviews", nil, nil, &out); fault != nil {
		return nil, fault
	}
	return out, nil
}

// SubmitReview files a review against a professor. Requires a student
// session; the backend rejects anyone else.
func (c *Client) SubmitReview(ctx context.Context, professorID string, input ReviewInput) (*Review, *apierror.ResourceFault) {
	var out Review
	if fault := c.resourceJSON(ctx, http.MethodPost, "/professors/"+professorID+"/reviews", nil, input, &out); fault != nil {
		return nil, fault
	}
	return &out, nil
}

// ListBookmarks fetches the current user's bookmarks.
func (c *Client) ListBookmarks(ctx context.Context) ([]Bookmark, *apierror.ResourceFault) {
	var out []Bookmark
	if fault := c.resourceJSON(ctx, http.MethodGet, "/bookmarks", nil, nil, &out); fault != nil {
		return nil, fault
	}
	return out, nil
}

// AddBookmark saves a professor for the current user.
func (c *Client) AddBookmark(ctx context.Context, professorID string) (*Bookmark, *apierror.ResourceFault) {
	var out Bookmark
	body := map[string]string{"professorId": professorID}
	if fault := c.resourceJSON(ctx, http.MethodPost, "/bookmarks", nil, body, &out); fault != nil {
		return nil, fault
	}
	return &out, nil
}

// RemoveBookmark deletes a bookmark.
func (c *Client) RemoveBookmark(ctx context.Context, id string) *apierror.ResourceFault {
	return c.resourceJSON(ctx, http.MethodDelete, "/bookmarks/"+id, nil, nil, nil)
}

// ListNotifications fetches the current user's notifications.
func (c *Client) ListNotifications(ctx context.Context) ([]Notification, *apierror.ResourceFault) {
	var out []Notification
	if fault := c.resourceJSON(ctx, http.MethodGet, "/notifications", nil, nil, &out); fault != nil {
		return nil, fault
	}
	return out, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) *apierror.ResourceFault {
	return c.resourceJSON(ctx, http.MethodPut, "/notifications/"+id+"/read", nil, nil, nil)
}

// ListAccounts fetches all user accounts. Admin only.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, *apierror.ResourceFault) {
	var out []Account
	if fault := c.resourceJSON(ctx, http.MethodGet, "/admin/users", nil, nil, &out); fault != nil {
		return nil, fault
	}
	return out, nil
}

// ListReports fetches open moderation reports. Admin only.
func (c *Client) ListReports(ctx context.Context) ([]Report, *apierror.ResourceFault) {
	var out []Report
	if fault := c.resourceJSON(ctx, http.MethodGet, "/admin/reports", nil, nil, &out); fault != nil {
		return nil, fault
	}
	return out, nil
}

// ResolveReport closes a moderation report. Admin only.
func (c *Client) ResolveReport(ctx context.Context, id, resolution string) *apierror.ResourceFault {
	body := map[string]string{"resolution": resolution}
	return c.resourceJSON(ctx, http.MethodPut, "/admin/reports/"+id, nil, body, nil)
}

// ListAuditEvents fetches the audit trail. Admin only.
func (c *Client) ListAuditEvents(ctx context.Context) ([]AuditEvent, *apierror.ResourceFault) {
	var out []AuditEvent
	if fault := c.resourceJSON(ctx, http.MethodGet, "/admin/audit", nil, nil, &out); fault != nil {
		return nil, fault
	}
	return out, nil
}
