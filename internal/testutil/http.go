package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/stratatrips/internal/app/system/auth"
	"github.com/dalemusser/stratatrips/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestAdmin represents admin data for testing HTTP handlers.
type TestAdmin struct {
	ID    string
	Email string
	Role  string
}

// Admin returns a TestAdmin with the admin role.
func Admin() TestAdmin {
	return TestAdmin{
		ID:    primitive.NewObjectID().Hex(),
		Email: "admin@test.com",
		Role:  models.AdminRoleAdmin,
	}
}

// WithAdmin adds an admin to the request context for testing protected handlers.
// This bypasses the session middleware and injects the admin directly.
func WithAdmin(r *http.Request, a TestAdmin) *http.Request {
	return auth.WithTestAdmin(r, &auth.SessionAdmin{
		ID:    a.ID,
		Email: a.Email,
		Role:  a.Role,
		Token: "test-token",
	})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewJSONRequest creates an HTTP request whose body is body encoded as JSON.
// A string body is sent verbatim so tests can post malformed JSON.
func NewJSONRequest(t testing.TB, method, target string, body any) *http.Request {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		r = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAdminRequest creates a JSON request with an admin in context.
func NewAdminRequest(t testing.TB, method, target string, body any) *http.Request {
	t.Helper()
	return WithAdmin(NewJSONRequest(t, method, target, body), Admin())
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d (body %s)", r.Code, expected, strings.TrimSpace(r.Body.String()))
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	body := r.Body.String()
	if !strings.Contains(body, expected) {
		t.Errorf("response body does not contain %q", expected)
	}
}

// DecodeJSON unmarshals the response body into v.
func (r *ResponseRecorder) DecodeJSON(t testing.TB, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", r.Body.String(), err)
	}
}

// ErrorMessage returns the "error" field of a JSON error body.
func (r *ResponseRecorder) ErrorMessage(t testing.TB) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	r.DecodeJSON(t, &body)
	return body.Error
}
