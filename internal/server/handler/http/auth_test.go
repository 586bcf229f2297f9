package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/HabitTracker/internal/apperr"
)

// fakeAuthService implements AuthService for testing.
type fakeAuthService struct {
	registerErr error
	loginToken  string
	loginErr    error

	gotUsername, gotPassword, gotEmail string
}

func (f *fakeAuthService) Register(ctx context.Context, username, password, email string) error {
	f.gotUsername, f.gotPassword, f.gotEmail = username, password, email
	return f.registerErr
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (string, error) {
	f.gotUsername, f.gotPassword = username, password
	return f.loginToken, f.loginErr
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		service        *fakeAuthService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "Invalid request body",
		},
		{
			name:           "missing fields",
			body:           `{"username":"alice"}`,
			service:        &fakeAuthService{registerErr: apperr.Validation("Missing required user information")},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "Missing required user information",
		},
		{
			name:           "User already exists",
			body:           `{"username":"bob","password":"p","email":"b@example.com"}`,
			service:        &fakeAuthService{registerErr: apperr.Conflict("User already exists")},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "User already exists",
		},
		{
			name:           "store failure is hidden",
			body:           `{"username":"carl","password":"p","email":"c@example.com"}`,
			service:        &fakeAuthService{registerErr: errors.New("pq: connection refused")},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: `{"error":"An error occurred"}`,
		},
		{
			name:           "registered",
			body:           `{"username":"dana","password":"p","email":"d@example.com"}`,
			service:        &fakeAuthService{},
			expectedCode:   http.StatusCreated,
			expectedSubstr: `{"message":"User registered"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/auth/register", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service}
			h.Register(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			buf := new(bytes.Buffer)
			if _, err := buf.ReadFrom(res.Body); err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if !bytes.Contains(buf.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, buf.String())
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeAuthService
		expectedCode int
		expectedJSON map[string]string
	}{
		{
			name:         "invalid credentials",
			body:         `{"username":"erin","password":"nope"}`,
			service:      &fakeAuthService{loginErr: apperr.Unauthorized("Invalid credentials")},
			expectedCode: http.StatusUnauthorized,
			expectedJSON: map[string]string{"error": "Invalid credentials"},
		},
		{
			name:         "Successful login",
			body:         `{"username":"frank","password":"pw"}`,
			service:      &fakeAuthService{loginToken: "signed"},
			expectedCode: http.StatusOK,
			expectedJSON: map[string]string{"token": "signed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/auth/login", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AuthService: tt.service}
			h.Login(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			var got map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
				t.Fatalf("invalid JSON response: %v", err)
			}
			for k, v := range tt.expectedJSON {
				if got[k] != v {
					t.Errorf("expected %q=%q, got %q", k, v, got[k])
				}
			}
		})
	}
}
