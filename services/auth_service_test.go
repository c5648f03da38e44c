package services

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"wellness-reward-system/middleware"

	"github.com/gofiber/fiber/v2"
)

var testSecret = []byte("test-secret")

func newAuthTestApp(t *testing.T) (*fiber.App, *AuthService) {
	t.Helper()
	svc := NewAuthService(newTestDB(t), testSecret)

	app := fiber.New()
	app.Post("/api/auth/register", svc.Register)
	app.Post("/api/auth/login", svc.Login)

	auth := middleware.JWTAuthMiddleware(testSecret)
	app.Get("/api/auth/me", auth, svc.Me)
	return app, svc
}

func postJSON(t *testing.T, app *fiber.App, path string, body map[string]interface{}) (int, map[string]interface{}) {
	t.Helper()
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	app, _ := newAuthTestApp(t)

	status, body := postJSON(t, app, "/api/auth/register", map[string]interface{}{
		"email":    "student@example.com",
		"password": "hunter22",
		"name":     "Student",
	})
	if status != fiber.StatusOK {
		t.Fatalf("register status=%d (body: %v)", status, body)
	}
	if token, _ := body["token"].(string); token == "" {
		t.Fatalf("register returned no token: %v", body)
	}

	status, body = postJSON(t, app, "/api/auth/login", map[string]interface{}{
		"email":    "student@example.com",
		"password": "hunter22",
	})
	if status != fiber.StatusOK {
		t.Fatalf("login status=%d (body: %v)", status, body)
	}
	if token, _ := body["token"].(string); token == "" {
		t.Fatalf("login returned no token: %v", body)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, _ := newAuthTestApp(t)

	creds := map[string]interface{}{"email": "dup@example.com", "password": "secret123"}
	if status, _ := postJSON(t, app, "/api/auth/register", creds); status != fiber.StatusOK {
		t.Fatalf("first register failed")
	}
	status, body := postJSON(t, app, "/api/auth/register", creds)
	if status != fiber.StatusBadRequest {
		t.Fatalf("duplicate register status=%d, want 400", status)
	}
	if body["msg"] != "User already exists" {
		t.Fatalf("msg=%v, want 'User already exists'", body["msg"])
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newAuthTestApp(t)

	postJSON(t, app, "/api/auth/register", map[string]interface{}{
		"email": "who@example.com", "password": "right-one",
	})
	status, body := postJSON(t, app, "/api/auth/login", map[string]interface{}{
		"email": "who@example.com", "password": "wrong-one",
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("login status=%d, want 400", status)
	}
	if body["msg"] != "Invalid credentials" {
		t.Fatalf("msg=%v, want 'Invalid credentials'", body["msg"])
	}
}

func TestBearerTokenAuthorizesProtectedRoute(t *testing.T) {
	app, _ := newAuthTestApp(t)

	_, body := postJSON(t, app, "/api/auth/register", map[string]interface{}{
		"email": "me@example.com", "password": "secret123", "name": "Me",
	})
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("no token from register")
	}

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("me status=%d, want 200", resp.StatusCode)
	}

	var user map[string]interface{}
	_ = json.NewDecoder(resp.Body).Decode(&user)
	resp.Body.Close()
	if user["email"] != "me@example.com" {
		t.Fatalf("me returned %v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password hash leaked in profile response")
	}
}

func TestMissingOrGarbageTokenIsRejected(t *testing.T) {
	app, _ := newAuthTestApp(t)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("no-token status=%d, want 401", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("garbage-token status=%d, want 401", resp.StatusCode)
	}
}
