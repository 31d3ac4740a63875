package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/taskboard/pkg/auth"
)

type fakeAuthUC struct {
	result auth.AuthResult
	err    error
}

func (f *fakeAuthUC) Register(ctx context.Context, username, password string) (auth.AuthResult, error) {
	return f.result, f.err
}

func (f *fakeAuthUC) Login(ctx context.Context, username, password string) (auth.AuthResult, error) {
	return f.result, f.err
}

func newAuthApp(uc auth.AuthUseCase) *fiber.App {
	app := fiber.New()
	h := NewAuthHandler(uc)
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRegisterHandler_Created(t *testing.T) {
	user := auth.User{ID: uuid.New(), Username: "alice", CreatedAt: time.Now().UTC()}
	app := newAuthApp(&fakeAuthUC{result: auth.AuthResult{User: user, Token: "tok"}})

	resp := postJSON(t, app, "/auth/register", `{"username":"alice","password":"pw1"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, user.ID.String(), body["id"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "tok", body["token"])
}

func TestRegisterHandler_Conflict(t *testing.T) {
	app := newAuthApp(&fakeAuthUC{err: auth.ErrUserAlreadyExists})

	resp := postJSON(t, app, "/auth/register", `{"username":"alice","password":"pw1"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterHandler_BadPayload(t *testing.T) {
	app := newAuthApp(&fakeAuthUC{})

	resp := postJSON(t, app, "/auth/register", `{"username":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "/auth/register", `not json`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginHandler_OK(t *testing.T) {
	user := auth.User{ID: uuid.New(), Username: "alice"}
	app := newAuthApp(&fakeAuthUC{result: auth.AuthResult{User: user, Token: "tok"}})

	resp := postJSON(t, app, "/auth/login", `{"username":"alice","password":"pw1"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "tok", body["token"])
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	app := newAuthApp(&fakeAuthUC{err: auth.ErrInvalidCredentials})

	resp := postJSON(t, app, "/auth/login", `{"username":"alice","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
