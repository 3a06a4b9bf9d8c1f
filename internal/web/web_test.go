package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	authservice "financeserver/auth/service"
	"financeserver/auth/storage/memory"
	"financeserver/internal/config"
	"financeserver/internal/logger"
)

type ServerSuite struct {
	suite.Suite
	server *Server
}

func TestServer(t *testing.T) {
	suite.Run(t, &ServerSuite{})
}

func (s *ServerSuite) SetupTest() {
	log := logger.New(false)
	log.SetOutput(io.Discard)
	authService := authservice.New(authservice.Config{
		Token:      "test-token-secret",
		Expiration: "1h",
		BcryptCost: 4,
	}, memory.New(), log)
	s.server = New(config.Server{Host: "127.0.0.1", Port: 0}, authService, log)
}

func (s *ServerSuite) request(method, path string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.server.app.Test(req)
	s.Require().NoError(err)
	return resp
}

func (s *ServerSuite) decode(resp *http.Response) map[string]any {
	defer resp.Body.Close()
	var payload map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func (s *ServerSuite) TestHome() {
	resp := s.request(http.MethodGet, "/", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Server is on", s.decode(resp)["message"])
}

func (s *ServerSuite) TestHealth() {
	resp := s.request(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Server is healthy", s.decode(resp)["message"])
}

func (s *ServerSuite) TestSignup() {
	resp := s.request(http.MethodPost, "/signup", map[string]string{
		"email":    "john@example.com",
		"name":     "John Doe",
		"password": "mypassword123",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	body := s.decode(resp)
	s.NotEmpty(body["id"])
	s.Equal("John Doe", body["name"])
	s.Equal("john@example.com", body["email"])
	s.NotEmpty(body["created_at"])
	s.NotEmpty(body["updated_at"])
	s.NotContains(body, "password")
	s.NotContains(body, "password_hash")
}

func (s *ServerSuite) TestSignupValidation() {
	resp := s.request(http.MethodPost, "/signup", map[string]string{
		"email":    "not-an-email",
		"name":     "ab",
		"password": "short",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	body := s.decode(resp)
	s.Equal("validation failed", body["error"])
	fields, ok := body["fields"].([]any)
	s.Require().True(ok, "fields missing from validation response")
	s.Len(fields, 3)
}

func (s *ServerSuite) TestSignupMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.server.app.Test(req)
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *ServerSuite) TestSignupDuplicate() {
	first := s.request(http.MethodPost, "/signup", map[string]string{
		"email":    "a@x.com",
		"name":     "John Doe",
		"password": "mypassword123",
	})
	s.Equal(http.StatusCreated, first.StatusCode)

	second := s.request(http.MethodPost, "/signup", map[string]string{
		"email":    "a@x.com",
		"name":     "Other Name",
		"password": "otherpassword",
	})
	s.Equal(http.StatusConflict, second.StatusCode)
	s.Equal("email already registered", s.decode(second)["error"])
}

func (s *ServerSuite) TestSignin() {
	resp := s.request(http.MethodPost, "/signup", map[string]string{
		"email":    "john@example.com",
		"name":     "John Doe",
		"password": "mypassword123",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	ok := s.request(http.MethodPost, "/signin", map[string]string{
		"email":    "john@example.com",
		"password": "mypassword123",
	})
	s.Equal(http.StatusOK, ok.StatusCode)
	s.NotEmpty(s.decode(ok)["token"])

	wrongPassword := s.request(http.MethodPost, "/signin", map[string]string{
		"email":    "john@example.com",
		"password": "wrongpassword",
	})
	s.Equal(http.StatusUnauthorized, wrongPassword.StatusCode)

	unknown := s.request(http.MethodPost, "/signin", map[string]string{
		"email":    "nobody@example.com",
		"password": "mypassword123",
	})
	s.Equal(http.StatusUnauthorized, unknown.StatusCode)
	// Unknown account and wrong password answer identically.
	s.Equal(s.decode(wrongPassword)["error"], s.decode(unknown)["error"])
}
