package web

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	authservice "financeserver/auth/service"
	"financeserver/internal/config"
	"financeserver/internal/web/webpath"
)

type Server struct {
	auth *authservice.Service
	app  *fiber.App
	cfg  config.Server
	log  *logrus.Entry
}

func New(cfg config.Server, authService *authservice.Service, log *logrus.Logger) *Server {
	server := Server{
		auth: authService,
		cfg:  cfg,
		log:  log.WithField("component", "web"),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: server.handleError,
	})
	app.Use(server.requestLogger())

	app.Get(webpath.Home, server.handleHome)
	app.Get(webpath.Health, server.handleHealth)
	app.Post(webpath.Signup, server.handleSignup)
	app.Post(webpath.Signin, server.handleSignin)
	server.app = app
	return &server
}

func (s *Server) Serve() error {
	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	if s.cfg.CertFile != "" && s.cfg.KeyFile != "" {
		return s.app.ListenTLS(addr, s.cfg.CertFile, s.cfg.KeyFile)
	}
	return s.app.Listen(addr)
}

func (s *Server) handleHome(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"message": "Server is on"})
}

func (s *Server) handleHealth(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"message": "Server is healthy"})
}

func (s *Server) handleSignup(ctx *fiber.Ctx) error {
	var req signupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	user, err := s.auth.Register(ctx.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(newUserResponse(user))
}

func (s *Server) handleSignin(ctx *fiber.Ctx) error {
	var req signinRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	user, err := s.auth.Login(ctx.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	token, err := s.auth.GenerateToken(user.ID)
	if err != nil {
		return err
	}
	return ctx.JSON(tokenResponse{Token: token})
}

// handleError is the single place that turns an error into a response, so no
// handler path can ever write twice for one request. Clients get the taxonomy
// kind plus a generic message; internal details go to the log only.
func (s *Server) handleError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	resp := errorResponse{Error: "internal server error"}

	var vErr *authservice.ValidationError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &vErr):
		status = fiber.StatusBadRequest
		resp = errorResponse{Error: "validation failed", Fields: vErr.Fields}
	case errors.Is(err, authservice.ErrEmailTaken):
		status = fiber.StatusConflict
		resp.Error = "email already registered"
	case errors.Is(err, authservice.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
		resp.Error = "invalid credentials"
	case errors.As(err, &fiberErr):
		status = fiberErr.Code
		resp.Error = fiberErr.Message
	default:
		s.log.WithError(err).Error("request failed")
	}
	return ctx.Status(status).JSON(resp)
}

func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		s.log.WithFields(logrus.Fields{
			"method":   c.Method(),
			"path":     c.Path(),
			"status":   c.Response().StatusCode(),
			"duration": time.Since(start),
		}).Info("request")
		return err
	}
}
