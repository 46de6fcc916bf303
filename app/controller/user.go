package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-bridal/app/dto"
	"github.com/vibast-solutions/ms-go-bridal/app/factory"
	"github.com/vibast-solutions/ms-go-bridal/app/mapper"
	"github.com/vibast-solutions/ms-go-bridal/app/service"
	"github.com/vibast-solutions/ms-go-bridal/app/session"
	"github.com/vibast-solutions/ms-go-bridal/app/types"
)

type UserController struct {
	userService *service.UserService
	sessions    sessionManager
	logger      logrus.FieldLogger
}

func NewUserController(userService *service.UserService, sessions sessionManager) *UserController {
	return &UserController{
		userService: userService,
		sessions:    sessions,
		logger:      factory.NewModuleLogger("users-controller"),
	}
}

func (c *UserController) Signup(ctx echo.Context) error {
	req, err := types.NewUserSignupRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	user, err := c.userService.Signup(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			return writeError(ctx, http.StatusConflict, "email already registered")
		default:
			c.logger.WithError(err).Error("User signup failed")
			return writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	if _, err := c.sessions.Start(ctx, session.KindUser, user.ID, user.Email); err != nil {
		c.logger.WithError(err).Error("Session start failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusCreated, &dto.UserEnvelopeResponse{User: mapper.User(user)})
}

func (c *UserController) Login(ctx echo.Context) error {
	req, err := types.NewLoginRequestFromContext(ctx)
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return writeError(ctx, http.StatusBadRequest, err.Error())
	}

	user, err := c.userService.Authenticate(ctx.Request().Context(), req.GetEmail(), req.GetPassword())
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return writeError(ctx, http.StatusUnauthorized, "invalid email or password")
		}
		c.logger.WithError(err).Error("User login failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	if _, err := c.sessions.Start(ctx, session.KindUser, user.ID, user.Email); err != nil {
		c.logger.WithError(err).Error("Session start failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &dto.UserEnvelopeResponse{User: mapper.User(user)})
}

func (c *UserController) Logout(ctx echo.Context) error {
	if err := c.sessions.End(ctx); err != nil {
		c.logger.WithError(err).Error("Logout failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	return ctx.JSON(http.StatusOK, &dto.MessageResponse{Message: "Logged out"})
}

func (c *UserController) Me(ctx echo.Context) error {
	user, err := c.userService.GetUser(ctx.Request().Context(), subjectID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return writeError(ctx, http.StatusNotFound, "user not found")
		}
		c.logger.WithError(err).Error("Get user failed")
		return writeError(ctx, http.StatusInternalServerError, "internal server error")
	}
	return ctx.JSON(http.StatusOK, &dto.UserEnvelopeResponse{User: mapper.User(user)})
}
