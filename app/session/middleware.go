package session

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-bridal/app/dto"
	"github.com/vibast-solutions/ms-go-bridal/app/factory"
)

type Store interface {
	Create(ctx context.Context, kind Kind, subjectID, email string) (*Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

type Manager struct {
	store      Store
	cookieName string
	ttl        time.Duration
	secure     bool
	logger     logrus.FieldLogger
}

func NewManager(store Store, cookieName string, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:      store,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
		logger:     factory.NewModuleLogger("session"),
	}
}

// Load resolves the session cookie, if any, and stores the session on the
// echo context. A missing or stale cookie is not an error.
func (m *Manager) Load(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		sess, err := m.store.Get(c.Request().Context(), cookie.Value)
		if err != nil {
			factory.LoggerWithContext(m.logger, c).WithError(err).Error("Failed to load session")
			return next(c)
		}
		if sess != nil {
			Set(c, sess)
		}
		return next(c)
	}
}

func (m *Manager) RequireProvider(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(KindProvider, next)
}

func (m *Manager) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(KindUser, next)
}

func (m *Manager) require(kind Kind, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := FromContext(c)
		if sess == nil {
			return c.JSON(http.StatusUnauthorized, &dto.ErrorResponse{Error: "login required"})
		}
		if sess.Kind != kind {
			return c.JSON(http.StatusForbidden, &dto.ErrorResponse{Error: "forbidden"})
		}
		return next(c)
	}
}

// Start creates a session and sets its cookie on the response.
func (m *Manager) Start(c echo.Context, kind Kind, subjectID, email string) (*Session, error) {
	sess, err := m.store.Create(c.Request().Context(), kind, subjectID, email)
	if err != nil {
		return nil, err
	}
	c.SetCookie(m.cookie(sess.Token, int(m.ttl.Seconds())))
	return sess, nil
}

// End deletes the current session, if any, and expires the cookie.
func (m *Manager) End(c echo.Context) error {
	if sess := FromContext(c); sess != nil {
		if err := m.store.Delete(c.Request().Context(), sess.Token); err != nil {
			return err
		}
	}
	c.SetCookie(m.cookie("", -1))
	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Set attaches sess to the request context.
func Set(c echo.Context, sess *Session) {
	c.Set(factory.SessionContextKey, sess)
}

func FromContext(c echo.Context) *Session {
	sess, _ := c.Get(factory.SessionContextKey).(*Session)
	return sess
}
