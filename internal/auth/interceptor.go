// Package auth ties the session to the HTTP client: bearer attachment on the way
// out, forced logout on 401 on the way back.
package auth

import (
	"net/http"

	"portfolio-admin/internal/common/config"
	"portfolio-admin/internal/common/errors"
	commonhttp "portfolio-admin/internal/common/http"
	"portfolio-admin/internal/common/logger"
	"portfolio-admin/internal/common/metrics"
	"portfolio-admin/internal/session"
)

// Navigator performs the full navigation a forced logout ends with.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// Interceptor attaches the session token to requests and handles 401 centrally.
type Interceptor struct {
	session    *session.Session
	navigator  Navigator
	loginRoute string
	logger     logger.Logger
}

func NewInterceptor(sess *session.Session, nav Navigator, loginRoute string, log logger.Logger) *Interceptor {
	if loginRoute == "" {
		loginRoute = config.DefaultLoginRoute
	}
	if nav == nil {
		nav = NavigatorFunc(func(string) {})
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Interceptor{session: sess, navigator: nav, loginRoute: loginRoute, logger: log}
}

// Install registers both phases on client. Call it once per client.
func (i *Interceptor) Install(client *commonhttp.Client) {
	client.UseRequest(i.AttachToken)
	client.UseError(i.HandleError)
}

// AttachToken sets "Authorization: Bearer <token>" when a token is stored and
// leaves the header absent otherwise.
func (i *Interceptor) AttachToken(req *http.Request) error {
	if token, ok := i.session.Token(); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// HandleError clears the session and navigates to the login route on 401.
// The error itself is left for the caller.
func (i *Interceptor) HandleError(req *http.Request, err *errors.StandardError) {
	if err == nil || err.Status != http.StatusUnauthorized {
		return
	}
	metrics.SessionUnauthorized.Inc()
	i.logger.Warn("unauthorized response, clearing session", map[string]interface{}{
		"method": req.Method,
		"path":   req.URL.Path,
	})
	if clearErr := i.session.Clear(); clearErr != nil {
		errors.LogError(i.logger, "failed to clear session after 401", clearErr, nil)
	}
	i.navigator.Navigate(i.loginRoute)
}
