package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vintechs/portal/internal/auth"
	"github.com/vintechs/portal/internal/domain"
	"github.com/vintechs/portal/internal/logging"
	"github.com/vintechs/portal/internal/middleware"
	"github.com/vintechs/portal/internal/pubsub"
	"github.com/vintechs/portal/internal/rendering"
	"github.com/vintechs/portal/internal/validation"
	"github.com/vintechs/portal/internal/view"
	authdto "github.com/vintechs/portal/internal/view/dto/auth"
	"github.com/vintechs/portal/web/src/templates/components"
	"github.com/vintechs/portal/web/src/templates/pages"
)

const (
	SignupPath = "/auth/signup"

	MsgWelcomeBack    = "Welcome back!"
	MsgAccountCreated = "Account created! Welcome to Vintechs."
	MsgSignedOut      = "You have been logged out."
)

// AuthHandler handles the sign-in, sign-up and sign-out screens.
type AuthHandler struct {
	provider  domain.IdentityProvider
	catalog   CatalogSource
	publisher pubsub.Publisher
	renderer  rendering.Renderer
	appName   string
	tokenTTL  time.Duration
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	provider domain.IdentityProvider,
	catalog CatalogSource,
	publisher pubsub.Publisher,
	renderer rendering.Renderer,
	appName string,
	tokenTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		provider:  provider,
		catalog:   catalog,
		publisher: publisher,
		renderer:  renderer,
		appName:   appName,
		tokenTTL:  tokenTTL,
	}
}

// LoginGet renders the sign-in form (GET /auth/login). The email of a
// failed attempt is prefilled.
func (h *AuthHandler) LoginGet(c echo.Context) error {
	values := authdto.FormValues{Email: view.PopFormValue(c, "email")}
	return h.renderAuth(c, http.StatusOK, authdto.ModeSignIn, values, nil)
}

// SignupGet renders the sign-up form (GET /auth/signup).
func (h *AuthHandler) SignupGet(c echo.Context) error {
	values := authdto.FormValues{
		FirstName: view.PopFormValue(c, "first_name"),
		LastName:  view.PopFormValue(c, "last_name"),
		Email:     view.PopFormValue(c, "email"),
	}
	return h.renderAuth(c, http.StatusOK, authdto.ModeSignUp, values, nil)
}

// LoginPost handles the sign-in form submission.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	var form validation.SignInForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	form.Normalize()

	values := authdto.FormValues{Email: form.Email}
	if fieldErrs, err := validateForm(c, &form); err != nil {
		return err
	} else if fieldErrs != nil {
		return h.renderAuth(c, http.StatusUnprocessableEntity, authdto.ModeSignIn, values, fieldErrs)
	}

	ctx := c.Request().Context()
	token, err := h.provider.SignIn(ctx, domain.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		return h.rejectSubmission(c, middleware.LoginPath, values, err)
	}

	userID := h.signIn(c, token, form.Email)
	publishAuthEvent(c, h.publisher, pubsub.UserSignedIn, pubsub.AuthEvent{UserID: userID, Email: form.Email})

	view.SetFlashSuccess(c, MsgWelcomeBack)
	return c.Redirect(http.StatusSeeOther, view.PopReturnPath(c, middleware.DashboardPath))
}

// SignupPost handles the sign-up form submission.
func (h *AuthHandler) SignupPost(c echo.Context) error {
	var form validation.SignUpForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form submission")
	}
	form.Normalize()

	values := authdto.FormValues{FirstName: form.FirstName, LastName: form.LastName, Email: form.Email}
	if fieldErrs, err := validateForm(c, &form); err != nil {
		return err
	} else if fieldErrs != nil {
		return h.renderAuth(c, http.StatusUnprocessableEntity, authdto.ModeSignUp, values, fieldErrs)
	}

	ctx := c.Request().Context()
	token, err := h.provider.SignUp(ctx, domain.Registration{
		Credentials: domain.Credentials{Email: form.Email, Password: form.Password},
		FirstName:   form.FirstName,
		LastName:    form.LastName,
	})
	if err != nil {
		return h.rejectSubmission(c, SignupPath, values, err)
	}

	userID := h.signIn(c, token, form.Email)
	publishAuthEvent(c, h.publisher, pubsub.UserSignedUp, pubsub.AuthEvent{
		UserID:    userID,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
	})

	view.SetFlashSuccess(c, MsgAccountCreated)
	return c.Redirect(http.StatusSeeOther, view.PopReturnPath(c, middleware.DashboardPath))
}

// Logout ends the session with the provider, then forgets it locally even
// when the provider call failed.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	logger := logging.FromContext(ctx)

	if token := middleware.AuthToken(c); token != "" {
		var userID string
		if identity, err := h.provider.Verify(ctx, token); err == nil && identity.ID != nil {
			userID = auth.FormatRecordID(*identity.ID)
		}
		if err := h.provider.SignOut(ctx, token); err != nil {
			logger.Warn("Provider sign out failed", "error", err)
		}
		if userID != "" {
			publishAuthEvent(c, h.publisher, pubsub.UserSignedOut, pubsub.AuthEvent{UserID: userID, Email: view.SessionEmail(c)})
		}
	}

	middleware.ClearAuthCookie(c)
	view.ClearSession(c)
	view.SetFlashSuccess(c, MsgSignedOut)
	return c.Redirect(http.StatusSeeOther, "/")
}

// PasswordFieldGet re-renders the password input with the requested
// visibility. The typed value, autocomplete mode and error state are
// carried over.
func (h *AuthHandler) PasswordFieldGet(c echo.Context) error {
	props := components.PasswordFieldPropsFromQuery(c.QueryParams(), c.FormValue("password"))
	return h.renderer.RenderPage(c, http.StatusOK, components.PasswordField(props))
}

// signIn stores the session and returns the user id for events.
func (h *AuthHandler) signIn(c echo.Context, token, email string) string {
	middleware.SetAuthCookie(c, token, h.tokenTTL)
	view.SetSessionEmail(c, email)

	identity, err := h.provider.Verify(c.Request().Context(), token)
	if err != nil || identity.ID == nil {
		logging.FromContext(c.Request().Context()).Warn("Issued token did not verify", "error", err)
		return ""
	}
	return auth.FormatRecordID(*identity.ID)
}

// rejectSubmission sends the visitor back to the form with a notification.
// Names and email are kept; the password is not.
func (h *AuthHandler) rejectSubmission(c echo.Context, formPath string, values authdto.FormValues, err error) error {
	logger := logging.FromContext(c.Request().Context())
	if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrAlreadyRegistered) {
		logger.Info("Authentication rejected", "path", formPath, "error", err)
	} else {
		logger.Error("Identity provider call failed", "path", formPath, "error", err)
	}

	view.SetFlashError(c, auth.FriendlyMessage(err))
	view.SetFormValue(c, "email", values.Email)
	if formPath == SignupPath {
		view.SetFormValue(c, "first_name", values.FirstName)
		view.SetFormValue(c, "last_name", values.LastName)
	}
	return c.Redirect(http.StatusSeeOther, formPath)
}

func (h *AuthHandler) renderAuth(c echo.Context, status int, mode authdto.Mode, values authdto.FormValues, fieldErrs map[string]string) error {
	data := authdto.PageData{
		Mode:     mode,
		AppName:  h.appName,
		Benefits: h.catalog.Current().Benefits,
		Values:   values,
		Errors:   fieldErrs,
	}
	title := "Log In"
	if mode == authdto.ModeSignUp {
		title = "Sign Up"
	}
	return h.renderer.RenderPage(c, status, page(c, title, pages.Auth(data)))
}

// validateForm returns the per-field messages for an invalid form. The
// error is only set when validation itself could not run.
func validateForm(c echo.Context, form any) (map[string]string, error) {
	err := c.Validate(form)
	if err == nil {
		return nil, nil
	}
	if fieldErrs := validation.FieldErrors(err); fieldErrs != nil {
		return fieldErrs, nil
	}
	return nil, err
}
