package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/saynoretake/core"
	"github.com/trezcool/saynoretake/core/user"
)

type LoginResponse struct {
	Token string `json:"token"`
}

type sessionApi struct {
	auth     *authenticator
	svc      *user.Service
	validate *validator.Validate
}

func registerSessionAPI(g *echo.Group, auth *authenticator, svc *user.Service, validate *validator.Validate) {
	api := sessionApi{
		auth:     auth,
		svc:      svc,
		validate: validate,
	}
	g.POST("/login", api.login)
}

func (api *sessionApi) login(ctx echo.Context) error {
	var data user.LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Login(data)
	if err != nil {
		switch errors.Cause(err) {
		case user.ErrAuthenticationFailed:
			return errAuthenticationFailed
		case user.ErrAdviserNameRequired:
			return core.NewValidationError(err, core.FieldError{Field: "adviser_name", Error: err.Error()})
		case user.ErrInvalidRole:
			return core.NewValidationError(err, core.FieldError{Field: "role", Error: err.Error()})
		}
		return errors.Wrap(err, "logging in")
	}

	token, err := api.auth.GenerateToken(api.auth.userClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}
