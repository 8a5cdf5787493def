package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/saynoretake/core/user"
)

type adviserApi struct {
	svc *user.Service
}

func registerAdviserAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *user.Service) {
	api := adviserApi{svc: svc}

	ag := g.Group("/adviser", jwt, roleMiddleware(user.RoleAdviser))
	ag.GET("/reports", api.reports)
}

func (api *adviserApi) reports(ctx echo.Context) error {
	report, err := api.svc.AdviserReport()
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errUnauthorized
		}
		return errors.Wrap(err, "generating adviser report")
	}
	return ctx.JSON(http.StatusOK, ReportResponse{Report: report})
}
