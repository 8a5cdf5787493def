package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/saynoretake/core"
	"github.com/trezcool/saynoretake/core/strategy"
	"github.com/trezcool/saynoretake/core/subject"
	"github.com/trezcool/saynoretake/core/user"
)

type (
	ReportResponse struct {
		Report string `json:"report"`
	}

	AssessmentResponse struct {
		Strategy string `json:"strategy"`
		Result   string `json:"result"`
	}
)

type studentApi struct {
	svc      *user.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *user.Service, validate *validator.Validate) {
	api := studentApi{
		svc:      svc,
		validate: validate,
	}

	sg := g.Group("/student", jwt, roleMiddleware(user.RoleStudent))
	sg.GET("/report", api.report)
	sg.GET("/subjects", api.subjects)
	sg.POST("/grades", api.addGrade)
	sg.GET("/assessments/:strategy", api.assess)
}

// Handlers

func (api *studentApi) report(ctx echo.Context) error {
	name, err := contextUserName(ctx)
	if err != nil {
		return err
	}
	report, err := api.svc.StudentReport(name)
	if err != nil {
		return studentError(err, "generating report")
	}
	return ctx.JSON(http.StatusOK, ReportResponse{Report: report})
}

func (api *studentApi) subjects(ctx echo.Context) error {
	name, err := contextUserName(ctx)
	if err != nil {
		return err
	}
	subs, err := api.svc.Subjects(name)
	if err != nil {
		return studentError(err, "listing subjects")
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *studentApi) addGrade(ctx echo.Context) error {
	name, err := contextUserName(ctx)
	if err != nil {
		return err
	}

	var data user.NewGrade
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if err = api.svc.AddGrade(name, data); err != nil {
		switch errors.Cause(err) {
		case user.ErrSubjectNotFound:
			return core.NewValidationError(err, core.FieldError{Field: "subject", Error: err.Error()})
		case subject.ErrUnknownCategory:
			return core.NewValidationError(err, core.FieldError{Field: "category", Error: err.Error()})
		case subject.ErrCapExceeded, subject.ErrInvalidAmount:
			return core.NewValidationError(err, core.FieldError{Field: "score", Error: err.Error()})
		}
		return studentError(err, "adding grade")
	}

	report, err := api.svc.StudentReport(name)
	if err != nil {
		return studentError(err, "generating report")
	}
	return ctx.JSON(http.StatusCreated, ReportResponse{Report: report})
}

func (api *studentApi) assess(ctx echo.Context) error {
	name, err := contextUserName(ctx)
	if err != nil {
		return err
	}

	strat := ctx.Param("strategy")
	result, err := api.svc.Assess(name, strat)
	if err != nil {
		if errors.Cause(err) == strategy.ErrUnknownStrategy {
			return errHttpNotFound
		}
		return studentError(err, "assessing")
	}
	return ctx.JSON(http.StatusOK, AssessmentResponse{Strategy: core.CleanString(strat, true /* lower */), Result: result})
}

func contextUserName(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", errors.Wrap(err, "getting context claims")
	}
	return claims.Subject, nil
}

// studentError hides the cause of a token naming a student this session does not know.
func studentError(err error, msg string) error {
	if errors.Cause(err) == user.ErrNotFound {
		return errUnauthorized
	}
	return errors.Wrap(err, msg)
}
