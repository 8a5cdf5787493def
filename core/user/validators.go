package user

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/saynoretake/core"
)

var (
	roleTag  = "role"
	roleText = "invalid user type; expected one of Adviser, Student"

	adviserNameTag  = "adviser_required"
	adviserNameText = ErrAdviserNameRequired.Error()
)

// InitValidators registers the user validators & their translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)

	validate.RegisterStructValidation(loginStructValidation, LoginRequest{})
	core.RegisterCustomTranslation(validate, translator, adviserNameTag, adviserNameText)
}

// Custom Validators

// roleValidation checks that the role tag is one of AllRoles
func roleValidation(fl validator.FieldLevel) bool {
	if tag, ok := fl.Field().Interface().(string); ok {
		_, err := ParseRole(tag)
		return err == nil
	}
	return false
}

// loginStructValidation requires an adviser name from students
func loginStructValidation(sl validator.StructLevel) {
	if lr, ok := sl.Current().Interface().(LoginRequest); ok {
		if role, err := ParseRole(lr.Role); err == nil && role == RoleStudent && lr.AdviserName == "" {
			sl.ReportError(lr.AdviserName, "adviser_name", "AdviserName", adviserNameTag, "")
		}
	}
}
