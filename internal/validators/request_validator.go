package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/fornecedor-api/models"
)

// Field name constants used to restrict validation to a subset of fields.
// They match the JSON names of the payloads.
const (
	FieldName            = "nome"
	FieldDocument        = "documento"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// Length limits.
const (
	MaxNameLength     = 100
	MaxDocumentLength = 20
	MinPasswordLength = 6
	MaxPasswordLength = 100
)

// RequestValidator implements the Validator interface for every inbound
// payload: models.Supplier, models.RegisterUser and models.LoginUser.
//
// It collects all violations instead of stopping at the first one and
// returns them as ValidationErrors.
type RequestValidator struct {
	emailValidator *validator.Validate
}

// NewRequestValidator constructs a new RequestValidator
// and returns it as the Validator interface.
func NewRequestValidator() Validator {
	return &RequestValidator{emailValidator: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Returns ErrUnsupportedType if obj does not match any known model and
// ErrUnknownField if a requested field does not belong to it.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Supplier:
		return v.validateSupplier(value, fields...)
	case *models.Supplier:
		return v.validateSupplier(*value, fields...)

	case models.RegisterUser:
		return v.validateRegisterUser(ctx, value, fields...)
	case *models.RegisterUser:
		return v.validateRegisterUser(ctx, *value, fields...)

	case models.LoginUser:
		return v.validateLoginUser(ctx, value, fields...)
	case *models.LoginUser:
		return v.validateLoginUser(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RequestValidator) validateSupplier(s models.Supplier, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldDocument}
	}

	errs := ValidationErrors{}
	for _, f := range fields {
		switch f {
		case FieldName:
			requiredMax(errs, f, s.Name, MaxNameLength)
		case FieldDocument:
			requiredMax(errs, f, s.Document, MaxDocumentLength)
		default:
			return ErrUnknownField
		}
	}

	return errs.errOrNil()
}

func (v *RequestValidator) validateRegisterUser(ctx context.Context, u models.RegisterUser, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldConfirmPassword}
	}

	errs := ValidationErrors{}
	for _, f := range fields {
		switch f {
		case FieldEmail:
			v.email(ctx, errs, u.Email)
		case FieldPassword:
			password(errs, u.Password)
		case FieldConfirmPassword:
			if u.ConfirmPassword != u.Password {
				errs.Add(FieldConfirmPassword, msgPasswordMatch)
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.errOrNil()
}

func (v *RequestValidator) validateLoginUser(ctx context.Context, u models.LoginUser, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	errs := ValidationErrors{}
	for _, f := range fields {
		switch f {
		case FieldEmail:
			v.email(ctx, errs, u.Email)
		case FieldPassword:
			password(errs, u.Password)
		default:
			return ErrUnknownField
		}
	}

	return errs.errOrNil()
}

func (v *RequestValidator) email(ctx context.Context, errs ValidationErrors, email string) {
	if strings.TrimSpace(email) == "" {
		errs.Addf(FieldEmail, msgRequired, FieldEmail)
		return
	}
	if err := v.emailValidator.VarCtx(ctx, strings.TrimSpace(email), "email"); err != nil {
		errs.Addf(FieldEmail, msgInvalidEmail, FieldEmail)
	}
}

func password(errs ValidationErrors, pwd string) {
	if pwd == "" {
		errs.Addf(FieldPassword, msgRequired, FieldPassword)
		return
	}
	if n := utf8.RuneCountInString(pwd); n < MinPasswordLength || n > MaxPasswordLength {
		errs.Addf(FieldPassword, msgLengthBetween, FieldPassword, MinPasswordLength, MaxPasswordLength)
	}
}

func requiredMax(errs ValidationErrors, field, value string, maxLen int) {
	if strings.TrimSpace(value) == "" {
		errs.Addf(field, msgRequired, field)
		return
	}
	if utf8.RuneCountInString(value) > maxLen {
		errs.Addf(field, msgMaxLength, field, maxLen)
	}
}
