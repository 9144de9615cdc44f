package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validator 包装 go-playground/validator，字段名取 json tag
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v := &Validator{validate: validate}
	v.registerRules()
	return v
}

func (v *Validator) registerRules() {
	// 视频观看进度 0.0-1.0
	v.validate.RegisterValidation("fraction", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return f >= 0 && f <= 1
	})

	// 上传标识只允许字母数字、下划线和连字符，用作 redis key 和临时目录名
	v.validate.RegisterValidation("upload_id", func(fl validator.FieldLevel) bool {
		id := fl.Field().String()
		if id == "" || len(id) > 100 {
			return false
		}
		for _, r := range id {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_') {
				return false
			}
		}
		return true
	})
}

// Struct 校验结构体，失败时返回 ValidationErrors
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	return toValidationErrors(err)
}

func toValidationErrors(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fieldPath(fe),
			Message: message(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

// fieldPath 去掉顶层结构体名，例如 CompleteAttemptRequest.answers[0].questionId -> answers[0].questionId
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "uuid":
		return "must be a valid UUID"
	case "fraction":
		return "must be between 0 and 1"
	case "upload_id":
		return "must contain only letters, digits, '-' or '_'"
	case "ltfield":
		return "must be less than " + fe.Param()
	default:
		return fmt.Sprintf("failed on '%s' rule", fe.Tag())
	}
}
