package api

import (
	"errors"
	"exercise-tracker-service/internal/service"
	"fmt"
	"github.com/go-playground/validator/v10"
	"reflect"
	"strings"
)

// Validator plugs go-playground/validator into echo and reports the first failing field.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(fieldName)
	return &Validator{validate: v}
}

func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	msg := fmt.Sprintf("%s is invalid", fe.Field())
	if fe.Tag() == "required" {
		msg = fmt.Sprintf("%s is required", fe.Field())
	}
	return &service.ValidationError{Field: fe.Field(), Message: msg}
}

// fieldName reports fields by the name clients send: json, then form, then query tag.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form", "query"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}
