package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/validator.v9"
	enTranslations "gopkg.in/go-playground/validator.v9/translations/en"
)

var (
	uni      *ut.UniversalTranslator
	trans    ut.Translator
	validate = validator.New()
)

// FieldError is returned by StructParam for the first failing field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func init() {
	ent := en.New()
	uni = ut.New(ent, ent)
	trans, _ = uni.GetTranslator("en")
	err := enTranslations.RegisterDefaultTranslations(validate, trans)
	if err != nil {
		panic(err)
	}
	// 使用 mapstructure / json 标签作为字段名
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"mapstructure", "json"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
}

func StructParam(val interface{}) error {
	err := validate.Struct(val)
	if err != nil {
		if errNew, ok := err.(*validator.InvalidValidationError); ok {
			panic(errNew)
		}
		for _, e := range err.(validator.ValidationErrors) {
			return &FieldError{Field: e.Field(), Message: e.Translate(trans)}
		}
		return errors.WithStack(err)
	}

	return nil
}
