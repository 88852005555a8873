// Package validate checks values against their declared `validate` struct
// tags and reports failures as [FieldErrors].
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate
var translator ut.Translator

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("validate: failed to get 'en' translator")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})
}

// Check validates val against its declared tags. Pointers are followed to
// the value they point at, and the elements of slices, arrays and maps are
// checked one by one, with their index or key prefixed to the field name.
// Nil pointers and values carrying no struct tags always pass.
func Check(val any) error {
	return check(reflect.ValueOf(val), "")
}

func check(v reflect.Value, prefix string) error {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		return checkStruct(v, prefix)

	case reflect.Slice, reflect.Array:
		var fields FieldErrors
		for i := range v.Len() {
			if err := collect(&fields, check(v.Index(i), fmt.Sprintf("%s[%d].", prefix, i))); err != nil {
				return err
			}
		}
		return fields.orNil()

	case reflect.Map:
		keys := v.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
		})

		var fields FieldErrors
		for _, k := range keys {
			if err := collect(&fields, check(v.MapIndex(k), fmt.Sprintf("%s[%v].", prefix, k.Interface()))); err != nil {
				return err
			}
		}
		return fields.orNil()
	}

	return nil
}

func checkStruct(v reflect.Value, prefix string) error {
	if !v.CanInterface() {
		return nil
	}

	err := validate.Struct(v.Interface())
	if err == nil {
		return nil
	}

	var verrors validator.ValidationErrors
	if !errors.As(err, &verrors) {
		return err
	}

	fields := make(FieldErrors, 0, len(verrors))
	for _, verror := range verrors {
		fields = append(fields, FieldError{
			Field: prefix + verror.Field(),
			Err:   customErrForTag(verror.Tag(), verror),
		})
	}
	return fields
}

// collect appends field failures from err to fields and returns any other
// error unchanged.
func collect(fields *FieldErrors, err error) error {
	if err == nil {
		return nil
	}

	var fe FieldErrors
	if !errors.As(err, &fe) {
		return err
	}

	*fields = append(*fields, fe...)
	return nil
}

func customErrForTag(tag string, verror validator.FieldError) string {
	switch tag {
	case "required":
		return "This field is required"
	case "oneof":
		return verror.Field() + " must be one of [" + verror.Param() + "]"
	default:
		return verror.Translate(translator)
	}
}

// FieldError is a single validation failure on a named field.
type FieldError struct {
	Field string `json:"field"`
	Err   string `json:"error"`
}

// FieldErrors represents a collection of field errors.
type FieldErrors []FieldError

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.Field + ": " + f.Err
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Fields returns the failed fields keyed by name.
func (fe FieldErrors) Fields() map[string]string {
	m := make(map[string]string, len(fe))
	for _, fld := range fe {
		m[fld.Field] = fld.Err
	}
	return m
}

// GetFieldErrors extracts FieldErrors from err, or nil if there are none.
func GetFieldErrors(err error) FieldErrors {
	var fe FieldErrors
	if !errors.As(err, &fe) {
		return nil
	}
	return fe
}
