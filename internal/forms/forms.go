// Package forms declares the typed request DTOs behind every HTML form and
// their validation rules. Validation is a pure function of the submitted
// values: it either passes or yields a structured set of field errors for
// the handler to re-render.
package forms

import (
	"errors"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldErrors flattens a validation error into a field -> message map for
// template rendering. A non-validation error yields a single generic "form"
// entry.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for name, ferr := range verrs {
			out[name] = ferr.Error()
		}
		return out
	}

	out["form"] = err.Error()
	return out
}

func field(values url.Values, name string) string {
	return strings.TrimSpace(values.Get(name))
}
