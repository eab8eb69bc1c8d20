package apiclient

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// validateResponse checks decoded bodies against their `validate` tags.
// Structs are validated directly; slices and maps have each struct element
// validated.
func validateResponse(v *validator.Validate, out any) error {
	rv := reflect.ValueOf(out)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		return v.Struct(rv.Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := validateElem(v, rv.Index(i)); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

func validateElem(v *validator.Validate, ev reflect.Value) error {
	for ev.Kind() == reflect.Pointer {
		if ev.IsNil() {
			return nil
		}
		ev = ev.Elem()
	}
	if ev.Kind() != reflect.Struct {
		return nil
	}
	return v.Struct(ev.Interface())
}
