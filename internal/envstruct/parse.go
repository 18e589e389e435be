// Package envstruct populates configuration structs from environment
// variables declared with struct tags.
package envstruct

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrEnvNotSet    = errors.New("environment variable not set")
	ErrInvalidValue = errors.New("v must be a pointer to a struct")
)

// Populate fills the string fields of *v from the environment.
//
// lookupEnv has the same signature as [os.LookupEnv]. Fields opt in with an
// `env:"NAME"` tag; when NAME is unset the `envDefault:"value"` tag supplies a
// fallback, otherwise ErrEnvNotSet is reported for that field. All field
// errors are joined so a misconfigured deployment reports everything at once.
func Populate(v any, lookupEnv func(string) (string, bool)) error {
	ptrRef := reflect.ValueOf(v)
	if ptrRef.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: not pointer: %v", ErrInvalidValue, v)
	}
	ref := ptrRef.Elem()
	if ref.Kind() != reflect.Struct {
		return fmt.Errorf("%w: not struct: %v", ErrInvalidValue, v)
	}

	var errs []error
	refType := ref.Type()
	for i := range refType.NumField() {
		if err := populateField(ref.Field(i), refType.Field(i), lookupEnv); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func populateField(
	field reflect.Value,
	fieldType reflect.StructField,
	lookupEnv func(string) (string, bool),
) error {
	name, tagged := fieldType.Tag.Lookup("env")
	if !tagged {
		return nil
	}
	if !field.CanSet() {
		return fmt.Errorf("%w: cannot set field: %s", ErrInvalidValue, fieldType.Name)
	}
	if field.Kind() != reflect.String {
		return fmt.Errorf("%w: only strings are supported - field: %s, type: %s, env: %s",
			ErrInvalidValue, fieldType.Name, field.Kind().String(), name)
	}

	value, found := lookupEnv(name)
	if !found {
		value, found = fieldType.Tag.Lookup("envDefault")
		if !found {
			return fmt.Errorf("%w: environment variable not set: %s", ErrEnvNotSet, name)
		}
	}
	field.SetString(value)
	return nil
}
