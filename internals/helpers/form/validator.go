package form

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

// NewValidator returns a validator that reports json field names and sees
// through the null.* wrappers (an invalid value validates as absent).
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(unwrapNull,
		null.String{}, null.Int64{}, null.Float64{}, null.Bool{}, null.Time{})
	return v
}

func unwrapNull(field reflect.Value) interface{} {
	switch n := field.Interface().(type) {
	case null.String:
		if n.Valid {
			return n.String
		}
	case null.Int64:
		if n.Valid {
			return n.Int64
		}
	case null.Float64:
		if n.Valid {
			return n.Float64
		}
	case null.Bool:
		if n.Valid {
			return n.Bool
		}
	case null.Time:
		if n.Valid {
			return n.Time
		}
	}
	return nil
}
