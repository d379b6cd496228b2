package form

import (
	"reflect"
	"strings"

	"github.com/volatiletech/null/v8"
)

type normalizer interface{ Normalize() }

var nullStringType = reflect.TypeOf(null.String{})

// Normalize trims strings and turns blank optional values into null, so
// "" from an untouched input never reaches the database. It then calls the
// form's own Normalize when present.
func Normalize(in any) {
	rv := reflect.ValueOf(in)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	rv = rv.Elem()
	if rv.Kind() == reflect.Struct {
		for i := 0; i < rv.NumField(); i++ {
			f := rv.Field(i)
			if !f.CanSet() {
				continue
			}
			switch {
			case f.Type() == nullStringType:
				ns := f.Interface().(null.String)
				if !ns.Valid {
					continue
				}
				if s := strings.TrimSpace(ns.String); s == "" {
					f.Set(reflect.ValueOf(null.String{}))
				} else {
					f.Set(reflect.ValueOf(null.StringFrom(s)))
				}
			case f.Kind() == reflect.String:
				f.SetString(strings.TrimSpace(f.String()))
			case f.Kind() == reflect.Pointer && f.Type().Elem().Kind() == reflect.String:
				if f.IsNil() {
					continue
				}
				if s := strings.TrimSpace(f.Elem().String()); s == "" {
					f.Set(reflect.Zero(f.Type()))
				} else {
					f.Elem().SetString(s)
				}
			}
		}
	}
	if n, ok := in.(normalizer); ok {
		n.Normalize()
	}
}

// StringPtr maps an optional text value to a nullable column value.
func StringPtr(s null.String) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func Int64Ptr(n null.Int64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
