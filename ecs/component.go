package ecs

import (
	"fmt"
	"reflect"
)

// Component is a named bundle of plain data attached to an entity.
// Within one entity, component names are unique: adding a second component
// with the same name replaces the stored instance.
//
// Components that should support field patching via Entity.Set must be
// pointers to structs; value components remain readable through Entity.Get
// but reject Set.
type Component interface {
	Name() string
}

// setFields overwrites the named fields on the stored component instance.
// Field names must match exported struct fields exactly; values are
// converted to the field type when the conversion is lossless per Go
// conversion rules.
func setFields(c Component, fields map[string]any) error {
	v := reflect.ValueOf(c)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("component %q is not a struct", c.Name())
	}
	if !v.CanSet() {
		return fmt.Errorf("component %q is not addressable (store a pointer to use Set)", c.Name())
	}

	for name, value := range fields {
		field := v.FieldByName(name)
		if !field.IsValid() || !field.CanSet() {
			return fmt.Errorf("component %q, field %q: %w", c.Name(), name, ErrUnknownField)
		}

		val := reflect.ValueOf(value)
		if !val.IsValid() {
			// nil: only valid for nilable field kinds
			switch field.Kind() {
			case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
				field.Set(reflect.Zero(field.Type()))
				continue
			default:
				return fmt.Errorf("component %q, field %q: cannot assign nil: %w", c.Name(), name, ErrUnknownField)
			}
		}

		if !val.Type().AssignableTo(field.Type()) {
			if !val.Type().ConvertibleTo(field.Type()) {
				return fmt.Errorf("component %q, field %q: cannot assign %s to %s: %w",
					c.Name(), name, val.Type(), field.Type(), ErrUnknownField)
			}
			val = val.Convert(field.Type())
		}
		field.Set(val)
	}

	return nil
}
