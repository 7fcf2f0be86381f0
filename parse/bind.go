package parse

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Setter is implemented by struct fields that control their own
// conversion from the bound value. The interface is compatible with
// flag.Value.
type Setter interface {
	Set(string) error
}

// Bind fills the fields of the struct pointed to by dst from the
// result, giving command bodies a typed record instead of keyed
// lookups.
//
// Each exported field maps to the binding named by its `cli` struct
// tag, or by the field name in lower case. Fields whose binding is
// absent are left at their zero value. String values convert to
// numeric, bool, and Setter fields as needed; repeatable accumulators
// fill slice and map fields.
func Bind(r *Result, dst interface{}) error {
	ptr := reflect.ValueOf(dst)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Struct {
		return errors.New("must pass a pointer to a struct to parse.Bind")
	}
	value := ptr.Elem()
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			// unexported
			continue
		}
		name := field.Tag.Get("cli")
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		bound, ok := r.Value(name)
		if !ok || bound == nil {
			continue
		}
		if err := assign(value.Field(i), bound); err != nil {
			return fmt.Errorf("binding %s: %v", name, err)
		}
	}
	return nil
}

func assign(field reflect.Value, v interface{}) error {
	if s, ok := v.(string); ok {
		if setter, ok := field.Addr().Interface().(Setter); ok {
			return setter.Set(s)
		}
	}

	val := reflect.ValueOf(v)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}

	switch field.Kind() {
	case reflect.Slice:
		list, ok := v.([]interface{})
		if !ok {
			break
		}
		out := reflect.MakeSlice(field.Type(), 0, len(list))
		for _, e := range list {
			elem := reflect.New(field.Type().Elem()).Elem()
			if err := assign(elem, e); err != nil {
				return err
			}
			out = reflect.Append(out, elem)
		}
		field.Set(out)
		return nil

	case reflect.Map:
		m, ok := v.(map[string]interface{})
		if !ok {
			break
		}
		out := reflect.MakeMapWithSize(field.Type(), len(m))
		for k, e := range m {
			elem := reflect.New(field.Type().Elem()).Elem()
			if err := assign(elem, e); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k), elem)
		}
		field.Set(out)
		return nil
	}

	if s, ok := v.(string); ok {
		return assignString(field, s)
	}
	return fmt.Errorf("cannot assign %T to %s", v, field.Type())
}

// assignString converts a raw string binding into the basic kinds a
// command body is likely to declare.
func assignString(field reflect.Value, s string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	default:
		return fmt.Errorf("cannot parse into %s", field.Type())
	}
	return nil
}
