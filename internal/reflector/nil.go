// Package reflector answers reflection questions about values whose type is
// only known at run time, caching per-type results.
package reflector

import (
	"reflect"
	"sync"
)

var nilable sync.Map // reflect.Type -> bool

// IsNil reports whether x is nil or holds a nil pointer, map, slice, channel,
// function or interface.
func IsNil(x any) bool {
	if x == nil {
		return true
	}
	if !canBeNil(reflect.TypeOf(x)) {
		return false
	}
	return reflect.ValueOf(x).IsNil()
}

func canBeNil(t reflect.Type) bool {
	if v, ok := nilable.Load(t); ok {
		return v.(bool)
	}
	var ok bool
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		ok = true
	}
	nilable.Store(t, ok)
	return ok
}
