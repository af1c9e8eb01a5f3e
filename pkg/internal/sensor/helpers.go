package sensor

import (
	"reflect"
	"sync"
)

func snapshotCallbacks[T any](mu *sync.Mutex, callbacks []T) []T {
	mu.Lock()
	out := append([]T(nil), callbacks...)
	mu.Unlock()
	return out
}

// appendCallbacks skips nil funcs, including typed nils passed through a
// variadic of func type.
func appendCallbacks[T any](mu *sync.Mutex, dst *[]T, callbacks []T) {
	mu.Lock()
	for _, cb := range callbacks {
		if isNilFunc(cb) {
			continue
		}
		*dst = append(*dst, cb)
	}
	mu.Unlock()
}

func isNilFunc[T any](cb T) bool {
	v := reflect.ValueOf(cb)
	if !v.IsValid() {
		return true
	}
	return v.Kind() == reflect.Func && v.IsNil()
}
