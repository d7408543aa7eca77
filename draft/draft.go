package draft

import (
	"math"
	"reflect"
)

// Produce applies mutate to a private deep copy of base and returns the committed value.
//
// base is never modified. Subtrees the mutator left alone are replaced by the
// corresponding subtrees of base, and base itself is returned when nothing changed.
// A panic inside mutate propagates; base is still untouched.
func Produce[S any](base S, mutate func(draft *S)) S {
	next := Clone(base)
	mutate(&next)

	nv := reflect.ValueOf(&next).Elem()
	bv := reflect.ValueOf(&base).Elem()
	if !finalize(nv, bv) {
		return base
	}
	return next
}

// Clone returns a deep copy of v.
func Clone[S any](v S) S {
	var out S
	deepCopy(reflect.ValueOf(&out).Elem(), reflect.ValueOf(&v).Elem())
	return out
}

// Changed reports whether next differs from base, treating identical references as equal.
func Changed[S any](base, next S) bool {
	return !shallowEqual(reflect.ValueOf(&next).Elem(), reflect.ValueOf(&base).Elem(), true)
}

// deepCopy writes a deep copy of src into the settable dst of the same type.
func deepCopy(dst, src reflect.Value) {
	switch src.Kind() {
	case reflect.Pointer:
		if src.IsNil() {
			dst.Set(src)
			return
		}
		p := reflect.New(src.Type().Elem())
		deepCopy(p.Elem(), src.Elem())
		dst.Set(p)

	case reflect.Map:
		if src.IsNil() {
			dst.Set(src)
			return
		}
		m := reflect.MakeMapWithSize(src.Type(), src.Len())
		iter := src.MapRange()
		for iter.Next() {
			v := reflect.New(src.Type().Elem()).Elem()
			deepCopy(v, iter.Value())
			m.SetMapIndex(iter.Key(), v)
		}
		dst.Set(m)

	case reflect.Slice:
		if src.IsNil() {
			dst.Set(src)
			return
		}
		s := reflect.MakeSlice(src.Type(), src.Len(), src.Cap())
		for i := 0; i < src.Len(); i++ {
			deepCopy(s.Index(i), src.Index(i))
		}
		dst.Set(s)

	case reflect.Array:
		for i := 0; i < src.Len(); i++ {
			deepCopy(dst.Index(i), src.Index(i))
		}

	case reflect.Struct:
		// unexported fields ride along with the shallow copy
		dst.Set(src)
		for i := 0; i < src.NumField(); i++ {
			if f := dst.Field(i); f.CanSet() {
				deepCopy(f, src.Field(i))
			}
		}

	case reflect.Interface:
		if src.IsNil() {
			dst.Set(src)
			return
		}
		elem := src.Elem()
		v := reflect.New(elem.Type()).Elem()
		deepCopy(v, elem)
		dst.Set(v)

	default:
		dst.Set(src)
	}
}

// finalize compares the drafted next against base, writes base subtrees back into
// next wherever nothing changed, and reports whether anything changed.
// next must be settable.
func finalize(next, base reflect.Value) bool {
	changed := false

	switch next.Kind() {
	case reflect.Pointer:
		switch {
		case next.IsNil() || base.IsNil():
			changed = next.IsNil() != base.IsNil()
		case next.Pointer() == base.Pointer():
		default:
			changed = finalize(next.Elem(), base.Elem())
		}

	case reflect.Map:
		switch {
		case next.IsNil() || base.IsNil():
			changed = next.IsNil() != base.IsNil()
		case next.Pointer() == base.Pointer():
		default:
			changed = next.Len() != base.Len()
			for _, k := range next.MapKeys() {
				bv := base.MapIndex(k)
				if !bv.IsValid() {
					changed = true
					continue
				}
				tmp := reflect.New(next.Type().Elem()).Elem()
				tmp.Set(next.MapIndex(k))
				if finalize(tmp, bv) {
					changed = true
				}
				next.SetMapIndex(k, tmp)
			}
		}

	case reflect.Slice:
		switch {
		case next.IsNil() || base.IsNil():
			changed = next.IsNil() != base.IsNil()
		case next.Pointer() == base.Pointer() && next.Len() == base.Len():
		default:
			changed = next.Len() != base.Len()
			n := min(next.Len(), base.Len())
			for i := 0; i < n; i++ {
				if finalize(next.Index(i), base.Index(i)) {
					changed = true
				}
			}
		}

	case reflect.Array:
		for i := 0; i < next.Len(); i++ {
			if finalize(next.Index(i), base.Index(i)) {
				changed = true
			}
		}

	case reflect.Struct:
		for i := 0; i < next.NumField(); i++ {
			nf, bf := next.Field(i), base.Field(i)
			if nf.CanSet() {
				if finalize(nf, bf) {
					changed = true
				}
			} else if !shallowEqual(nf, bf, false) {
				changed = true
			}
		}

	case reflect.Interface:
		switch {
		case next.IsNil() || base.IsNil():
			changed = next.IsNil() != base.IsNil()
		case next.Elem().Type() != base.Elem().Type():
			changed = true
		default:
			tmp := reflect.New(next.Elem().Type()).Elem()
			tmp.Set(next.Elem())
			changed = finalize(tmp, base.Elem())
			if changed {
				next.Set(tmp)
			}
		}

	default:
		changed = !leafEqual(next, base)
	}

	if !changed && next.CanSet() && base.CanInterface() {
		next.Set(base)
	}
	return changed
}

// shallowEqual compares values that cannot be drafted. Reference kinds are
// equal when they point at the same memory. When deep is set, references
// that differ are compared by content.
func shallowEqual(a, b reflect.Value, deep bool) bool {
	switch a.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		if a.Pointer() == b.Pointer() && (a.Kind() == reflect.Pointer || a.Len() == b.Len()) {
			return true
		}
		if !deep {
			return false
		}
		return deepEqual(a, b)

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()

	case reflect.Array:
		for i := 0; i < a.Len(); i++ {
			if !shallowEqual(a.Index(i), b.Index(i), deep) {
				return false
			}
		}
		return true

	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !shallowEqual(a.Field(i), b.Field(i), deep) {
				return false
			}
		}
		return true

	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		if a.Elem().Type() != b.Elem().Type() {
			return false
		}
		return shallowEqual(a.Elem(), b.Elem(), deep)

	default:
		return leafEqual(a, b)
	}
}

// deepEqual compares the contents of two non-nil references of the same kind.
func deepEqual(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Pointer:
		return shallowEqual(a.Elem(), b.Elem(), true)
	case reflect.Map:
		if a.Len() != b.Len() {
			return false
		}
		for _, k := range a.MapKeys() {
			bv := b.MapIndex(k)
			if !bv.IsValid() || !shallowEqual(a.MapIndex(k), bv, true) {
				return false
			}
		}
		return true
	case reflect.Slice:
		if a.Len() != b.Len() {
			return false
		}
		for i := 0; i < a.Len(); i++ {
			if !shallowEqual(a.Index(i), b.Index(i), true) {
				return false
			}
		}
		return true
	}
	return false
}

func leafEqual(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		// bitwise so NaN compares equal to itself
		return math.Float64bits(a.Float()) == math.Float64bits(b.Float())
	case reflect.Complex64, reflect.Complex128:
		ca, cb := a.Complex(), b.Complex()
		return math.Float64bits(real(ca)) == math.Float64bits(real(cb)) &&
			math.Float64bits(imag(ca)) == math.Float64bits(imag(cb))
	case reflect.String:
		return a.String() == b.String()
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Invalid:
		return !b.IsValid()
	}
	return false
}
