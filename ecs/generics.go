package ecs

// Get returns the component of kind attached to e, cast to T.
func Get[T Component](e *Entity, kind Kind) (T, bool) {
	var zero T
	if e == nil {
		return zero, false
	}
	value, ok := e.GetComponent(kind)
	if !ok {
		return zero, false
	}
	cast, ok := value.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// Has reports whether e has a component of kind.
func Has(e *Entity, kind Kind) bool {
	if e == nil {
		return false
	}
	_, ok := e.GetComponent(kind)
	return ok
}
