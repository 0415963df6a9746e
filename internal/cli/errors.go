package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type indexError struct {
	ref   string
	index int
	count int
}

func (e indexError) Error() string {
	return fmt.Sprintf("no custom phrase at index %d in %s (have %d)", e.index, e.ref, e.count)
}
