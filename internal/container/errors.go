package container

import (
	"errors"
	"strconv"
)

// ErrComponentNotFound is matched by NotFoundError via errors.Is.
var ErrComponentNotFound = errors.New("container: component not found")

// NotFoundError is returned by Lookup when no component has the requested name.
type NotFoundError struct{ Name string }

func (e NotFoundError) Error() string {
	return "container: component " + strconv.Quote(e.Name) + " not found"
}

// Unwrap lets errors.Is match ErrComponentNotFound.
func (e NotFoundError) Unwrap() error { return ErrComponentNotFound }

// WrongTypeError is returned by Lookup when the component exists but is not of the requested type.
type WrongTypeError struct {
	Name string
	Got  string
	Want string
}

func (e WrongTypeError) Error() string {
	return "container: component " + strconv.Quote(e.Name) + " is " + e.Got + ", not " + e.Want
}

// DuplicateComponentError is returned by Start when two providers share a name.
type DuplicateComponentError struct{ Name string }

func (e DuplicateComponentError) Error() string {
	return "container: duplicate component " + strconv.Quote(e.Name)
}

// NilFactoryError is returned by Start when a provider has no factory or the factory returns nil.
type NilFactoryError struct{ Name string }

func (e NilFactoryError) Error() string {
	return "container: nil factory result for " + strconv.Quote(e.Name)
}

// UnknownPackageError is returned by Scan when a base package matches nothing in the catalog.
type UnknownPackageError struct{ Path string }

func (e UnknownPackageError) Error() string {
	return "container: no catalog package under " + strconv.Quote(e.Path)
}
