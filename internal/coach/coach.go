// Package coach holds the Coach capability and its implementations.
package coach

import (
	"fmt"
	"io"
	"reflect"

	"coachdemo/internal/container"
)

// PackagePath is the catalog path under which the coaches are discoverable.
const PackagePath = "coachdemo/internal/coach"

// Component names registered by Catalog.
const (
	CricketCoachName  = "cricketCoach"
	BaseballCoachName = "baseballCoach"
	TrackCoachName    = "trackCoach"
	TennisCoachName   = "tennisCoach"
)

// DefaultName is served when no coach type is configured.
const DefaultName = CricketCoachName

// Coach is what callers depend on; they never see the concrete type.
type Coach interface {
	GetDailyWorkout() string
}

// Catalog returns the coach package for component scanning. Lifecycle messages are written to out.
func Catalog(out io.Writer) container.Package {
	return container.Package{
		Path: PackagePath,
		Providers: []container.Provider{
			{Name: CricketCoachName, New: func(*container.Container) (any, error) { return NewCricketCoach(out), nil }},
			{Name: BaseballCoachName, New: func(*container.Container) (any, error) { return NewBaseballCoach(out), nil }},
			{Name: TrackCoachName, New: func(*container.Container) (any, error) { return NewTrackCoach(out), nil }},
			{Name: TennisCoachName, New: func(*container.Container) (any, error) { return NewTennisCoach(out), nil }},
		},
	}
}

// Resolve returns the coach registered under name, or the default coach when name is empty.
func Resolve(c *container.Container, name string) (Coach, error) {
	if name == "" {
		name = DefaultName
	}
	return container.Lookup[Coach](c, name)
}

// typeName is the simple type name used in lifecycle messages.
func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func announce(out io.Writer, phase string, v any) {
	fmt.Fprintf(out, "In %s: %s\n", phase, typeName(v))
}
