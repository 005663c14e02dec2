// Package runner provides startup actions run by the container after all components are ready.
package runner

import (
	"context"
	"fmt"
	"io"

	"coachdemo/internal/container"
)

// PackagePath is the catalog path under which the startup runners are discoverable.
const PackagePath = "coachdemo/internal/runner"

// CommandLineRunnerName is the component name of the greeting runner.
const CommandLineRunnerName = "commandLineRunner"

// Greeting prints "Hello World" each time it is run. Arguments are ignored.
func Greeting(out io.Writer) container.Runner {
	return container.RunnerFunc(func(_ context.Context, _ []string) error {
		_, err := fmt.Fprintln(out, "Hello World")
		return err
	})
}

// Catalog returns the runner package for component scanning.
func Catalog(out io.Writer) container.Package {
	return container.Package{
		Path: PackagePath,
		Providers: []container.Provider{
			{Name: CommandLineRunnerName, New: func(*container.Container) (any, error) { return Greeting(out), nil }},
		},
	}
}
