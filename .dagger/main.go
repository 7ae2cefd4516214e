// Duet CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
// It is the main harness for handling nearly all dev operations.
package main

import (
	"context"

	"dagger/duet/internal/dagger"
)

// Duet is the main module for the duet CI/CD pipeline
type Duet struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new Duet CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp"]
	source *dagger.Directory,
) *Duet {
	return &Duet{
		Source: source,
	}
}

// goContainer returns a Debian Bookworm-based Go container with the project
// source mounted. The relay tests shell out to fake model tools, so /bin/sh
// must be present.
//
// It is the shared foundation for tests and linting.
func (d *Duet) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-bookworm").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", d.Source)
}

// Test runs the duet unit tests via "go test"
//
// +check
func (d *Duet) Test(ctx context.Context) (string, error) {
	return d.goContainer().
		WithExec([]string{"go", "test", "-v", "./..."}).
		Stdout(ctx)
}
