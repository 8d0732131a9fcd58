//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

var Default = Build.Binary

type Build mg.Namespace

// Builds the sprites binary into bin/.
func (Build) Binary() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/sprites", "./cmd/sprites"), withStream())
	return err
}

// Vets every package.
func (Build) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

type Test mg.Namespace

// Runs the unit tests. The GPU backends only run pure helper tests.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs the unit tests with the race detector.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

type Run mg.Namespace

// Runs the sprite window on the WebGPU backend.
func (Run) WGPU() error {
	mg.Deps(Build.Binary)
	_, err := executeCmd("bin/sprites", withArgs("-backend", "wgpu"), withStream())
	return err
}

// Runs the sprite window on the OpenGL backend.
func (Run) GL() error {
	mg.Deps(Build.Binary)
	_, err := executeCmd("bin/sprites", withArgs("-backend", "gl"), withStream())
	return err
}
