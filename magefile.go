//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
var Default = Build

// Build builds the worttrainer binary
func Build() error {
	mg.Deps(Vet)
	return sh.RunV("go", "build", "-o", "worttrainer", "./cmd/worttrainer")
}

// Install installs worttrainer into GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/worttrainer")
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs all tests with the race detector
func Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes the built binary
func Clean() error {
	return sh.Rm("worttrainer")
}
