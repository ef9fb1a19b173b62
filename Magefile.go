//go:build mage
// +build mage

package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace
type Run mg.Namespace

var Default = Build.Widget

var archTargets = map[string]map[string]string{
	"darwin_amd64": {
		"CGO_ENABLED": "0",
		"GOARCH":      "amd64",
		"GOOS":        "darwin",
	},
	"darwin_arm64": {
		"CGO_ENABLED": "0",
		"GOARCH":      "arm64",
		"GOOS":        "darwin",
	},
	"linux_amd64": {
		"CGO_ENABLED": "0",
		"GOARCH":      "amd64",
		"GOOS":        "linux",
	},
}

func currentArch() string {
	return runtime.GOOS + "_" + runtime.GOARCH
}

func Clean() {
	log.Printf("Cleaning all")
	os.RemoveAll("./bin")
}

func buildWidget(arch string) error {
	env, ok := archTargets[arch]
	if !ok {
		return fmt.Errorf("unknown arch %s", arch)
	}

	log.Printf("Building %s/widget\n", arch)

	return sh.RunWith(env, "go", "build", "-o", fmt.Sprintf("./bin/%s/widget", arch), "./cmd/widget")
}

// Widget builds the widget host for the current platform.
func (Build) Widget() error {
	mg.Deps(Clean)

	return buildWidget(currentArch())
}

// All cross-compiles the widget host for every known platform.
func (Build) All() error {
	mg.Deps(Clean)

	for arch := range archTargets {
		if err := buildWidget(arch); err != nil {
			return err
		}
	}

	return nil
}

func Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Widget builds and starts the widget host with the environment of the shell.
func (Run) Widget() error {
	mg.Deps(Build.Widget)

	return sh.RunV("./bin/" + currentArch() + "/widget")
}
