//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var binDir = "bin"

// binaries built by Build, keyed by output name.
var binaries = map[string]string{
	"adminhub-api":    "./cmd/api-server",
	"adminhub-grpc":   "./cmd/grpc-server",
	"adminhub":        "./cmd/cli",
	"export-csv":      "./cmd/export-csv",
	"create-operator": "./cmd/create-operator",
}

var Default = Build

func Build() error {
	mg.Deps(Tidy)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	// go-sqlite3 needs cgo.
	env := map[string]string{"CGO_ENABLED": "1"}
	for name, pkg := range binaries {
		out := filepath.Join(binDir, name+exeSuffix())
		fmt.Println("Building:", out)
		if err := sh.RunWithV(env, "go", "build", "-trimpath", "-o", out, pkg); err != nil {
			return err
		}
	}
	return nil
}

// Run starts the HTTP API on ADMINHUB_HTTP_ADDR (default :8080).
func Run() error {
	return sh.RunV("go", "run", "./cmd/api-server")
}

func RunGRPC() error {
	return sh.RunV("go", "run", "./cmd/grpc-server")
}

func Test() error {
	fmt.Println("Testing...")
	return sh.RunV("go", "test", "./...", "-count=1")
}

func TestRace() error {
	fmt.Println("Testing with -race...")
	return sh.RunV("go", "test", "./...", "-race", "-count=1")
}

func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

func Fmt() error {
	fmt.Println("Formatting...")
	return sh.RunV("gofmt", "-w", "./cmd", "./internal", "./pkg", "./magefile.go")
}

func Check() error {
	mg.Deps(Fmt, Vet, Test)
	fmt.Println("Check OK.")
	return nil
}

func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

func Clean() error {
	return os.RemoveAll(binDir)
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
