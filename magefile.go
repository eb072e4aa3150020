//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	binDir   = "bin"
	commands = []string{"livelist", "gateway-stub"}
)

var Default = Build

// Build compiles every command into bin/.
func Build() error {
	mg.Deps(Tidy)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}

	env := map[string]string{"CGO_ENABLED": "0"}
	for _, cmd := range commands {
		out := filepath.Join(binDir, cmd+exeSuffix())
		fmt.Println("Building:", out)
		if err := sh.RunWithV(env, "go", "build", "-trimpath", "-o", out, "./cmd/"+cmd); err != nil {
			return err
		}
	}
	return nil
}

// Test runs the unit tests. Container-backed tests are skipped.
func Test() error {
	fmt.Println("Testing (short)...")
	return sh.RunV("go", "test", "-short", "-race", "-count=1", "./...")
}

// Integration runs every test, including the testcontainers suites. Needs Docker.
func Integration() error {
	fmt.Println("Testing with containers...")
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Lint runs go vet, and golangci-lint when it is installed.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println("golangci-lint not found, skipping")
		return nil
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Seed applies the schema and demo data to the configured database.
func Seed() error {
	return sh.RunV("go", "run", "./scripts/seed_gateway_db.go")
}

// Sessions writes sample session hint files under data/sessions.
func Sessions() error {
	return sh.RunV("go", "run", "./scripts/generate_sample_sessions.go")
}

// Stub starts the gateway stub.
func Stub() error {
	return sh.RunV("go", "run", "./cmd/gateway-stub")
}

func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

func Clean() error {
	fmt.Println("Cleaning...")
	return os.RemoveAll(binDir)
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
