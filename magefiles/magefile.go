//go:build mage

// Package main contains Mage build targets for pdfpages developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the renderer expects. The input
// directory is never created by pdfpages itself.
var projectDirs = []string{
	"references",
	"references/images",
}

// Init creates the input and image directories.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "pdfpages"
	cmdPkg  = "./cmd/pdfpages"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Render builds the CLI and renders every PDF in references/.
func Render() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "render")
}

// Status prints the latest outcome per PDF from the run ledger.
func Status() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "status")
}
