//go:build mage

// Package main contains Mage build targets for pricelist developer tooling.
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories an extraction run expects.
var projectDirs = []string{
	"suppliers",
	"suppliers/extracted",
	"suppliers/text",
}

const (
	binDir    = "bin"
	binName   = "pricelist"
	cmdPkg    = "./cmd/pricelist"
	outputDir = "suppliers/extracted"
)

// Init creates the directory layout for supplier PDFs and extracted output.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized. Put the supplier PDFs in suppliers/.")
	return nil
}

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

// Extract builds the CLI and runs a structured extraction over suppliers/.
func Extract() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "extract")
}

// Dump builds the CLI and writes the raw text of every supplier PDF to
// suppliers/text/.
func Dump() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "dump")
}

// Stats prints Go line counts and the number of products in each
// extracted CSV table.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}

	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)

	tables, err := filepath.Glob(filepath.Join(outputDir, "*.csv"))
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		fmt.Printf("No extracted tables in %s\n", outputDir)
		return nil
	}
	for _, path := range tables {
		n, err := countRows(path)
		if err != nil {
			return err
		}
		fmt.Printf("%-32s %6d products\n", filepath.Base(path), n)
	}
	return nil
}

// countGoLines walks the tree and counts non-blank lines in Go files,
// skipping _examples. If testOnly is true, it counts only _test.go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), "_") || info.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for _, line := range bytes.Split(data, []byte("\n")) {
			if len(bytes.TrimSpace(line)) > 0 {
				total++
			}
		}
		return nil
	})
	return total, err
}

// countRows returns the number of non-empty lines after the header. Quoted
// fields never contain newlines in the extracted tables.
func countRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := -1
	s := bufio.NewScanner(f)
	for s.Scan() {
		if s.Text() != "" {
			n++
		}
	}
	if n < 0 {
		n = 0
	}
	return n, s.Err()
}
