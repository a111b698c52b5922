// Package codegentest type-checks generated vendor tables in tests.
package codegentest

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ginjaninja78/pnp-vendors/internal/codegen"
)

// TypeCheck compiles src, a generated vendor table, against the sources of
// the pnp package. Source declaring package pnp is checked as part of that
// package; any other package imports it.
func TypeCheck(src []byte) error {
	fset := token.NewFileSet()

	generated, err := parser.ParseFile(fset, "vendors.go", src, 0)
	if err != nil {
		return err
	}

	vendorFiles, err := parseVendorPackage(fset)
	if err != nil {
		return err
	}

	std := importer.ForCompiler(fset, "source", nil)
	conf := types.Config{Importer: std}

	if generated.Name.Name == codegen.VendorPackageName {
		_, err := conf.Check(codegen.VendorPackagePath, fset, append(vendorFiles, generated), nil)
		return err
	}

	vendorPkg, err := conf.Check(codegen.VendorPackagePath, fset, vendorFiles, nil)
	if err != nil {
		return fmt.Errorf("vendor package: %w", err)
	}

	conf.Importer = importerFunc(func(path string) (*types.Package, error) {
		if path == codegen.VendorPackagePath {
			return vendorPkg, nil
		}
		return std.Import(path)
	})

	_, err = conf.Check("example.com/"+generated.Name.Name, fset, []*ast.File{generated}, nil)
	return err
}

// parseVendorPackage parses the hand-written files of the pnp package. A
// previously generated vendors.go is left out.
func parseVendorPackage(fset *token.FileSet) ([]*ast.File, error) {
	_, self, _, ok := runtime.Caller(0)
	if !ok {
		return nil, fmt.Errorf("cannot locate pnp package sources")
	}
	dir := filepath.Join(filepath.Dir(self), "..", "..", "..", "pnp")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []*ast.File
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == "vendors.go" {
			continue
		}

		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, 0)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	return files, nil
}

type importerFunc func(path string) (*types.Package, error)

func (f importerFunc) Import(path string) (*types.Package, error) {
	return f(path)
}
