package scaffold

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"path/filepath"
	"strconv"
	"text/template"

	"github.com/xtask-base/xtask/internal/genfile"
)

//go:embed boilerplate
var boilerplateFS embed.FS

const (
	// RustfmtConfigPath is where GenerateRustfmtConfig writes, relative to the
	// workspace root.
	RustfmtConfigPath = "rustfmt.toml"
	// CargoConfigPath holds the xtask alias.
	CargoConfigPath = ".cargo/config"
	// LicenseApachePath and LicenseMITPath are the dual license files.
	LicenseApachePath = "LICENSE-APACHE"
	LicenseMITPath    = "LICENSE-MIT"
)

// License holds the variables of the license templates.
type License struct {
	StartYear int
	EndYear   int
	Holder    string
}

// CopyrightRange returns "2021" when the years match and "2021-2023"
// otherwise.
func (l License) CopyrightRange() string {
	if l.EndYear == 0 || l.EndYear == l.StartYear {
		return strconv.Itoa(l.StartYear)
	}
	return fmt.Sprintf("%d-%d", l.StartYear, l.EndYear)
}

// GenerateOpenSourceFiles writes rustfmt.toml and both license files in the
// current directory, or in check mode verifies they are current.
func GenerateOpenSourceFiles(ctx context.Context, lic License, check bool) error {
	if err := GenerateRustfmtConfig(ctx, check); err != nil {
		return err
	}

	if err := generateLicense(ctx, "LICENSE-APACHE.tmpl", LicenseApachePath, lic, check); err != nil {
		return err
	}

	return generateLicense(ctx, "LICENSE-MIT.tmpl", LicenseMITPath, lic, check)
}

// GenerateRustfmtConfig writes rustfmt.toml.
func GenerateRustfmtConfig(ctx context.Context, check bool) error {
	return copyBoilerplate(ctx, "rustfmt.toml", RustfmtConfigPath, check)
}

// GenerateCargoConfig writes .cargo/config with the xtask alias.
func GenerateCargoConfig(ctx context.Context, check bool) error {
	return copyBoilerplate(ctx, "cargo-config.toml", filepath.FromSlash(CargoConfigPath), check)
}

func copyBoilerplate(ctx context.Context, name, path string, check bool) error {
	data, err := boilerplateFS.ReadFile("boilerplate/" + name)
	if err != nil {
		return fmt.Errorf("reading boilerplate %s: %w", name, err)
	}
	return genfile.Update(ctx, path, string(data), check)
}

func generateLicense(ctx context.Context, name, path string, lic License, check bool) error {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		ParseFS(boilerplateFS, "boilerplate/"+name)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, lic); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	return genfile.Update(ctx, path, buf.String(), check)
}
