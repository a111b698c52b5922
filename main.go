// =============================================================================
// PNP Vendor Generator - Main Entry Point
// =============================================================================
//
// pnpgen regenerates the PNP vendor table (pnp/vendors.go) from the UEFI PNP
// ID registry export. It is run by hand whenever the registry changes.
//
// USAGE:
//   pnpgen <spreadsheet>          - Regenerate the vendor table
//   pnpgen inspect <spreadsheet>  - Dump the parsed vendor records
//   pnpgen version                - Display the application version
//
// ARCHITECTURE:
//   - cmd/                  : CLI command definitions (Cobra)
//   - internal/spreadsheet  : Registry export parsing
//   - internal/validation   : PNP ID checks
//   - internal/codegen      : Vendor table source generation
//   - internal/driver       : Pipeline wiring for a single run
//   - internal/config       : YAML/environment configuration
//   - pkg/utils             : File helpers
//   - pnp/                  : Vendor record type and the generated table
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/pnp-vendors/cmd"
)

func main() {
	cmd.Execute()
}
