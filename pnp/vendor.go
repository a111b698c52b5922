// =============================================================================
// PNP Vendors - Vendor Record
// =============================================================================
//
// Package pnp holds the vendor record type referenced by the generated vendor
// table. The table itself (vendors.go) is produced by the pnpgen command from
// the UEFI PNP ID registry export and is not edited by hand.
//
// =============================================================================

package pnp

import "time"

// Vendor is a single entry of the PNP vendor ID registry.
type Vendor struct {
	// Name is the registered company name.
	Name string

	// PNPID is the three character vendor ID, uppercase by convention.
	PNPID string

	// ApprovalDate is the date the ID was assigned, at midnight UTC.
	ApprovalDate time.Time
}

// NewVendor creates a Vendor. The approval date is truncated to its calendar
// day in UTC.
func NewVendor(name, pnpID string, approvalDate time.Time) Vendor {
	y, m, d := approvalDate.Date()
	return Vendor{
		Name:         name,
		PNPID:        pnpID,
		ApprovalDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
}
