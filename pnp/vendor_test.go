package pnp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewVendor_TruncatesToDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	v := NewVendor("Acme Corp", "ACM", time.Date(2016, 1, 15, 22, 30, 0, 0, loc))

	assert.Equal(t, "Acme Corp", v.Name)
	assert.Equal(t, "ACM", v.PNPID)
	assert.Equal(t, time.Date(2016, 1, 15, 0, 0, 0, 0, time.UTC), v.ApprovalDate)
}
