package codegen

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"iter"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/pnp-vendors/pnp"
)

func seqOf(vendors ...pnp.Vendor) iter.Seq2[pnp.Vendor, error] {
	return func(yield func(pnp.Vendor, error) bool) {
		for _, v := range vendors {
			if !yield(v, nil) {
				return
			}
		}
	}
}

func sampleVendors() []pnp.Vendor {
	return []pnp.Vendor{
		pnp.NewVendor("Acme Corp", "ACM", time.Date(2016, time.January, 15, 0, 0, 0, 0, time.UTC)),
		pnp.NewVendor("Beta Inc", "BET", time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)),
	}
}

func lines(t *testing.T, seq iter.Seq2[string, error]) []string {
	t.Helper()

	var out []string
	for line, err := range seq {
		require.NoError(t, err)
		out = append(out, line)
	}
	return out
}

// loadVendors parses generated source and rebuilds the vendor map from the
// map literal, the way the Go compiler would see it.
func loadVendors(t *testing.T, src string) map[string]pnp.Vendor {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "vendors.go", src, parser.ParseComments)
	require.NoError(t, err)

	var lit *ast.CompositeLit
	ast.Inspect(file, func(n ast.Node) bool {
		if cl, ok := n.(*ast.CompositeLit); ok && lit == nil {
			lit = cl
			return false
		}
		return true
	})
	require.NotNil(t, lit, "no map literal in generated source")

	str := func(e ast.Expr) string {
		bl, ok := e.(*ast.BasicLit)
		require.True(t, ok)
		require.Equal(t, token.STRING, bl.Kind)
		s, err := strconv.Unquote(bl.Value)
		require.NoError(t, err)
		return s
	}
	num := func(e ast.Expr) int {
		bl, ok := e.(*ast.BasicLit)
		require.True(t, ok)
		require.Equal(t, token.INT, bl.Kind)
		n, err := strconv.Atoi(bl.Value)
		require.NoError(t, err)
		return n
	}

	out := make(map[string]pnp.Vendor)
	for _, elt := range lit.Elts {
		kv, ok := elt.(*ast.KeyValueExpr)
		require.True(t, ok)

		call, ok := kv.Value.(*ast.CallExpr)
		require.True(t, ok)
		require.Len(t, call.Args, 3)

		dateCall, ok := call.Args[2].(*ast.CallExpr)
		require.True(t, ok)
		require.Len(t, dateCall.Args, 8)

		date := time.Date(num(dateCall.Args[0]), time.Month(num(dateCall.Args[1])), num(dateCall.Args[2]), 0, 0, 0, 0, time.UTC)
		out[str(kv.Key)] = pnp.NewVendor(str(call.Args[0]), str(call.Args[1]), date)
	}
	return out
}

func TestGenerate_RoundTrip(t *testing.T) {
	src := strings.Join(lines(t, Generate(seqOf(sampleVendors()...), DefaultOptions())), "\n")

	got := loadVendors(t, src)
	assert.Equal(t, map[string]pnp.Vendor{
		"ACM": sampleVendors()[0],
		"BET": sampleVendors()[1],
	}, got)
}

func TestGenerate_Layout(t *testing.T) {
	opts := DefaultOptions()
	opts.Source = "pnp_export.xls"

	got := lines(t, Generate(seqOf(sampleVendors()...), opts))

	assert.Equal(t, []string{
		"// Code generated by pnpgen from pnp_export.xls. DO NOT EDIT.",
		"//nolint:lll // one line per registry entry",
		"",
		"package pnp",
		"",
		`import "time"`,
		"",
		"// Vendors maps PNP vendor IDs to their registry entries.",
		"var Vendors = map[string]Vendor{",
		`	"ACM": NewVendor("Acme Corp", "ACM", time.Date(2016, 1, 15, 0, 0, 0, 0, time.UTC)),`,
		`	"BET": NewVendor("Beta Inc", "BET", time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)),`,
		"}",
		"",
	}, got)
}

func TestGenerate_QualifiedVendorPackage(t *testing.T) {
	opts := Options{
		PackageName:      "registry",
		VendorImportPath: "github.com/ginjaninja78/pnp-vendors/pnp",
	}

	src := strings.Join(lines(t, Generate(seqOf(sampleVendors()...), opts)), "\n")

	assert.Contains(t, src, "package registry\n")
	assert.Contains(t, src, "\t\"github.com/ginjaninja78/pnp-vendors/pnp\"\n")
	assert.Contains(t, src, "var Vendors = map[string]pnp.Vendor{")
	assert.Contains(t, src, `"ACM": pnp.NewVendor("Acme Corp"`)

	got := loadVendors(t, src)
	assert.Len(t, got, 2)
}

func TestGenerate_KeepsInputOrderAndDuplicates(t *testing.T) {
	date := time.Date(2016, time.January, 15, 0, 0, 0, 0, time.UTC)
	in := []pnp.Vendor{
		pnp.NewVendor("Zulu", "ZZZ", date),
		pnp.NewVendor("Alpha", "AAA", date),
		pnp.NewVendor("Zulu Again", "ZZZ", date),
	}

	got := lines(t, Generate(seqOf(in...), DefaultOptions()))

	var entries []string
	for _, line := range got {
		if strings.HasPrefix(line, "\t\"") {
			entries = append(entries, line[2:5])
		}
	}
	assert.Equal(t, []string{"ZZZ", "AAA", "ZZZ"}, entries)
}

func TestGenerate_QuotesStrings(t *testing.T) {
	v := pnp.NewVendor(`Say "Hi" Ltd\`, "SAY", time.Date(2001, time.February, 3, 0, 0, 0, 0, time.UTC))

	line := Entry(v, DefaultOptions())
	assert.Equal(t, `	"SAY": NewVendor("Say \"Hi\" Ltd\\", "SAY", time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC)),`, line)

	got := loadVendors(t, strings.Join(lines(t, Generate(seqOf(v), DefaultOptions())), "\n"))
	assert.Equal(t, v, got["SAY"])
}

func TestGenerate_Idempotent(t *testing.T) {
	first := strings.Join(lines(t, Generate(seqOf(sampleVendors()...), DefaultOptions())), "\n")
	second := strings.Join(lines(t, Generate(seqOf(sampleVendors()...), DefaultOptions())), "\n")
	assert.Equal(t, first, second)
}

func TestGenerate_EmptyInput(t *testing.T) {
	src := strings.Join(lines(t, Generate(seqOf(), DefaultOptions())), "\n")
	assert.Empty(t, loadVendors(t, src))
}

func TestGenerate_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	vendors := func(yield func(pnp.Vendor, error) bool) {
		if !yield(sampleVendors()[0], nil) {
			return
		}
		yield(pnp.Vendor{}, boom)
	}

	var got []string
	var gotErr error
	for line, err := range Generate(vendors, DefaultOptions()) {
		if err != nil {
			gotErr = err
			continue
		}
		got = append(got, line)
	}

	assert.ErrorIs(t, gotErr, boom)
	assert.NotContains(t, got, "}")
}

func TestRender_FormatsAndValidates(t *testing.T) {
	opts := DefaultOptions()
	opts.Source = "pnp_export.xls"

	out, err := Render(seqOf(sampleVendors()...), opts)
	require.NoError(t, err)

	src := string(out)
	assert.True(t, strings.HasPrefix(src, "// Code generated by pnpgen from pnp_export.xls. DO NOT EDIT.\n"))
	assert.True(t, strings.HasSuffix(src, "}\n"))
	assert.Len(t, loadVendors(t, src), 2)

	again, err := Render(seqOf(sampleVendors()...), opts)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRender_InvalidPackageName(t *testing.T) {
	opts := DefaultOptions()
	opts.PackageName = "not a package"

	_, err := Render(seqOf(sampleVendors()...), opts)
	assert.Error(t, err)
}
