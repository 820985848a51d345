package utils

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestSanitizeProjectName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already clean name is unchanged",
			input:    "acme-shop",
			expected: "acme-shop",
		},
		{
			name:     "whitespace becomes hyphen",
			input:    "My Cool App",
			expected: "My-Cool-App",
		},
		{
			name:     "disallowed characters are dropped",
			input:    "shop!@#$%^&*()v2",
			expected: "shopv2",
		},
		{
			name:     "runs of separators collapse",
			input:    "a  --  b__c",
			expected: "a-b_c",
		},
		{
			name:     "leading and trailing separators are trimmed",
			input:    "  __edge-case--  ",
			expected: "edge-case",
		},
		{
			name:     "non ascii letters are dropped",
			input:    "café",
			expected: "caf",
		},
		{
			name:     "empty input falls back to default",
			input:    "",
			expected: DefaultProjectName,
		},
		{
			name:     "input without allowed characters falls back to default",
			input:    "!!! ???",
			expected: DefaultProjectName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeProjectName(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, got, SanitizeProjectName(got), "sanitizing must be idempotent")
			assert.NotContains(t, got, "--")
			assert.NotContains(t, got, "__")
		})
	}
}

func TestParseNonNegativeDecimal(t *testing.T) {
	tests := []struct {
		input  string
		value  string
		wantOk bool
	}{
		{input: "100", value: "100", wantOk: true},
		{input: " 49.99 ", value: "49.99", wantOk: true},
		{input: "0", value: "0", wantOk: true},
		{input: "-5", value: "0", wantOk: false},
		{input: "1e3", value: "0", wantOk: false},
		{input: "12.", value: "0", wantOk: false},
		{input: "abc", value: "0", wantOk: false},
		{input: "", value: "0", wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			value, ok := ParseNonNegativeDecimal(tt.input)
			assert.Equal(t, tt.value, value)
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}

func TestIsSensitiveName(t *testing.T) {
	assert.True(t, IsSensitiveName("do_token"))
	assert.True(t, IsSensitiveName("DATABASE_PASSWORD"))
	assert.True(t, IsSensitiveName("vultr_api_key"))
	assert.False(t, IsSensitiveName("region"))
	assert.False(t, IsSensitiveName("instance_type"))
}

func TestIsValidGitHubName(t *testing.T) {
	assert.True(t, IsValidGitHubName("acme-corp"))
	assert.True(t, IsValidGitHubName("shop.web_v2"))
	assert.False(t, IsValidGitHubName(""))
	assert.False(t, IsValidGitHubName("-leading"))
	assert.False(t, IsValidGitHubName("has space"))
}

func TestTokensForMap_SortsKeys(t *testing.T) {
	entries := map[string]hclwrite.Tokens{
		"version": TokensForStringTemplate("~> 5.0"),
		"source":  TokensForStringTemplate("hashicorp/aws"),
	}

	f := hclwrite.NewEmptyFile()
	f.Body().SetAttributeRaw("aws", TokensForMap(entries))
	out := string(hclwrite.Format(f.Bytes()))

	assert.Less(t, strings.Index(out, "source"), strings.Index(out, "version"))

	for i := 0; i < 10; i++ {
		again := hclwrite.NewEmptyFile()
		again.Body().SetAttributeRaw("aws", TokensForMap(entries))
		assert.Equal(t, out, string(hclwrite.Format(again.Bytes())))
	}
}

func TestToCtyValue(t *testing.T) {
	value, err := ToCtyValue(map[string]any{
		"bucket":  "acme-tfstate",
		"encrypt": true,
		"port":    uint64(5432),
		"endpoints": map[string]any{
			"s3": "https://nyc3.digitaloceanspaces.com",
		},
	})
	require.NoError(t, err)

	assert.True(t, value.Type().IsObjectType())
	assert.Equal(t, cty.StringVal("acme-tfstate"), value.GetAttr("bucket"))
	assert.Equal(t, cty.True, value.GetAttr("encrypt"))
	assert.Equal(t, cty.StringVal("https://nyc3.digitaloceanspaces.com"), value.GetAttr("endpoints").GetAttr("s3"))

	_, err = ToCtyValue(struct{}{})
	assert.Error(t, err)
}

func TestTokensForComment_ParsesAsHCL(t *testing.T) {
	f := hclwrite.NewEmptyFile()
	f.Body().AppendUnstructuredTokens(TokensForComment("# generated"))
	f.Body().SetAttributeValue("name", cty.StringVal("web"))

	_, diags := hclsyntax.ParseConfig(f.Bytes(), "test.tf", hcl.InitialPos)
	require.False(t, diags.HasErrors(), diags.Error())
}

func TestRenderTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/run.sh.go.tmpl": &fstest.MapFile{Data: []byte(`echo {{ quote .Name }} {{ upper .Code }}`)},
		"assets/broken.go.tmpl": &fstest.MapFile{Data: []byte(`{{ .Name `)},
	}

	out, err := RenderTemplate(fsys, "assets/run.sh.go.tmpl", map[string]string{"Name": "it's; rm -rf /", "Code": "usd"})
	require.NoError(t, err)
	assert.Equal(t, `echo 'it'\''s; rm -rf /' USD`, out)

	_, err = RenderTemplate(fsys, "assets/broken.go.tmpl", nil)
	assert.Error(t, err)

	_, err = RenderTemplate(fsys, "assets/missing.go.tmpl", nil)
	assert.Error(t, err)
}
