package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pawk0/core-js-101/interchange"
	"github.com/pawk0/core-js-101/selector"
)

// runCLI runs the command line with stdin and returns stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_NoCommand(t *testing.T) {
	_, stderr, err := runCLI(t, "")
	require.EqualError(t, err, "missing command")
	require.Contains(t, stderr, "Usage:")
}

func TestRun_UnknownCommand(t *testing.T) {
	_, _, err := runCLI(t, "", "frobnicate")
	require.EqualError(t, err, "unknown command: frobnicate")
}

func TestRun_Help(t *testing.T) {
	_, stderr, err := runCLI(t, "", "--help")
	require.NoError(t, err)
	require.Contains(t, stderr, "--log-level")

	_, stderr, err = runCLI(t, "", "area", "-h")
	require.NoError(t, err)
	require.Contains(t, stderr, "--radius")
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCLI(t, "", "version")
	require.NoError(t, err)
	require.Equal(t, "corejs "+version+"\n", stdout)
}

func TestArea(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"rectangle", "", []string{"area", "--width", "10", "--height", "20"}, "200\n"},
		{"fraction", "", []string{"area", "--width=2.5", "--height=4"}, "10\n"},
		{"circle", "", []string{"area", "--radius", "0"}, "0\n"},
		{"json_rectangle", `{"width":3,"height":7}`, []string{"area", "--shape", "rectangle"}, "21\n"},
		{"json_missing_field", `{"width":3}`, []string{"area", "--shape", "rectangle", "-"}, "NaN\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, stdout)
		})
	}
}

func TestArea_Errors(t *testing.T) {
	_, _, err := runCLI(t, "", "area", "--width", "1")
	require.ErrorContains(t, err, "needs --width and --height")

	_, _, err = runCLI(t, "", "area", "--radius", "1", "--width", "2")
	require.ErrorContains(t, err, "cannot be combined")

	_, _, err = runCLI(t, "{}", "area", "--shape", "hexagon")
	require.ErrorContains(t, err, "unknown shape")

	_, _, err = runCLI(t, "{", "area", "--shape", "circle")
	require.ErrorIs(t, err, interchange.ErrParse)
}

func TestSerialize(t *testing.T) {
	stdout, _, err := runCLI(t, `{ "b": 1, "a": [true, null, "x"] }`, "serialize")
	require.NoError(t, err)
	require.Equal(t, `{"b":1,"a":[true,null,"x"]}`+"\n", stdout)

	stdout, _, err = runCLI(t, `{"a":[1]}`, "serialize", "--indent", "  ")
	require.NoError(t, err)
	require.Equal(t, "{\n  \"a\": [\n    1\n  ]\n}\n", stdout)

	stdout, _, err = runCLI(t, "b: 1\na: two\n", "serialize", "--from", "yaml")
	require.NoError(t, err)
	require.Equal(t, `{"b":1,"a":"two"}`+"\n", stdout)

	stdout, _, err = runCLI(t, "{\"a\": 1, // note\n}", "serialize", "--from", "jsonc")
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`+"\n", stdout)
}

func TestSerialize_ParseErrorPosition(t *testing.T) {
	_, _, err := runCLI(t, "[1,\n2,]", "serialize")
	require.ErrorIs(t, err, interchange.ErrParse)
	require.ErrorContains(t, err, "2:3")
}

func TestSerialize_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"k":"v"}`), 0o644))

	stdout, _, err := runCLI(t, "", "serialize", path)
	require.NoError(t, err)
	require.Equal(t, `{"k":"v"}`+"\n", stdout)

	_, _, err = runCLI(t, "", "serialize", path, path)
	require.ErrorContains(t, err, "at most one input file")

	_, _, err = runCLI(t, "", "serialize", filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorContains(t, err, "read input")
}

func TestConvert(t *testing.T) {
	stdout, _, err := runCLI(t, `{"width":10,"label":"true"}`, "convert", "--to", "yaml")
	require.NoError(t, err)
	require.Equal(t, "width: 10\nlabel: \"true\"\n", stdout)

	// Default target is yaml.
	stdout, _, err = runCLI(t, `[1,2]`, "convert")
	require.NoError(t, err)
	require.Equal(t, "- 1\n- 2\n", stdout)

	stdout, _, err = runCLI(t, "a: [1, 2]\n", "convert", "--from", "yaml", "--to", "json")
	require.NoError(t, err)
	require.Equal(t, `{"a":[1,2]}`+"\n", stdout)
}

func TestConvert_BinaryRoundTrip(t *testing.T) {
	const input = `{"z":1,"a":{"nested":[true,"s",2.5]}}`
	for _, codec := range []string{"cbor", "cbor+zstd", "json+zstd"} {
		t.Run(codec, func(t *testing.T) {
			encoded, _, err := runCLI(t, input, "convert", "--to", codec)
			require.NoError(t, err)

			decoded, _, err := runCLI(t, encoded, "convert", "--from", codec, "--to", "json")
			require.NoError(t, err)

			want, err := interchange.Parse(input)
			require.NoError(t, err)
			got, err := interchange.Parse(decoded)
			require.NoError(t, err)
			require.True(t, interchange.Equal(want, got), "got %s", decoded)
		})
	}
}

func TestConvert_UnknownCodec(t *testing.T) {
	_, _, err := runCLI(t, `1`, "convert", "--to", "xml")
	require.ErrorContains(t, err, `unknown codec "xml"`)
}

func TestFingerprint(t *testing.T) {
	stdout, _, err := runCLI(t, `{ "x" : 1 }`, "fingerprint")
	require.NoError(t, err)
	require.Equal(t, interchange.FingerprintText(`{"x":1}`).String()+"\n", stdout)

	fromYAML, _, err := runCLI(t, "x: 1\n", "fingerprint", "--from", "yaml")
	require.NoError(t, err)
	require.Equal(t, stdout, fromYAML)
}

func TestSelectorCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"single", []string{"id=main", "class=container", "class=editable"}, "#main.container.editable"},
		{"attr", []string{"element=a", `attr=href$=".png"`, "pseudo-class=focus"}, `a[href$=".png"]:focus`},
		{"combine", []string{"element=div", "id=main", "+", "element=table", "id=data"}, "div#main + table#data"},
		{"word_combinators", []string{"element=ul", "child", "element=li", "descendant", "element=a"}, "ul > li   a"},
		{"space_symbol", []string{"element=nav", " ", "element=a"}, "nav   a"},
		{"pseudo_element", []string{"element=p", "pseudo-element=first-line"}, "p::first-line"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, "", append([]string{"selector"}, tt.args...)...)
			require.NoError(t, err)
			require.Equal(t, tt.want+"\n", stdout)
		})
	}
}

func TestSelectorCommand_Errors(t *testing.T) {
	_, _, err := runCLI(t, "", "selector", "id=a", "id=b")
	require.ErrorIs(t, err, selector.ErrDuplicatePart)
	require.ErrorContains(t, err, "argument 2 (id=b)")

	_, _, err = runCLI(t, "", "selector", "id=a", "element=div")
	require.ErrorIs(t, err, selector.ErrOutOfOrder)

	_, _, err = runCLI(t, "", "selector", "element=a", "|", "element=b")
	require.ErrorIs(t, err, selector.ErrUnknownCombinator)

	_, _, err = runCLI(t, "", "selector", "element=a", ">")
	require.ErrorContains(t, err, "needs a part on both sides")

	_, _, err = runCLI(t, "", "selector", ">", "element=a")
	require.ErrorContains(t, err, "needs a part on both sides")

	_, _, err = runCLI(t, "", "selector", "shape=round")
	require.ErrorContains(t, err, "unknown selector kind")

	_, _, err = runCLI(t, "", "selector")
	require.ErrorContains(t, err, "at least one part")
}

func TestSelectorCommand_Explain(t *testing.T) {
	stdout, _, err := runCLI(t, "", "selector", "--explain", "element=div", "class=a", "+", "element=p")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 6)
	require.Contains(t, lines[0], "run 1")
	require.Contains(t, lines[1], "element")
	require.Contains(t, lines[1], "div")
	require.Contains(t, lines[2], ".a")
	require.Contains(t, lines[3], "run 2 (adjacent sibling +)")
	require.Contains(t, lines[4], "p")
	require.Equal(t, "div.a + p", lines[5])
}

func TestRun_DebugLogging(t *testing.T) {
	_, stderr, err := runCLI(t, "[]", "--log-level", "debug", "--log-format", "json", "serialize")
	require.NoError(t, err)
	require.Contains(t, stderr, `"msg":"decoded input"`)
	require.Contains(t, stderr, `"command":"serialize"`)

	_, stderr, err = runCLI(t, "[]", "serialize")
	require.NoError(t, err)
	require.Empty(t, stderr)
}

func TestRun_InvalidLogLevel(t *testing.T) {
	_, _, err := runCLI(t, "", "--log-level", "loud", "version")
	require.EqualError(t, err, `invalid log level "loud"`)
}
