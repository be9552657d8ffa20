package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmTokens(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"   \n", false},
		{"yep\n", false},
		{"ye\n", false},
		{"", false}, // immediate EOF
	}

	for _, tc := range cases {
		t.Run(strings.TrimSpace(tc.input)+"_input", func(t *testing.T) {
			var out bytes.Buffer
			g := New(strings.NewReader(tc.input), &out)
			assert.Equal(t, tc.want, g.Confirm("proceed?"))
			assert.Contains(t, out.String(), "proceed?")
		})
	}
}

func TestConfirmLastLineWithoutNewline(t *testing.T) {
	g := New(strings.NewReader("yes"), &bytes.Buffer{})
	assert.True(t, g.Confirm("proceed?"))
}

func TestConfirmAssumeYesSkipsRead(t *testing.T) {
	var out bytes.Buffer
	g := New(strings.NewReader(""), &out)
	g.AssumeYes = true
	assert.True(t, g.Confirm("proceed?"))
}

func TestConfirmConsumesOneLinePerCall(t *testing.T) {
	g := New(strings.NewReader("no\nyes\n"), &bytes.Buffer{})
	assert.False(t, g.Confirm("first?"))
	assert.True(t, g.Confirm("second?"))
}
