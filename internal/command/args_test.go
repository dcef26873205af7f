package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single", "bind a jump", []string{"bind a jump"}},
		{"semicolons", "unbindall; bind a jump;bind b duck", []string{"unbindall", "bind a jump", "bind b duck"}},
		{"newlines", "bind a jump\r\n\nbind b duck\n", []string{"bind a jump", "bind b duck"}},
		{"quoted semicolon", `bind x "say a;say b"; bindlist`, []string{`bind x "say a;say b"`, "bindlist"}},
		{"comment", "// saved bindings\nbind a jump // trailing\n", []string{"bind a jump"}},
		{"quoted comment", `bind u "say http://x"`, []string{`bind u "say http://x"`}},
		{"unterminated quote ends at newline", "bind a \"say hi\nbind b duck", []string{"bind a \"say hi", "bind b duck"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text))
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want Args
	}{
		{"", nil},
		{"   ", nil},
		{"bind a jump", Args{"bind", "a", "jump"}},
		{`bind MOUSE1 "+attack"`, Args{"bind", "MOUSE1", "+attack"}},
		{`bind a "say hi there"`, Args{"bind", "a", "say hi there"}},
		{`bind a ""`, Args{"bind", "a", ""}},
		{`bind a "say hi`, Args{"bind", "a", "say hi"}},
		{"bind\ta  jump // comment", Args{"bind", "a", "jump"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.line))
		})
	}
}

func TestArgs(t *testing.T) {
	a := Args{"bind", "a", "say", "hi"}
	assert.Equal(t, 4, a.Argc())
	assert.Equal(t, "a", a.Argv(1))
	assert.Equal(t, "", a.Argv(9))
	assert.Equal(t, "", a.Argv(-1))
	assert.Equal(t, "say hi", a.From(2))
	assert.Equal(t, "", a.From(4))
	assert.Equal(t, "bind a say hi", a.From(-3))
}
