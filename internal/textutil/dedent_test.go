package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "tab indented code",
			in:   "\n\t\tsum := 0\n\t\tfor i := 1; i <= 10; i++ {\n\t\t\tsum += i\n\t\t}\n\t",
			want: []string{"sum := 0", "for i := 1; i <= 10; i++ {", "\tsum += i", "}"},
		},
		{
			name: "blank lines inside are kept",
			in:   "    a\n\n      b\n    c",
			want: []string{"a", "", "  b", "c"},
		},
		{
			name: "whitespace-only lines ignored for prefix",
			in:   "\t\tx\n\t\n\t\ty",
			want: []string{"x", "", "y"},
		},
		{
			name: "crlf input",
			in:   "  one\r\n  two\r\n",
			want: []string{"one", "two"},
		},
		{
			name: "mixed tabs and spaces keep the shared part only",
			in:   "\t  a\n\t b",
			want: []string{" a", "b"},
		},
		{
			name: "empty",
			in:   "  \n\n",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedentString(tt.in))
		})
	}
}

func TestNFC(t *testing.T) {
	decomposed := "e\u0301"
	assert.Equal(t, "\u00e9", NFC(decomposed))
	assert.Equal(t, "plain", NFC("plain"))
}
