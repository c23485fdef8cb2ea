package cqlbridge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cqlbridge/types"
)

func TestCheckText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		reason string
	}{
		{"ascii", "SELECT * FROM t", -1, ""},
		{"utf8", "SELECT * FROM t WHERE name = 'żółw'", -1, ""},
		{"empty", "", -1, ""},
		{"nul first", "\x00SELECT", 0, "embedded NUL"},
		{"nul inside", "SEL\x00ECT", 3, "embedded NUL"},
		{"invalid byte", "ab\xffcd", 2, "invalid UTF-8"},
		{"truncated rune", "ok \xe2\x82", 3, "invalid UTF-8"},
		{"nul before invalid", "a\x00\xff", 1, "embedded NUL"},
		{"literal replacement char", "ok � \xff", 7, "invalid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkText("query", tt.text)
			if tt.offset < 0 {
				require.NoError(t, err)

				return
			}

			var encErr *types.EncodingError
			require.ErrorAs(t, err, &encErr)
			require.ErrorIs(t, err, ErrInvalidEncoding)
			require.Equal(t, "query", encErr.Field)
			require.Equal(t, tt.offset, encErr.Offset)
			require.Equal(t, tt.reason, encErr.Reason)
		})
	}
}
