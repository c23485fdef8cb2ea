package cqlbridge

import (
	"strings"
	"unicode/utf8"

	"github.com/arloliu/cqlbridge/types"
)

// checkText rejects text the native driver cannot represent: its strings
// are NUL-terminated UTF-8.
func checkText(field, text string) error {
	if idx := strings.IndexByte(text, 0); idx >= 0 {
		return &types.EncodingError{Field: field, Offset: idx, Reason: "embedded NUL"}
	}
	if utf8.ValidString(text) {
		return nil
	}
	for i, r := range text {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(text[i:]); size == 1 {
				return &types.EncodingError{Field: field, Offset: i, Reason: "invalid UTF-8"}
			}
		}
	}

	return &types.EncodingError{Field: field, Reason: "invalid UTF-8"}
}
