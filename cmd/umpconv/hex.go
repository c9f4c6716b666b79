package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func cleanHex(arg string) string {
	arg = strings.TrimSpace(arg)
	arg = strings.TrimPrefix(strings.TrimPrefix(arg, "0x"), "0X")
	return strings.NewReplacer("_", "", " ", "", ",", "").Replace(arg)
}

// parseWords reads UMP words. An argument holds one or more 8-digit words,
// optionally 0x prefixed and _ separated.
func parseWords(args []string) ([]uint32, error) {
	var out []uint32
	for _, arg := range args {
		digits := cleanHex(arg)
		if len(digits) == 0 || len(digits)%8 != 0 {
			return nil, errors.Errorf("word %q: want a multiple of 8 hex digits", arg)
		}
		for i := 0; i < len(digits); i += 8 {
			w, err := strconv.ParseUint(digits[i:i+8], 16, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "word %q", arg)
			}
			out = append(out, uint32(w))
		}
	}
	return out, nil
}

// parseBytes reads byte-stream data. Arguments are concatenated.
func parseBytes(args []string) ([]byte, error) {
	var out []byte
	for _, arg := range args {
		b, err := hex.DecodeString(cleanHex(arg))
		if err != nil {
			return nil, errors.Wrapf(err, "bytes %q", arg)
		}
		out = append(out, b...)
	}
	return out, nil
}

func formatWords(words []uint32) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf("%08X", w)
	}
	return strings.Join(parts, " ")
}

func formatBytes(data []byte) string {
	return fmt.Sprintf("% X", data)
}
