package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/iliyamo/revticket-testdata/internal/testdata"
)

// VerifyPaymentPath is the payment service route the generated request targets.
const VerifyPaymentPath = "/api/razorpay/verify-payment"

// TokenPlaceholder is embedded in the curl command when no token was minted.
const TokenPlaceholder = "YOUR_TOKEN_HERE"

// Pretty renders p as two-space indented JSON in struct field order.
// Non-ASCII characters are written as \u escapes.
func Pretty(p testdata.Payload) ([]byte, error) {
	b, err := encode(p, "  ")
	if err != nil {
		return nil, err
	}
	return asciiJSON(b, false), nil
}

// Compact renders p on a single line with ", " and ": " separators and
// non-ASCII characters escaped, byte for byte what Python's json.dumps
// prints for the same object.
func Compact(p testdata.Payload) ([]byte, error) {
	b, err := encode(p, "")
	if err != nil {
		return nil, err
	}
	return asciiJSON(b, true), nil
}

func encode(p testdata.Payload, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// asciiJSON escapes runes above U+007F as \uXXXX (surrogate pairs past
// the BMP) and, when spaced, puts a space after every ',' and ':' outside
// strings.  b must be valid JSON.
func asciiJSON(b []byte, spaced bool) []byte {
	var out bytes.Buffer
	inStr, esc := false, false
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		c := b[0]
		b = b[size:]
		if r >= utf8.RuneSelf {
			if r > 0xFFFF {
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(&out, `\u%04x\u%04x`, hi, lo)
			} else {
				fmt.Fprintf(&out, `\u%04x`, r)
			}
			continue
		}
		out.WriteByte(c)
		if inStr {
			switch {
			case esc:
				esc = false
			case c == '\\':
				esc = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case ',', ':':
			if spaced {
				out.WriteByte(' ')
			}
		}
	}
	return out.Bytes()
}

// WriteFile stores the pretty payload at path, replacing any previous file.
func WriteFile(path string, p testdata.Payload) error {
	b, err := Pretty(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// CurlCommand returns a multi-line curl invocation posting p to baseURL.
// An empty token is replaced by TokenPlaceholder.
func CurlCommand(baseURL, token string, p testdata.Payload) (string, error) {
	body, err := Compact(p)
	if err != nil {
		return "", err
	}
	if token == "" {
		token = TokenPlaceholder
	}
	return fmt.Sprintf("curl -X POST %s%s \\\n"+
		"  -H \"Authorization: Bearer %s\" \\\n"+
		"  -H \"Content-Type: application/json\" \\\n"+
		"  -d '%s'",
		strings.TrimRight(baseURL, "/"), VerifyPaymentPath, token, shellQuoteBody(string(body))), nil
}

// shellQuoteBody escapes single quotes for use inside a single-quoted
// shell word.
func shellQuoteBody(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}
