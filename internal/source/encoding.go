package source

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is the encoding assumed when none is configured.
const DefaultEncoding = "utf-8"

// ErrUnknownEncoding is returned for labels htmlindex does not know.
var ErrUnknownEncoding = errors.New("source: unknown encoding")

// LookupEncoding resolves a WHATWG label ("latin1", "windows-1252", "utf-8", ...).
// A nil Encoding means the bytes are already UTF-8 and need no transcoding.
func LookupEncoding(label string) (enc encoding.Encoding, canonical string, err error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" || label == "utf8" {
		label = DefaultEncoding
	}
	e, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	name, err := htmlindex.Name(e)
	if err != nil {
		name = label
	}
	if e == unicode.UTF8 || name == DefaultEncoding {
		return nil, DefaultEncoding, nil
	}
	return e, name, nil
}

// Encode converts UTF-8 output back into the named encoding.
func Encode(content []byte, label string) ([]byte, error) {
	enc, canonical, err := LookupEncoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return content, nil
	}
	out, err := enc.NewEncoder().Bytes(content)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", canonical, err)
	}
	return out, nil
}
