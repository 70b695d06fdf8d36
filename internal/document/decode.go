// Package document parses JSON into an order-preserving value tree.
//
// Values are one of:
//
//	nil           JSON null
//	bool          true / false
//	json.Number   any number, kept in its source spelling
//	string
//	[]any         array
//	*Object       object, keys in source order
//
// Key order matters downstream: it decides column order and, for
// documents holding several tables, table order.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/koustreak/json2sqlite/internal/errs"
)

// xzMagic is the stream header of an xz container.
var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// Read loads a whole document from r. xz-compressed input is detected by
// its magic bytes, and a UTF-8 or UTF-16 byte order mark is honoured.
func Read(r io.Reader) (any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindReadFailure, "failed to read input", err)
	}

	if bytes.HasPrefix(raw, xzMagic) {
		zr, err := xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, errs.Wrap(errs.ErrKindReadFailure, "failed to open xz stream", err)
		}
		if raw, err = io.ReadAll(zr); err != nil {
			return nil, errs.Wrap(errs.ErrKindReadFailure, "failed to decompress xz stream", err)
		}
	}

	text, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindReadFailure, "failed to decode input text", err)
	}

	return Parse(text)
}

// Parse decodes exactly one JSON value from data.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, parseError(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, parseError(err)
	}
	return v, nil
}

func parseError(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return errs.Wrap(errs.ErrKindParseFailure, "input is not valid JSON", err)
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		// nil, bool, json.Number, string
		return t, nil
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := make([]any, 0)
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
