package device

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"audiomatch/internal/services"
)

type envelope[T any] struct {
	Devices *[]T `json:"devices"`
}

// DecodeNative parses a native device list. The payload must be a JSON array
// of records or an object carrying a "devices" array.
func DecodeNative(r io.Reader) ([]Device, error) {
	return decodeList[Device](r, "native")
}

// DecodeForeign parses a browser-style device list with the same envelope
// rules as DecodeNative.
func DecodeForeign(r io.Reader) ([]Foreign, error) {
	return decodeList[Foreign](r, "foreign")
}

func decodeList[T any](r io.Reader, side string) ([]T, error) {
	if r == nil {
		return nil, services.Wrap(services.ErrInvalidInput, "device", "decode "+side, "no input", nil)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidInput, "device", "decode "+side, "read input", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, services.Wrap(services.ErrInvalidInput, "device", "decode "+side, "empty input", nil)
	}

	switch data[0] {
	case '[':
		var list []T
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, services.Wrap(services.ErrInvalidInput, "device", "decode "+side, "malformed device array", err)
		}
		if list == nil {
			list = []T{}
		}
		return list, nil
	case '{':
		var env envelope[T]
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, services.Wrap(services.ErrInvalidInput, "device", "decode "+side, "malformed device object", err)
		}
		if env.Devices == nil {
			return nil, services.Wrap(services.ErrInvalidInput, "device", "decode "+side, `object has no "devices" array`, nil)
		}
		list := *env.Devices
		if list == nil {
			list = []T{}
		}
		return list, nil
	default:
		return nil, services.Wrap(services.ErrInvalidInput, "device", "decode "+side, fmt.Sprintf("expected array or object, got %q", string(data[0])), nil)
	}
}
