// Package device defines the native and foreign audio device records and the
// heuristic classifier that tags each native record with a device type and
// connectivity.
//
// Classification is advisory: it runs ordered, case-insensitive substring
// checks against the named vocabularies in vocabulary.go and falls back to
// "unknown" rather than failing. Suppliers call ClassifyDevice once per record
// so every Device leaving the native package is already tagged.
//
// DecodeNative and DecodeForeign are the only entry points that reject input:
// a payload that is not a JSON sequence of records yields ErrInvalidInput.
package device
