// Package browser loads browser-style device exports (the shape produced by
// navigator.mediaDevices.enumerateDevices) and applies the kind and exclusion
// filters configured under [foreign].
package browser
