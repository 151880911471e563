// Package deps reports which external audio tools the configured native
// sources need and whether they can be found on PATH.
package deps
