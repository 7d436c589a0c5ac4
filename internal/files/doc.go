// Package files handles dataset discovery and export housekeeping: locating
// the newest dataset CSV when the configured path is a directory, and
// pruning aged export files.
package files
