// Package library manages the directory of reference motions, one archive per
// shot type (coverdrive.npz, pull.npz, ...).
//
// Shot names are normalised to lowercase tokens before they touch the
// filesystem. Writes take an advisory lock on the directory and land through
// a temporary file and rename, so concurrent readers never see a partial
// archive.
package library
