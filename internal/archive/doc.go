// Package archive persists motions as NumPy .npz archives and JSON documents.
//
// An .npz archive is a zip file whose entries are .npy arrays; motions are
// stored under the "keypoints" entry as a float64 array of shape [T, J, 3].
// Archives written by numpy.savez and numpy.savez_compressed are both read.
package archive
