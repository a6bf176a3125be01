// Package services defines the error markers shared by the components that
// talk to the outside world: the pose extractor, the reference library and the
// history store.
//
// Wrap tags a failure with one of the exported markers and a component /
// operation prefix so the CLI can classify it with errors.Is and choose an
// exit code and an operator hint without parsing messages.
package services
