// Package k4a provides Go bindings for the Azure Kinect sensor SDK.
//
// The package mirrors the native object model: a Device streams Captures,
// each Capture carries up to three Images (depth, color, infrared), and a
// device Calibration can back a Transformation engine. Native resources are
// explicit: every wrapper has a Close, and Capture and Image additionally
// have Clone to share the underlying reference counted resource.
//
// The native layer is reached through the SDK interface. Importing the
// libk4a subpackage in a build with the k4a tag registers the real shared
// library; the fake subpackage provides a pure Go simulation for
// development and tests. This package itself performs no logging; errors
// carry everything a caller needs.
package k4a

// Resolution is a sensor size in pixels.
type Resolution struct {
	Width  int32
	Height int32
}

// SynchronizationJackStatus reports whether cables are attached to the wired
// sync jacks on the back of the device.
type SynchronizationJackStatus struct {
	SyncInConnected  bool
	SyncOutConnected bool
}
