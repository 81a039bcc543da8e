// Package libk4a backs the binding with the Azure Kinect sensor SDK shared
// library. Importing it in a build with the k4a tag registers the native
// implementation process wide; without the tag the package is empty so that
// the import path always resolves.
package libk4a
