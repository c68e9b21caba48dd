// Package workspace manages the ephemeral staging directory a build renders
// into and the publish step that copies a finished build into the output
// directory, so an aborted run never leaves a half-written output behind.
package workspace
