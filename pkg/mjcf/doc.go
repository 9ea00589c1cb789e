// Package mjcf defines a typed model of the MJCF scene description used for
// the cube: bodies, joints, geoms, assets and default classes. A Document is
// built once, never mutated after assembly, and rendered to XML with a fixed
// numeric format.
package mjcf
