// Package mediatypes provides the media type classification shared by the
// catalog engine, the HTTP handlers and the CLI.
//
// This package is a dependency-free foundation that can be imported by other
// packages without creating import cycles.
//
// # Classification
//
// Classify derives a MediaType from an identifier's suffix. The suffix is
// first mapped to a MIME type through a fixed table (not the host MIME
// database, so the result is the same on every machine) and the MIME type is
// then mapped to a variant:
//
//	mediatypes.Classify("/photos/a.JPG")   // Image
//	mediatypes.Classify("clips/b.m4v")     // MP4Video
//	mediatypes.Classify("clips/c.flv")     // FlashVideo
//	mediatypes.Classify("clips/d.ogv")     // OGVVideo
//	mediatypes.Classify("notes.txt")       // Other
//
// # Selection suffixes
//
// Suffixes lists, per selectable type, the filename suffixes the listing
// filter accepts. It is intentionally narrower than MimeTypes: a .bmp file
// classifies as Image but is never listed.
package mediatypes
