// Package media indexes the media files that sit directly inside one root
// directory.
//
// A Manager enumerates the root on every call; nothing is cached. Listings
// are selected by a Qualifier (media types, tags, sort order), ordered by
// SortItems and partitioned into MediaGroups: by calendar day for date
// orders, by leading letter for title orders. Items are addressed by
// identifiers produced by an IDScheme, either paths relative to the root's
// parent ("/photos/a.jpg") or absolute paths.
//
// Titles and tags live outside the files in an optional MetadataStore.
package media
