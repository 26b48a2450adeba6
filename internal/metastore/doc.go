// Package metastore keeps item titles and tags in a SQLite database so they
// survive independently of the media files.
//
// A Store implements media.MetadataStore. Rows are keyed by item identifier;
// tags are stored normalized as one comma separated string. The database
// runs in WAL mode with a busy timeout so the HTTP server and mediactl can
// share one file.
package metastore
