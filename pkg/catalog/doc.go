/*
Package catalog provides the in-memory keyword catalog consumed by the resolver.

A Catalog indexes ActionBlocks by id and by every alias, case-insensitively. It is
built once (from Go values, a YAML/JSON file or the built-in defaults) and is
read-only afterwards, so it is safe for concurrent lookups.
*/
package catalog
