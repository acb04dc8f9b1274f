// Package repository performs validated reads and writes of geographic
// entities against an open store.
//
// There is one repository per entity (continents, countries, regions), all
// with the same four operations:
//
//	Search    equality match on the non-empty filter fields
//	Load      one row by primary key
//	SaveNew   validate, insert, re-read the stored row by its new id
//	SaveEdit  validate, update only the supplied columns, re-read by key
//
// Writes run inside a transaction that also covers the re-read, so a failed
// validation or statement leaves the table untouched.
//
// # Partial Edits
//
// In the record passed to SaveEdit, an empty string, a zero foreign key or
// a nil pointer means "not supplied" and the column keeps its stored value.
// A non-nil pointer to "" clears a nullable column to NULL.
package repository
