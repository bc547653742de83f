// Package store defines the persistence interfaces the application depends
// on, along with the shared error taxonomy store implementations map their
// backend-specific failures into.
package store
