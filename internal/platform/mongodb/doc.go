// Package mongodb implements the store interfaces on top of MongoDB using
// the official driver. Each store wraps one collection; backend failures
// are mapped onto the shared store error taxonomy so callers never see
// driver-specific errors.
package mongodb
