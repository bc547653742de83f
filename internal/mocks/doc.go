// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock has optional function fields to override
// behavior per test, backed by a simple in-memory default implementation.
package mocks
