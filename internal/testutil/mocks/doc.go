// Package mocks provides testify/mock implementations of the interfaces in internal/git.
//
// Use the factory functions and WithDefaultBehavior() for the common case of a
// repository whose origin points at github.com.
package mocks
