// Package builders provides builders for go-github fixtures used in tests.
package builders
