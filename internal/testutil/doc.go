// Package testutil provides common test utilities for ghquery components.
//
// This package is organized into the following sub-packages:
//
//   - mocks: testify/mock implementations of the git interfaces
//   - builders: builders for go-github fixtures
//
// # Example
//
//	repo := mocks.NewMockRepository()
//	repo.On("GetRootPath", mock.Anything, mock.Anything).Return("/work/cat", nil)
//	repo.On("GetRemoteURL", mock.Anything, "/work/cat", "origin").
//	    Return("git@github.com:octo/cat.git", nil)
//
//	issue := builders.NewIssueBuilder().
//	    WithNumber(123).
//	    AsPullRequest().
//	    Build()
package testutil
