package mocks

import (
	"context"

	"github.com/douhashi/ghquery/internal/git"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of git.Repository interface
type MockRepository struct {
	mock.Mock
}

// NewMockRepository creates a new instance of MockRepository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// WithDefaultBehavior sets up a repository rooted at "." whose origin is github.com/user/repo
func (m *MockRepository) WithDefaultBehavior() *MockRepository {
	m.On("IsGitRepository", mock.Anything, mock.Anything).Maybe().Return(true)
	m.On("GetRootPath", mock.Anything, mock.Anything).Maybe().Return(".", nil)
	m.On("GetRemoteURL", mock.Anything, mock.Anything, mock.Anything).Maybe().
		Return("https://github.com/user/repo.git", nil)
	return m
}

// IsGitRepository mocks the IsGitRepository method
func (m *MockRepository) IsGitRepository(ctx context.Context, path string) bool {
	args := m.Called(ctx, path)
	return args.Bool(0)
}

// GetRootPath mocks the GetRootPath method
func (m *MockRepository) GetRootPath(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

// GetRemoteURL mocks the GetRemoteURL method
func (m *MockRepository) GetRemoteURL(ctx context.Context, path string, remoteName string) (string, error) {
	args := m.Called(ctx, path, remoteName)
	return args.String(0), args.Error(1)
}

// MockRunner is a mock implementation of git.Runner interface
type MockRunner struct {
	mock.Mock
}

// NewMockRunner creates a new instance of MockRunner
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

// Run mocks the Run method
func (m *MockRunner) Run(ctx context.Context, args []string, workDir string) (string, error) {
	ret := m.Called(ctx, args, workDir)
	return ret.String(0), ret.Error(1)
}

var (
	_ git.Repository = (*MockRepository)(nil)
	_ git.Runner     = (*MockRunner)(nil)
)
