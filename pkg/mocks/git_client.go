package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock for git.GitClient.
type MockGitClient struct {
	mock.Mock
}

func (m *MockGitClient) Clone(url string, dest string) error {
	args := m.Called(url, dest)
	return args.Error(0)
}

func (m *MockGitClient) Checkout(repoPath string, ref string) error {
	args := m.Called(repoPath, ref)
	return args.Error(0)
}

func (m *MockGitClient) EnsureWorkDir(path string) error {
	args := m.Called(path)
	return args.Error(0)
}
