package services

import (
	"fmt"
	"sync"
)

// MockS3Service is an in-memory S3Interface implementation for testing
type MockS3Service struct {
	uploadedFiles map[string][]byte
	mu            sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		uploadedFiles: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// UploadQRImage stores the PNG in memory
func (m *MockS3Service) UploadQRImage(key string, png []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	content := make([]byte, len(png))
	copy(content, png)
	m.uploadedFiles[key] = content
	return nil
}

// GetPresignedURL returns a deterministic fake URL for a stored key
func (m *MockS3Service) GetPresignedURL(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.uploadedFiles[key]; !ok {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return "https://mock-s3.local/" + key, nil
}

// UploadedKeys returns the keys stored so far
func (m *MockS3Service) UploadedKeys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.uploadedFiles))
	for k := range m.uploadedFiles {
		keys = append(keys, k)
	}
	return keys
}
