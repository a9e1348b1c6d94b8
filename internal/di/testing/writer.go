package ditesting

import (
	"context"
	"sync"

	"github.com/goliatone/go-sitepub/internal/sitemap"
)

// MemoryWriter records sitemap artifact writes for assertions in tests.
type MemoryWriter struct {
	mu     sync.Mutex
	writes []sitemap.Artifact
	files  map[string][]byte
}

var _ sitemap.ArtifactWriter = (*MemoryWriter)(nil)

// NewMemoryWriter constructs a new in-memory artifact writer.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{files: map[string][]byte{}}
}

// WriteFile records the artifact and keeps the latest content per path.
func (m *MemoryWriter) WriteFile(_ context.Context, artifact sitemap.Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	artifact.Content = append([]byte(nil), artifact.Content...)
	m.writes = append(m.writes, artifact)
	m.files[artifact.Path] = artifact.Content
	return nil
}

// Writes returns a copy of recorded writes in call order.
func (m *MemoryWriter) Writes() []sitemap.Artifact {
	m.mu.Lock()
	defer m.mu.Unlock()

	writes := make([]sitemap.Artifact, len(m.writes))
	copy(writes, m.writes)
	return writes
}

// File returns the latest content written to path.
func (m *MemoryWriter) File(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, ok := m.files[path]
	return string(content), ok
}
