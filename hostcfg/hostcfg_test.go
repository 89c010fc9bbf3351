package hostcfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	content := "timeout_seconds: 5\nwrap_offset: 2\nprogram: hello\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 5, s.TimeoutSeconds)
	assert.EqualValues(t, 2, s.WrapOffset)
	assert.Equal(t, "hello", s.Program)
}
