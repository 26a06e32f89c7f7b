package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileToBuffer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payload")
	content := []byte("0123456789abcdef")
	require.NoError(t, os.WriteFile(path, content, 0644))

	buf, err := ReadFileToBuffer(path, 3)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat(content, 3), buf)
}

func TestReadFileToBufferErrors(t *testing.T) {
	_, err := ReadFileToBuffer("/no/such/file", 1)
	assert.Error(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "payload")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	_, err = ReadFileToBuffer(path, 0)
	assert.Error(t, err)
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out")
	file, err := os.Create(path)
	require.NoError(t, err)

	payload := bytes.Repeat([]byte("chunk"), 100)
	n, err := WriteAll(file, payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	require.NoError(t, file.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}
