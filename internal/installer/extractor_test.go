package installer

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractZip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tron.zip")
	require.NoError(t, os.WriteFile(src, buildZip(t, map[string]string{
		"tron/tron.bat":          "@echo off",
		"tron/resources/one.txt": "1",
	}), 0644))

	dest := filepath.Join(dir, "out")
	top, err := ExtractArchive(src, dest)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "tron"), top)

	data, err := os.ReadFile(filepath.Join(dest, "tron", "resources", "one.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1", string(data))
}

func TestExtractTarGz(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "pkg/", Typeflag: tar.TypeDir, Mode: 0755}))
	body := []byte("hello")
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "pkg/hello.txt", Typeflag: tar.TypeReg, Mode: 0644, Size: int64(len(body))}))
	_, err := tw.Write(body)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())

	dir := t.TempDir()
	src := filepath.Join(dir, "pkg.TAR.GZ")
	require.NoError(t, os.WriteFile(src, buf.Bytes(), 0644))

	top, err := ExtractArchive(src, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "pkg"), top)

	data, err := os.ReadFile(filepath.Join(dir, "pkg", "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestExtractZipRejectsTraversal(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("../evil.bat")
	require.NoError(t, err)
	_, _ = w.Write([]byte("x"))
	require.NoError(t, zw.Close())

	dir := t.TempDir()
	src := filepath.Join(dir, "evil.zip")
	require.NoError(t, os.WriteFile(src, buf.Bytes(), 0644))

	_, err = ExtractArchive(src, filepath.Join(dir, "out"))
	assert.ErrorContains(t, err, "escapes destination")
	_, statErr := os.Stat(filepath.Join(dir, "evil.bat"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractUnsupported(t *testing.T) {
	_, err := ExtractArchive("tron.rar", t.TempDir())
	assert.ErrorContains(t, err, "unsupported archive format")
}

func TestFirstSegment(t *testing.T) {
	assert.Equal(t, "tron", firstSegment("tron/tron.bat"))
	assert.Equal(t, "tron", firstSegment("./tron/x"))
	assert.Equal(t, "file.txt", firstSegment("file.txt"))
}
