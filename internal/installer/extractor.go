package installer

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	"setup-windows/internal/logger"
)

// ExtractArchive routes to the appropriate extraction function based on archive type.
// It returns the path of the archive's top-level entry inside dest.
func ExtractArchive(src, dest string) (string, error) {
	name := strings.ToLower(src)
	switch {
	case strings.HasSuffix(name, ".zip"):
		logger.Debug("[DEBUG] compression type is zip\n")
		return extractZip(src, dest)
	case strings.HasSuffix(name, ".7z"):
		logger.Debug("[DEBUG] compression type is .7z\n")
		return extract7z(src, dest)
	case tarDecompressor(name) != nil:
		logger.Debug("[DEBUG] compression type is .tar.*\n")
		return extractTarArchive(src, dest)
	default:
		return "", fmt.Errorf("unsupported archive format: %s", src)
	}
}

// tarDecompressors maps compressed tar suffixes to stream openers.
var tarDecompressors = map[string]func(io.Reader) (io.Reader, error){
	".tar":     func(r io.Reader) (io.Reader, error) { return r, nil },
	".tar.gz":  func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) },
	".tgz":     func(r io.Reader) (io.Reader, error) { return gzip.NewReader(r) },
	".tar.bz2": func(r io.Reader) (io.Reader, error) { return bzip2.NewReader(r), nil },
	".tar.xz":  func(r io.Reader) (io.Reader, error) { return xz.NewReader(r, 0) },
}

func tarDecompressor(name string) func(io.Reader) (io.Reader, error) {
	for suffix, open := range tarDecompressors {
		if strings.HasSuffix(name, suffix) {
			return open
		}
	}
	return nil
}

// extractTarArchive streams a plain or compressed tarball into dest.
func extractTarArchive(src, dest string) (string, error) {
	logger.Debug("[DEBUG] uncompressing %s to %s\n", src, dest)
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	stream, err := tarDecompressor(strings.ToLower(src))(f)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", src, err)
	}
	if c, ok := stream.(io.Closer); ok {
		defer c.Close()
	}

	tr := tar.NewReader(stream)
	var topLevel string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return filepath.Join(dest, topLevel), nil
		}
		if err != nil {
			return "", err
		}
		if topLevel == "" {
			topLevel = firstSegment(hdr.Name)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return "", err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			err = os.MkdirAll(target, 0755)
		case tar.TypeReg:
			err = writeEntry(target, hdr.FileInfo().Mode(), tr)
		default:
			logger.Debug("[DEBUG] skipping %s (type %c)\n", hdr.Name, hdr.Typeflag)
		}
		if err != nil {
			return "", err
		}
	}
}

// archiveFile is one entry of a random-access archive (zip or 7z).
type archiveFile struct {
	name string
	info fs.FileInfo
	open func() (io.ReadCloser, error)
}

func extractZip(src, dest string) (string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to open zip archive: %w", err)
	}
	defer r.Close()

	files := make([]archiveFile, len(r.File))
	for i, f := range r.File {
		files[i] = archiveFile{name: f.Name, info: f.FileInfo(), open: f.Open}
	}
	return extractFiles(files, dest)
}

func extract7z(src, dest string) (string, error) {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	files := make([]archiveFile, len(r.File))
	for i, f := range r.File {
		files[i] = archiveFile{name: f.Name, info: f.FileInfo(), open: f.Open}
	}
	return extractFiles(files, dest)
}

// extractFiles writes every entry under dest and returns the path of the
// first entry's top-level component.
func extractFiles(files []archiveFile, dest string) (string, error) {
	var topLevel string
	for _, f := range files {
		if topLevel == "" {
			topLevel = firstSegment(f.name)
		}
		target, err := safeJoin(dest, f.name)
		if err != nil {
			return "", err
		}
		if f.info.IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return "", err
			}
			continue
		}

		rc, err := f.open()
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", f.name, err)
		}
		err = writeEntry(target, f.info.Mode(), rc)
		rc.Close()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dest, topLevel), nil
}

// writeEntry creates path (and its parents) and copies r into it.
func writeEntry(path string, mode os.FileMode, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if mode.Perm() == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// safeJoin joins an archive entry name onto dest and rejects names that escape it.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("archive entry %q escapes destination %s", name, dest)
	}
	return target, nil
}

// firstSegment returns the top-level component of an archive entry name.
// Archive formats use forward slashes regardless of platform.
func firstSegment(name string) string {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	if i := strings.Index(name, "/"); i >= 0 {
		return name[:i]
	}
	return name
}
