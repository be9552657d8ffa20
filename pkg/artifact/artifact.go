// pkg/artifact/artifact.go
package artifact

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/blakesmith/ar"
	"github.com/klauspost/compress/zstd"
	"github.com/sassoftware/go-rpmutils"
	"github.com/ulikunitz/xz"
)

// Kind classifies a built package file by its extension.
type Kind string

const (
	KindDeb     Kind = "deb"
	KindRpm     Kind = "rpm"
	KindArch    Kind = "archpkg"
	KindUnknown Kind = "unknown"
)

// Info is best-effort metadata peeked out of a package file.
type Info struct {
	Kind    Kind
	Name    string
	Version string
}

// KindForPath dispatches on the artifact filename. Arch packages keep their
// compound .pkg.tar.* extension; everything else goes by the final segment.
func KindForPath(path string) Kind {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".deb"):
		return KindDeb
	case strings.HasSuffix(lower, ".rpm"):
		return KindRpm
	case strings.HasSuffix(lower, ".pkg.tar.zst"),
		strings.HasSuffix(lower, ".pkg.tar.xz"),
		strings.HasSuffix(lower, ".pkg.tar.gz"):
		return KindArch
	default:
		return KindUnknown
	}
}

// Inspect opens the package file and extracts name and version from its
// native metadata. Inspection is informational only; installation never
// depends on it succeeding.
func Inspect(path string) (*Info, error) {
	kind := KindForPath(path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	switch kind {
	case KindDeb:
		return inspectDeb(f)
	case KindRpm:
		return inspectRpm(f)
	case KindArch:
		return inspectArch(f, path)
	default:
		return nil, fmt.Errorf("unknown package type: %s", path)
	}
}

// inspectDeb walks the outer ar archive for control.tar.* and reads the
// control file's Package and Version fields.
func inspectDeb(f io.Reader) (*Info, error) {
	arReader := ar.NewReader(f)
	for {
		header, err := arReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading ar entry: %w", err)
		}

		name := strings.TrimSuffix(strings.TrimSpace(header.Name), "/")
		if !strings.HasPrefix(name, "control.tar") {
			continue
		}

		tr, err := compressedTarReader(arReader, name)
		if err != nil {
			return nil, err
		}
		return debControlInfo(tr)
	}
	return nil, fmt.Errorf("no control.tar.* found in .deb package")
}

func debControlInfo(tr *tar.Reader) (*Info, error) {
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading control tar: %w", err)
		}
		if strings.TrimPrefix(hdr.Name, "./") != "control" {
			continue
		}

		info := &Info{Kind: KindDeb}
		scanner := bufio.NewScanner(tr)
		for scanner.Scan() {
			line := scanner.Text()
			if v, ok := strings.CutPrefix(line, "Package:"); ok {
				info.Name = strings.TrimSpace(v)
			}
			if v, ok := strings.CutPrefix(line, "Version:"); ok {
				info.Version = strings.TrimSpace(v)
			}
		}
		return info, scanner.Err()
	}
	return nil, fmt.Errorf("no control file in control.tar")
}

func inspectRpm(f io.Reader) (*Info, error) {
	rpm, err := rpmutils.ReadRpm(f)
	if err != nil {
		return nil, fmt.Errorf("reading rpm package: %w", err)
	}

	nevra, err := rpm.Header.GetNEVRA()
	if err != nil {
		return nil, fmt.Errorf("reading rpm header: %w", err)
	}

	return &Info{Kind: KindRpm, Name: nevra.Name, Version: nevra.Version}, nil
}

// inspectArch reads the .PKGINFO member of a pacman package.
func inspectArch(f io.Reader, path string) (*Info, error) {
	tr, err := compressedTarReader(f, strings.ToLower(path))
	if err != nil {
		return nil, err
	}

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading package tar: %w", err)
		}
		if hdr.Name != ".PKGINFO" {
			continue
		}

		info := &Info{Kind: KindArch}
		scanner := bufio.NewScanner(tr)
		for scanner.Scan() {
			line := scanner.Text()
			if v, ok := strings.CutPrefix(line, "pkgname ="); ok {
				info.Name = strings.TrimSpace(v)
			}
			if v, ok := strings.CutPrefix(line, "pkgver ="); ok {
				info.Version = strings.TrimSpace(v)
			}
		}
		return info, scanner.Err()
	}
	return nil, fmt.Errorf("no .PKGINFO found in package")
}

// compressedTarReader wraps r in the decompressor matching the name suffix.
func compressedTarReader(r io.Reader, name string) (*tar.Reader, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating gzip reader: %w", err)
		}
		return tar.NewReader(gz), nil
	case strings.HasSuffix(name, ".xz"):
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating xz reader: %w", err)
		}
		return tar.NewReader(xzr), nil
	case strings.HasSuffix(name, ".zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		return tar.NewReader(zr), nil
	default:
		return tar.NewReader(r), nil
	}
}
