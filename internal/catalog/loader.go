package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Column layout of the catalog file. Name is optional.
const (
	colID = iota
	colRA
	colDec
	colMag
	colBV
	colTemp
	colName

	requiredColumns = colTemp + 1
)

var columnNames = [...]string{"id", "ra", "dec", "mag", "bv", "temp", "name"}

var (
	// ErrNoHeader is returned for an empty input or one whose first line is
	// already a data row.
	ErrNoHeader = errors.New("catalog has no header line")
)

// ParseError reports a malformed field in the catalog file.
type ParseError struct {
	Line   int    // 1-based line number in the file
	Column string // column name
	Field  string // raw field text
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %s: invalid value %q: %v", e.Line, e.Column, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadOptions tunes how optional columns are interpreted.
type LoadOptions struct {
	// ZeroBVAbsent treats a literal 0 B-V index as missing. Some exports
	// write 0 for unknown values; a real B-V of 0.0 (A0 stars) is then lost.
	ZeroBVAbsent bool
}

// Load reads a catalog file. Files ending in .gz, .zst or .lz4 are
// decompressed on the fly.
func Load(path string, opts LoadOptions) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r, closeFn, err := decompress(f, path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer closeFn()

	cat, err := Read(r, opts)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

// decompress wraps r according to the file extension.
func decompress(r io.Reader, path string) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		return zr, func() { _ = zr.Close() }, nil
	case ".zst":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return zr, zr.Close, nil
	case ".lz4":
		return lz4.NewReader(r), func() {}, nil
	default:
		return r, func() {}, nil
	}
}

// Read parses catalog CSV: a header line, then rows of
// id,ra,dec,mag,bv,temp[,name]. The first malformed row aborts the load;
// partial catalogs are never returned.
//
// An empty bv or temp field means the value is absent, and so does a
// temperature <= 0 since no star has one.
func Read(r io.Reader, opts LoadOptions) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	// A numeric first field is a data row, so the header is missing.
	if _, err := strconv.ParseFloat(strings.TrimSpace(header[0]), 64); err == nil {
		return nil, ErrNoHeader
	}

	cat := New()
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		line, _ := cr.FieldPos(0)
		star, err := parseRow(rec, line, opts)
		if err != nil {
			return nil, err
		}
		cat.add(star)
	}

	return cat, nil
}

func parseRow(rec []string, line int, opts LoadOptions) (Star, error) {
	if len(rec) < requiredColumns {
		return Star{}, &ParseError{
			Line:   line,
			Column: columnNames[len(rec)],
			Err:    fmt.Errorf("row has %d fields, want at least %d", len(rec), requiredColumns),
		}
	}

	field := func(col int) string {
		return strings.TrimSpace(rec[col])
	}
	fail := func(col int, err error) error {
		return &ParseError{Line: line, Column: columnNames[col], Field: field(col), Err: err}
	}

	id, err := strconv.Atoi(field(colID))
	if err != nil {
		return Star{}, fail(colID, err)
	}

	var nums [colMag + 1]float64
	for _, col := range []int{colRA, colDec, colMag} {
		v, err := parseFinite(field(col))
		if err != nil {
			return Star{}, fail(col, err)
		}
		nums[col] = v
	}

	star := NewStar(id, nums[colRA], nums[colDec], nums[colMag])

	bv, err := parseOptional(field(colBV))
	if err != nil {
		return Star{}, fail(colBV, err)
	}
	if bv.Valid && !(bv.Value == 0 && opts.ZeroBVAbsent) {
		star = star.WithBV(bv.Value)
	}

	temp, err := parseOptional(field(colTemp))
	if err != nil {
		return Star{}, fail(colTemp, err)
	}
	if temp.Valid && temp.Value > 0 {
		star = star.WithTemperature(temp.Value)
	}

	if len(rec) > colName {
		star = star.WithName(field(colName))
	}

	return star, nil
}

var errNotFinite = errors.New("value is not finite")

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

func parseOptional(s string) (Optional, error) {
	if s == "" {
		return None(), nil
	}
	v, err := parseFinite(s)
	if err != nil {
		return None(), err
	}
	return Some(v), nil
}
