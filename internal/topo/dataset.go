package topo

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/roverworks/wheelsync/internal/fetcher"
)

// Sentinel failure conditions for loading the elevation table. Both are
// terminal: no metrics record is produced when they occur.
var (
	// ErrSourceUnavailable indicates the source file is missing or unreadable.
	ErrSourceUnavailable = eris.New("topo: source unavailable")

	// ErrSchemaInvalid indicates the table is empty, a required column is
	// absent, or a required cell is not numeric.
	ErrSchemaInvalid = eris.New("topo: schema invalid")
)

// Default column names for the elevation table. Datasets exported from GIS
// tools vary, so each binding is overridable via Options.
const (
	DefaultLonColumn  = "x"
	DefaultLatColumn  = "y"
	DefaultElevColumn = "ZCOORD"
	DefaultIDColumn   = "ID"
)

// Options configures an Analyze call.
type Options struct {
	// Column bindings. Empty fields fall back to the defaults above.
	LonColumn  string
	LatColumn  string
	ElevColumn string
	IDColumn   string

	// Sheet selects a worksheet by name for XLSX sources. Empty means the
	// first sheet.
	Sheet string

	// ReportPath, when set, writes a human-readable text report as a side
	// effect. Write failures are logged, never returned.
	ReportPath string
}

func (o Options) withDefaults() Options {
	if o.LonColumn == "" {
		o.LonColumn = DefaultLonColumn
	}
	if o.LatColumn == "" {
		o.LatColumn = DefaultLatColumn
	}
	if o.ElevColumn == "" {
		o.ElevColumn = DefaultElevColumn
	}
	if o.IDColumn == "" {
		o.IDColumn = DefaultIDColumn
	}
	return o
}

// ElevationPoint is one row of the input table. Coordinates are WGS84
// degrees, elevation is meters. Immutable once loaded.
type ElevationPoint struct {
	ID   float64
	Lon  float64
	Lat  float64
	Elev float64
}

// loadPoints reads the tabular source and returns its points sorted
// ascending by id. The sort is stable, so rows sharing an id keep their
// input order.
//
// Non-numeric values in any required column fail the load with
// ErrSchemaInvalid. The source behavior here was incidental (NaN
// propagation from the tabular library); an explicit parse failure keeps
// the fail-fast contract of the rest of the loader.
func loadPoints(path string, opts Options) ([]ElevationPoint, error) {
	rows, err := readRows(path, opts)
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, eris.Wrap(ErrSchemaInvalid, "topo: table has no header row")
	}

	header := rows[0]
	cols, err := bindColumns(header, opts)
	if err != nil {
		return nil, err
	}
	points := make([]ElevationPoint, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			// Trailing empty rows are common in spreadsheet exports.
			continue
		}
		p, err := parsePoint(row, cols, i+2) // 1-based row number incl. header
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, eris.Wrap(ErrSchemaInvalid, "topo: table has no data rows")
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].ID < points[j].ID
	})

	return points, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// readRows dispatches on file extension. XLSX is the primary format; CSV
// exports of the same tables are accepted as well.
func readRows(path string, opts Options) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err := fetcher.ReadCSV(path)
		if err != nil {
			return nil, eris.Wrap(ErrSourceUnavailable, err.Error())
		}
		return rows, nil
	default:
		rows, err := fetcher.ReadXLSX(path, fetcher.XLSXOptions{SheetName: opts.Sheet})
		if err != nil {
			return nil, eris.Wrap(ErrSourceUnavailable, err.Error())
		}
		return rows, nil
	}
}

// columnIndexes holds the resolved positions of the four required columns.
type columnIndexes struct {
	lon, lat, elev, id int
}

func bindColumns(header []string, opts Options) (columnIndexes, error) {
	idx := func(name string) int {
		for i, h := range header {
			if strings.TrimSpace(h) == name {
				return i
			}
		}
		return -1
	}

	cols := columnIndexes{
		lon:  idx(opts.LonColumn),
		lat:  idx(opts.LatColumn),
		elev: idx(opts.ElevColumn),
		id:   idx(opts.IDColumn),
	}

	var missing []string
	for _, c := range []struct {
		name string
		pos  int
	}{
		{opts.LonColumn, cols.lon},
		{opts.LatColumn, cols.lat},
		{opts.ElevColumn, cols.elev},
		{opts.IDColumn, cols.id},
	} {
		if c.pos < 0 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return columnIndexes{}, eris.Wrap(ErrSchemaInvalid,
			fmt.Sprintf("topo: missing required columns: %s", strings.Join(missing, ", ")))
	}

	return cols, nil
}

func parsePoint(row []string, cols columnIndexes, rowNum int) (ElevationPoint, error) {
	cell := func(pos int, name string) (float64, error) {
		if pos >= len(row) {
			return 0, eris.Wrap(ErrSchemaInvalid,
				fmt.Sprintf("topo: row %d has no %s cell", rowNum, name))
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[pos]), 64)
		if err != nil {
			return 0, eris.Wrap(ErrSchemaInvalid,
				fmt.Sprintf("topo: row %d: non-numeric %s value %q", rowNum, name, row[pos]))
		}
		return v, nil
	}

	var p ElevationPoint
	var err error
	if p.Lon, err = cell(cols.lon, "longitude"); err != nil {
		return ElevationPoint{}, err
	}
	if p.Lat, err = cell(cols.lat, "latitude"); err != nil {
		return ElevationPoint{}, err
	}
	if p.Elev, err = cell(cols.elev, "elevation"); err != nil {
		return ElevationPoint{}, err
	}
	if p.ID, err = cell(cols.id, "id"); err != nil {
		return ElevationPoint{}, err
	}
	return p, nil
}
