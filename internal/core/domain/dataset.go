package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ColumnKind is the resolved storage type of a dataset column.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumeric
	KindDate
)

func (k ColumnKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// Column holds the values of one field for every row. Exactly one of Nums,
// Texts or Dates is populated, depending on Kind. Missing values are NaN for
// numeric columns, the zero time for date columns and "" for text columns.
type Column struct {
	Name  string
	Kind  ColumnKind
	Nums  []float64
	Texts []string
	Dates []time.Time
}

// NewNumericColumn creates a numeric column that takes ownership of vals.
func NewNumericColumn(name string, vals []float64) *Column {
	return &Column{Name: name, Kind: KindNumeric, Nums: vals}
}

// NewTextColumn creates a text column that takes ownership of vals.
func NewTextColumn(name string, vals []string) *Column {
	return &Column{Name: name, Kind: KindText, Texts: vals}
}

// NewDateColumn creates a date column that takes ownership of vals.
func NewDateColumn(name string, vals []time.Time) *Column {
	return &Column{Name: name, Kind: KindDate, Dates: vals}
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	switch c.Kind {
	case KindNumeric:
		return len(c.Nums)
	case KindDate:
		return len(c.Dates)
	default:
		return len(c.Texts)
	}
}

// IsNull reports whether row i holds no data.
func (c *Column) IsNull(i int) bool {
	switch c.Kind {
	case KindNumeric:
		return math.IsNaN(c.Nums[i])
	case KindDate:
		return c.Dates[i].IsZero()
	default:
		return c.Texts[i] == ""
	}
}

// NullCount returns the number of rows without data.
func (c *Column) NullCount() int {
	n := 0
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			n++
		}
	}
	return n
}

// Format renders row i the way it is written on export. Missing values
// render as the empty string.
func (c *Column) Format(i int) string {
	if c.IsNull(i) {
		return ""
	}
	switch c.Kind {
	case KindNumeric:
		return strconv.FormatFloat(c.Nums[i], 'f', -1, 64)
	case KindDate:
		d := c.Dates[i]
		if d.Hour() == 0 && d.Minute() == 0 && d.Second() == 0 && d.Nanosecond() == 0 {
			return d.Format(time.DateOnly)
		}
		return d.Format(time.DateTime)
	default:
		return c.Texts[i]
	}
}

func (c *Column) clone() *Column {
	out := &Column{Name: c.Name, Kind: c.Kind}
	switch c.Kind {
	case KindNumeric:
		out.Nums = append([]float64(nil), c.Nums...)
	case KindDate:
		out.Dates = append([]time.Time(nil), c.Dates...)
	default:
		out.Texts = append([]string(nil), c.Texts...)
	}
	return out
}

// Dataset is an ordered collection of campaign rows stored column by column.
// Column lookup is by name; the insertion order is kept only so exports keep
// the uploaded header layout. A Dataset is not safe for concurrent mutation.
type Dataset struct {
	id       string
	rows     int
	columns  []*Column
	index    map[string]int
	revision uint64
}

// NewDataset returns an empty dataset sized for rows records.
func NewDataset(rows int) *Dataset {
	return &Dataset{
		id:    uuid.NewString(),
		rows:  rows,
		index: make(map[string]int),
	}
}

// ID identifies this dataset instance. Clones get a fresh ID.
func (d *Dataset) ID() string {
	if d == nil {
		return ""
	}
	return d.id
}

// Len returns the number of rows. A nil dataset has zero rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return d.rows
}

// Revision increases every time the dataset is mutated. Cluster assignments
// record it to detect staleness.
func (d *Dataset) Revision() uint64 {
	if d == nil {
		return 0
	}
	return d.revision
}

// Touch marks an in-place cell mutation.
func (d *Dataset) Touch() { d.revision++ }

// Has reports whether a column with the given name exists.
func (d *Dataset) Has(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.index[name]
	return ok
}

// Column returns the named column.
func (d *Dataset) Column(name string) (*Column, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// Numeric returns the values of a numeric column. It returns false when the
// column is absent or did not resolve to a numeric type.
func (d *Dataset) Numeric(name string) ([]float64, bool) {
	c, ok := d.Column(name)
	if !ok || c.Kind != KindNumeric {
		return nil, false
	}
	return c.Nums, true
}

// Columns returns the columns in header order.
func (d *Dataset) Columns() []*Column {
	if d == nil {
		return nil
	}
	return append([]*Column(nil), d.columns...)
}

// ColumnNames returns the column names in header order.
func (d *Dataset) ColumnNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// SetColumn adds c, or replaces an existing column with the same name in
// place. The column length must match the dataset row count.
func (d *Dataset) SetColumn(c *Column) error {
	if c.Len() != d.rows {
		return fmt.Errorf("column %q has %d rows, dataset has %d", c.Name, c.Len(), d.rows)
	}
	if i, ok := d.index[c.Name]; ok {
		d.columns[i] = c
	} else {
		d.index[c.Name] = len(d.columns)
		d.columns = append(d.columns, c)
	}
	d.revision++
	return nil
}

// Clone returns a deep copy with a new identity.
func (d *Dataset) Clone() *Dataset {
	out := NewDataset(d.rows)
	for _, c := range d.columns {
		out.index[c.Name] = len(out.columns)
		out.columns = append(out.columns, c.clone())
	}
	return out
}
