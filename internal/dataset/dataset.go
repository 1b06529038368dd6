// Package dataset holds the immutable generated customer collection and the
// read-only aggregate views computed over it.
package dataset

import (
	"errors"
	"fmt"

	"github.com/jmehdipour/churn-insights/internal/model"
)

var (
	ErrUnknownField = errors.New("dataset: unknown field")
	ErrUnknownValue = errors.New("dataset: unknown field value")
)

// Meta describes the generation run a dataset came from.
type Meta struct {
	RunID   string `json:"run_id"`
	Seed    int64  `json:"seed"`
	Records int    `json:"records"` // size of the source collection, not of a view
}

// Dataset is an ordered, read-only collection of customer records. Views
// returned by Filter and Where share Meta with their source.
type Dataset struct {
	records []model.CustomerRecord
	meta    Meta
}

// New copies records so later changes to the caller's slice are not visible.
func New(records []model.CustomerRecord, meta Meta) *Dataset {
	cp := make([]model.CustomerRecord, len(records))
	copy(cp, records)
	if meta.Records == 0 {
		meta.Records = len(cp)
	}
	return &Dataset{records: cp, meta: meta}
}

func (d *Dataset) Meta() Meta { return d.meta }

func (d *Dataset) Len() int { return len(d.records) }

func (d *Dataset) At(i int) model.CustomerRecord { return d.records[i] }

// Records returns a copy of the underlying records.
func (d *Dataset) Records() []model.CustomerRecord {
	cp := make([]model.CustomerRecord, len(d.records))
	copy(cp, d.records)
	return cp
}

// Filter returns a view with the records keep accepts, in source order.
func (d *Dataset) Filter(keep func(model.CustomerRecord) bool) *Dataset {
	out := make([]model.CustomerRecord, 0, len(d.records))
	for _, r := range d.records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return &Dataset{records: out, meta: d.meta}
}

// Where filters on a categorical field. value must be one of the field's
// known values.
func (d *Dataset) Where(field CategoricalField, value string) (*Dataset, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if !field.HasValue(value) {
		return nil, fmt.Errorf("%w: %s=%q", ErrUnknownValue, field, value)
	}
	return d.Filter(func(r model.CustomerRecord) bool {
		return field.valueOf(r) == value
	}), nil
}

// Page returns the records in [offset, offset+limit), clamped to the view.
func (d *Dataset) Page(offset, limit int) []model.CustomerRecord {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(d.records) || limit <= 0 {
		return []model.CustomerRecord{}
	}
	end := offset + limit
	if end > len(d.records) {
		end = len(d.records)
	}
	cp := make([]model.CustomerRecord, end-offset)
	copy(cp, d.records[offset:end])
	return cp
}
