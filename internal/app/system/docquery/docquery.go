// internal/app/system/docquery/docquery.go

// Package docquery builds Mongo queries from a declarative filter spec.
//
// The spec deliberately carries the constraints of a simple document store so
// the query layer stays portable:
//
//   - at most one range field per query (both timestamp bounds go on the same
//     field, which the store permits)
//   - membership filters accept at most MaxAnyOfValues values; excess values
//     are silently dropped, not rejected
//   - page-boundary detection is lookahead (fetch N+1, trim to N); total
//     counts are a separate round trip with no snapshot consistency against
//     the page query
package docquery

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxAnyOfValues is the membership-query cardinality limit. Callers never see
// an error for oversized value lists; values beyond the limit are dropped.
const MaxAnyOfValues = 10

// Sort names the single sort field and its direction.
type Sort struct {
	Field string
	Desc  bool
}

// AnyOf matches documents whose Field contains (or equals) any of Values.
type AnyOf struct {
	Field  string
	Values []string
}

// Range bounds a single field. Min maps to $gte, Max to $lte; either may be
// nil. Both bounds always apply to the same field.
type Range struct {
	Field string
	Min   *time.Time
	Max   *time.Time
}

// Anchor resumes a query strictly after the document it names. SortValue is
// the anchor document's value for the sort field; ID breaks ties.
type Anchor struct {
	ID        string
	SortValue any
}

// Spec is a declarative filtered, ordered, limited query.
type Spec struct {
	Eq     map[string]any
	AnyOf  *AnyOf
	Range  *Range
	Sort   Sort
	Limit  int64 // page size; the executed query fetches Limit+1
	Offset int64 // offset paging; ignored when Anchor is set
	Anchor *Anchor
}

// Filter returns the match filter including the anchor resume window.
func (s Spec) Filter() bson.M {
	f := s.CountFilter()
	if s.Anchor == nil {
		return f
	}

	// Keyset window: strictly past the anchor on the sort field, or equal on
	// the sort field and past on _id. _id ascends regardless of direction.
	op := "$gt"
	if s.Sort.Desc {
		op = "$lt"
	}
	window := bson.M{"$or": bson.A{
		bson.M{s.Sort.Field: bson.M{op: s.Anchor.SortValue}},
		bson.M{s.Sort.Field: s.Anchor.SortValue, "_id": bson.M{"$gt": s.Anchor.ID}},
	}}

	if len(f) == 0 {
		return window
	}
	return bson.M{"$and": bson.A{f, window}}
}

// CountFilter returns the match filter without pagination state, for the
// independent count query.
func (s Spec) CountFilter() bson.M {
	f := bson.M{}
	for k, v := range s.Eq {
		f[k] = v
	}
	if s.AnyOf != nil && len(s.AnyOf.Values) > 0 {
		vals := s.AnyOf.Values
		if len(vals) > MaxAnyOfValues {
			vals = vals[:MaxAnyOfValues]
		}
		f[s.AnyOf.Field] = bson.M{"$in": vals}
	}
	if s.Range != nil {
		bounds := bson.M{}
		if s.Range.Min != nil {
			bounds["$gte"] = *s.Range.Min
		}
		if s.Range.Max != nil {
			bounds["$lte"] = *s.Range.Max
		}
		if len(bounds) > 0 {
			f[s.Range.Field] = bounds
		}
	}
	return f
}

// FindOptions returns sort, limit, and skip for the page query. The limit is
// Limit+1 so callers can detect a following page without a second query.
func (s Spec) FindOptions() *options.FindOptions {
	dir := 1
	if s.Sort.Desc {
		dir = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: s.Sort.Field, Value: dir}, {Key: "_id", Value: 1}}).
		SetLimit(s.Limit + 1)
	if s.Anchor == nil && s.Offset > 0 {
		opts.SetSkip(s.Offset)
	}
	return opts
}
