// Package query models read requests against the catalog as ordered plans of
// filter/search/sort stages, independent of any particular store. Executors
// (e.g. the PostgreSQL repository) translate the stages into native clauses.
package query

import (
	"errors"

	"github.com/google/uuid"
)

// SortField enumerates the fields a list query may be ordered by.
type SortField string

const (
	SortByViews     SortField = "views"
	SortByCreatedAt SortField = "createdAt"
	SortByDuration  SortField = "duration"
)

// IsValid reports whether the field is in the sortable whitelist.
func (f SortField) IsValid() bool {
	switch f {
	case SortByViews, SortByCreatedAt, SortByDuration:
		return true
	default:
		return false
	}
}

// Stage is one step of a Plan. The concrete stage types below are the only
// implementations.
type Stage interface {
	isStage()
}

// SearchStage matches videos whose title or description contain the text.
// Ranking beyond "matches" is left to the executor.
type SearchStage struct {
	Text string
}

// OwnerFilterStage restricts results to a single owner.
type OwnerFilterStage struct {
	OwnerID uuid.UUID
}

// PublishedFilterStage restricts results to published videos. It is always
// present in list plans and never in single-item fetches.
type PublishedFilterStage struct{}

// SortStage orders the results by a whitelisted field.
type SortStage struct {
	Field      SortField
	Descending bool
}

func (SearchStage) isStage()          {}
func (OwnerFilterStage) isStage()     {}
func (PublishedFilterStage) isStage() {}
func (SortStage) isStage()            {}

// Plan is an ordered, deterministic stage sequence. Pagination is applied by
// the executor from a separate PageRequest, never encoded as a stage.
type Plan struct {
	Stages []Stage
}

// ListParams are the raw, optional list-query parameters as received from the
// transport layer.
type ListParams struct {
	SearchText    string
	OwnerID       string
	SortField     string
	SortDirection string
}

// ErrInvalidOwnerID is returned when an owner filter is requested with a
// syntactically invalid identifier. No plan is produced in that case.
var ErrInvalidOwnerID = errors.New("owner id is not a valid identifier")

// BuildPlan assembles the list-query plan. Stage order is fixed regardless of
// which parameters are present: search, owner filter, published filter, sort.
// Identical params always yield an identical stage sequence.
func BuildPlan(p ListParams) (Plan, error) {
	stages := make([]Stage, 0, 4)

	if p.SearchText != "" {
		stages = append(stages, SearchStage{Text: p.SearchText})
	}

	if p.OwnerID != "" {
		ownerID, err := uuid.Parse(p.OwnerID)
		if err != nil {
			return Plan{}, ErrInvalidOwnerID
		}
		stages = append(stages, OwnerFilterStage{OwnerID: ownerID})
	}

	stages = append(stages, PublishedFilterStage{})
	stages = append(stages, buildSortStage(p.SortField, p.SortDirection))

	return Plan{Stages: stages}, nil
}

// buildSortStage falls back to createdAt descending unless both a whitelisted
// field and a direction are given. An unrecognized field is not an error.
func buildSortStage(field, direction string) SortStage {
	f := SortField(field)
	if field == "" || direction == "" || !f.IsValid() {
		return SortStage{Field: SortByCreatedAt, Descending: true}
	}
	return SortStage{Field: f, Descending: direction != "asc"}
}
