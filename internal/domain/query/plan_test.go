package query

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestBuildPlan_StageOrder(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name       string
		params     ListParams
		wantStages []Stage
	}{
		{
			name:   "no optional params",
			params: ListParams{},
			wantStages: []Stage{
				PublishedFilterStage{},
				SortStage{Field: SortByCreatedAt, Descending: true},
			},
		},
		{
			name:   "search only",
			params: ListParams{SearchText: "gophers"},
			wantStages: []Stage{
				SearchStage{Text: "gophers"},
				PublishedFilterStage{},
				SortStage{Field: SortByCreatedAt, Descending: true},
			},
		},
		{
			name: "all params in fixed order",
			params: ListParams{
				SearchText:    "gophers",
				OwnerID:       ownerID.String(),
				SortField:     "views",
				SortDirection: "asc",
			},
			wantStages: []Stage{
				SearchStage{Text: "gophers"},
				OwnerFilterStage{OwnerID: ownerID},
				PublishedFilterStage{},
				SortStage{Field: SortByViews, Descending: false},
			},
		},
		{
			name:   "owner filter only",
			params: ListParams{OwnerID: ownerID.String()},
			wantStages: []Stage{
				OwnerFilterStage{OwnerID: ownerID},
				PublishedFilterStage{},
				SortStage{Field: SortByCreatedAt, Descending: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := BuildPlan(tt.params)
			if err != nil {
				t.Fatalf("BuildPlan() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(plan.Stages, tt.wantStages) {
				t.Errorf("BuildPlan() stages = %#v, want %#v", plan.Stages, tt.wantStages)
			}
		})
	}
}

func TestBuildPlan_Deterministic(t *testing.T) {
	params := ListParams{
		SearchText:    "climbing",
		OwnerID:       uuid.New().String(),
		SortField:     "duration",
		SortDirection: "desc",
	}

	first, err := BuildPlan(params)
	if err != nil {
		t.Fatalf("BuildPlan() unexpected error: %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := BuildPlan(params)
		if err != nil {
			t.Fatalf("BuildPlan() unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("BuildPlan() not deterministic: %#v vs %#v", first, again)
		}
	}
}

func TestBuildPlan_InvalidOwnerID(t *testing.T) {
	_, err := BuildPlan(ListParams{OwnerID: "not-a-uuid"})
	if !errors.Is(err, ErrInvalidOwnerID) {
		t.Errorf("BuildPlan() error = %v, want %v", err, ErrInvalidOwnerID)
	}
}

func TestBuildSortStage(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		direction string
		want      SortStage
	}{
		{"both given ascending", "views", "asc", SortStage{Field: SortByViews, Descending: false}},
		{"both given descending", "views", "desc", SortStage{Field: SortByViews, Descending: true}},
		{"unknown direction means descending", "duration", "sideways", SortStage{Field: SortByDuration, Descending: true}},
		{"missing direction falls back", "views", "", SortStage{Field: SortByCreatedAt, Descending: true}},
		{"missing field falls back", "", "asc", SortStage{Field: SortByCreatedAt, Descending: true}},
		{"unrecognized field falls back without error", "likes", "asc", SortStage{Field: SortByCreatedAt, Descending: true}},
		{"createdAt ascending", "createdAt", "asc", SortStage{Field: SortByCreatedAt, Descending: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildSortStage(tt.field, tt.direction); got != tt.want {
				t.Errorf("buildSortStage(%q, %q) = %+v, want %+v", tt.field, tt.direction, got, tt.want)
			}
		})
	}
}
