package services

import (
	"context"
	"testing"

	"inkwell/internal/testutil"
)

func TestCategoryList(t *testing.T) {
	svc := NewCategoryService(testutil.NewSeededDB(t))

	categories, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"javascript", "web-dev", "databases"}
	if len(categories) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(categories))
	}
	for i, c := range categories {
		if c.Slug != want[i] {
			t.Errorf("category %d = %s, want %s", i, c.Slug, want[i])
		}
	}
}

func TestCategoryListEmpty(t *testing.T) {
	svc := NewCategoryService(testutil.NewDB(t))
	categories, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if categories == nil || len(categories) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", categories)
	}
}
