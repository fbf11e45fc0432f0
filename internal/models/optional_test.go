package models

import (
	"encoding/json"
	"testing"
)

type patch struct {
	Excerpt Optional[string] `json:"excerpt"`
	IDs     Optional[[]uint] `json:"ids"`
}

func TestOptionalDistinguishesAbsentFromNull(t *testing.T) {
	var absent patch
	if err := json.Unmarshal([]byte(`{}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if absent.Excerpt.Set || absent.IDs.Set {
		t.Fatalf("expected absent fields to stay unset, got %+v", absent)
	}

	var cleared patch
	if err := json.Unmarshal([]byte(`{"excerpt": null, "ids": []}`), &cleared); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !cleared.Excerpt.Set || !cleared.Excerpt.Null {
		t.Fatalf("expected explicit null excerpt, got %+v", cleared.Excerpt)
	}
	if !cleared.IDs.Set || cleared.IDs.Null || len(cleared.IDs.Value) != 0 {
		t.Fatalf("expected explicit empty ids, got %+v", cleared.IDs)
	}

	var set patch
	if err := json.Unmarshal([]byte(`{"excerpt": "short", "ids": [3, 1]}`), &set); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !set.Excerpt.Set || set.Excerpt.Null || set.Excerpt.Value != "short" {
		t.Fatalf("unexpected excerpt %+v", set.Excerpt)
	}
	if len(set.IDs.Value) != 2 || set.IDs.Value[0] != 3 {
		t.Fatalf("unexpected ids %+v", set.IDs)
	}
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var p patch
	if err := json.Unmarshal([]byte(`{"ids": "nope"}`), &p); err == nil {
		t.Fatalf("expected type error")
	}
}
