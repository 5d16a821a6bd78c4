package extract

import (
	"context"
	"testing"
)

func TestMockExtractObjects(t *testing.T) {
	var m Mock
	objects, err := m.ExtractObjects(context.Background(), "a red tugboat next to a house")
	if err != nil {
		t.Fatalf("ExtractObjects() = %v", err)
	}
	if len(objects) != 2 {
		t.Fatalf("objects = %+v; expected tugboat and house", objects)
	}
	if objects[0].Name != "Tugboat" || objects[1].Name != "House" {
		t.Errorf("objects = %+v; expected [Tugboat House]", objects)
	}
	if objects[0].Color == nil || objects[0].Color.R != 0.8 {
		t.Errorf("color = %+v; expected red", objects[0].Color)
	}
}

func TestMockIgnoresUnknownWords(t *testing.T) {
	var m Mock
	objects, err := m.ExtractObjects(context.Background(), "the quick brown fox")
	if err != nil {
		t.Fatalf("ExtractObjects() = %v", err)
	}
	if len(objects) != 0 {
		t.Errorf("objects = %+v; expected none", objects)
	}
}

func TestDedup(t *testing.T) {
	objects := []ObjectRef{
		{Name: "Boat"},
		{Name: "boats"},
		{Name: "House"},
		{Name: "BOAT"},
	}
	out := Dedup(objects)
	if len(out) != 2 {
		t.Fatalf("deduped = %+v; expected 2", out)
	}
	if out[0].Name != "Boat" || out[1].Name != "House" {
		t.Errorf("deduped = %+v; expected first occurrences kept in order", out)
	}
}

func TestDedupDropsEmpty(t *testing.T) {
	out := Dedup([]ObjectRef{{Name: "  "}, {Name: "", Category: "boat"}})
	if len(out) != 1 || out[0].Category != "boat" {
		t.Errorf("deduped = %+v; expected category fallback only", out)
	}
}
