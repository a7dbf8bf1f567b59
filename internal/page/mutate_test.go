package page

import (
	"reflect"
	"testing"
)

func seedBlocks() []Block {
	return []Block{
		{ID: "a", Type: TypeText, Data: map[string]any{"html": "<p>a</p>"}},
		{ID: "b", Type: TypeImage, Data: map[string]any{"src": "x.png", "alt": "x"}},
		{ID: "c", Type: TypeCTA, Data: map[string]any{"text": "Go", "href": "#"}},
	}
}

func ids(blocks []Block) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.ID
	}
	return out
}

func TestUpdateBlockDataMergesPatch(t *testing.T) {
	blocks := seedBlocks()
	blocks = UpdateBlockData(blocks, "b", map[string]any{"alt": "new", "caption": "cap"})

	got := blocks[1].Data
	if got["src"] != "x.png" {
		t.Errorf("untouched key lost: %v", got)
	}
	if got["alt"] != "new" || got["caption"] != "cap" {
		t.Errorf("patch not applied: %v", got)
	}
}

func TestUpdateBlockDataUnknownIDIsNoop(t *testing.T) {
	blocks := seedBlocks()
	before := ids(blocks)
	blocks = UpdateBlockData(blocks, "zzz", map[string]any{"x": 1})
	if !reflect.DeepEqual(ids(blocks), before) {
		t.Fatal("order changed")
	}
	for _, b := range blocks {
		if _, ok := b.Data["x"]; ok {
			t.Fatal("patch leaked into unrelated block")
		}
	}
}

func TestUpdateBlockStyleMergesFields(t *testing.T) {
	blocks := []Block{
		{ID: "a", Type: TypeText, Style: &Style{BgColor: "bg-white", TextColor: "text-gray-900", Padding: "py-12", Alignment: "center"}},
	}
	blocks = UpdateBlockStyle(blocks, "a", Style{BgColor: "bg-gray-50"})

	st := blocks[0].Style
	if st.BgColor != "bg-gray-50" {
		t.Errorf("bgColor not updated: %+v", st)
	}
	if st.TextColor != "text-gray-900" || st.Padding != "py-12" || st.Alignment != "center" {
		t.Errorf("other fields clobbered: %+v", st)
	}
}

func TestUpdateBlockStyleNilStyle(t *testing.T) {
	blocks := []Block{{ID: "a", Type: TypeText}}
	blocks = UpdateBlockStyle(blocks, "a", Style{Padding: "py-20"})
	if blocks[0].Style == nil || blocks[0].Style.Padding != "py-20" {
		t.Fatalf("style not created: %+v", blocks[0].Style)
	}
}

func TestMoveBlockDown(t *testing.T) {
	blocks := MoveBlock(seedBlocks(), 0, +1)
	if got := ids(blocks); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Fatalf("got %v", got)
	}
}

func TestMoveBlockUp(t *testing.T) {
	blocks := MoveBlock(seedBlocks(), 2, -1)
	if got := ids(blocks); !reflect.DeepEqual(got, []string{"a", "c", "b"}) {
		t.Fatalf("got %v", got)
	}
}

func TestMoveBlockOutOfRangeIsNoop(t *testing.T) {
	cases := []struct{ index, dir int }{
		{0, -1},
		{2, +1},
		{-1, +1},
		{3, -1},
	}
	for _, c := range cases {
		blocks := MoveBlock(seedBlocks(), c.index, c.dir)
		if got := ids(blocks); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
			t.Errorf("move(%d,%d) changed order: %v", c.index, c.dir, got)
		}
	}
}

func TestRemoveBlock(t *testing.T) {
	blocks := RemoveBlock(seedBlocks(), "b")
	if got := ids(blocks); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("got %v", got)
	}
	blocks = RemoveBlock(blocks, "missing")
	if len(blocks) != 2 {
		t.Fatalf("unknown id removed something: %v", ids(blocks))
	}
}
