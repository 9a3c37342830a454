package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDocumentJSONRoundTrip(t *testing.T) {
	d := Document{
		Elements: []Element{
			{ID: "a1", Kind: KindHeading, Content: "Hi", Style: DefaultStyle(KindHeading), Position: Position{X: 10, Y: 10}, Size: DefaultSize(KindHeading), Visible: true},
		},
		SelectedElementID: "a1",
	}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Document
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.Equal(d) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, d)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := Document{Elements: []Element{{ID: "x", Kind: KindButton, Style: Style{StyleColor: "red"}}}}
	c := d.Clone()
	c.Elements[0].Style[StyleColor] = "blue"
	c.Elements[0].Content = "changed"
	if d.Elements[0].Style[StyleColor] != "red" || d.Elements[0].Content != "" {
		t.Fatalf("clone shares memory with source: %+v", d.Elements[0])
	}
	if d.Equal(c) {
		t.Fatalf("expected documents to differ after editing the clone")
	}
}

func TestFindAndSelected(t *testing.T) {
	d := Document{Elements: []Element{{ID: "a"}, {ID: "b"}}, SelectedElementID: "b"}
	if i := d.Index("b"); i != 1 {
		t.Fatalf("Index(b) = %d", i)
	}
	if d.Has("") || d.Has("zz") {
		t.Fatalf("Has should be false for empty and unknown ids")
	}
	sel, ok := d.Selected()
	if !ok || sel.ID != "b" {
		t.Fatalf("Selected = %+v, %v", sel, ok)
	}
	if _, ok := EmptyDocument().Selected(); ok {
		t.Fatalf("empty document has no selection")
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"heading":   KindHeading,
		" Button ":  KindButton,
		"text":      KindParagraph,
		"paragraph": KindParagraph,
		"DIVIDER":   KindDivider,
	}
	for in, want := range cases {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseKind("carousel"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if len(Kinds()) != 6 {
		t.Fatalf("expected six kinds, got %d", len(Kinds()))
	}
}

func TestKindHasContent(t *testing.T) {
	if KindContainer.HasContent() || KindDivider.HasContent() {
		t.Fatalf("container/divider ignore content")
	}
	if !KindImage.HasContent() || !KindHeading.HasContent() {
		t.Fatalf("image/heading carry content")
	}
}

func TestDefaultsAreCopies(t *testing.T) {
	for _, k := range Kinds() {
		s := DefaultStyle(k)
		s[StyleColor] = "hotpink"
		if DefaultStyle(k)[StyleColor] == "hotpink" {
			t.Fatalf("DefaultStyle(%s) returned shared map", k)
		}
		for key, v := range DefaultStyle(k) {
			if err := ValidateStyleValue(key, v); err != nil {
				t.Fatalf("default style for %s is invalid: %v", k, err)
			}
		}
	}
	if DefaultContent(KindHeading) == "" {
		t.Fatalf("heading should have default content")
	}
	if DefaultContent(KindContainer) != "" {
		t.Fatalf("container should have no default content")
	}
}
