package markup_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-compositor/pkg/markup"
)

func TestDecode_InterchangeObject(t *testing.T) {
	payload := []byte(`{
		"tag": "div",
		"className": "text_pad error",
		"onload": "ignored()",
		"selected": 0,
		"checked": "yes",
		"childElements": [
			{"tag": "span", "innerText": "<x>"},
			"tail",
			3.5,
			null,
			[{"tag": "br"}]
		]
	}`)

	nodes, err := markup.Decode(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := markup.Compose(nodes...)
	want := `<div checked class="text&#95;pad&#32;error"><span>&#60;x&#62;</span>tail3&#46;5null<br></div>`
	if got != want {
		t.Fatalf("compose mismatch:\n got: %s\nwant: %s", got, want)
	}
}

func TestDecode_ContentPrecedence(t *testing.T) {
	nodes, err := markup.Decode([]byte(`{"tag":"p","childElements":[{"tag":"b"}],"innerText":"t","innerHTML":"<em>r</em>"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := markup.Compose(nodes...); got != "<p><em>r</em></p>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestDecode_Sequence(t *testing.T) {
	nodes, err := markup.Decode([]byte(`[{"tag":"p","innerText":1}, "x"]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}
	if got := markup.Compose(nodes...); got != "<p>1</p>\nx" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestDecode_MissingTag(t *testing.T) {
	_, err := markup.Decode([]byte(`{"innerText":"orphan"}`))
	if !errors.Is(err, markup.ErrMissingTag) {
		t.Fatalf("expected ErrMissingTag, got %v", err)
	}
}

func TestDecode_InvalidJSON(t *testing.T) {
	if _, err := markup.Decode([]byte(`{"tag":`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestEncode_RoundTripComposesIdentically(t *testing.T) {
	node := markup.El("select", markup.Name("status"), markup.Children(
		markup.El("option", markup.Value("open"), markup.InnerText("open")),
		markup.El("option", markup.Value("closed"), markup.Selected(true), markup.InnerText("closed")),
	))

	data, err := markup.Encode(node)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	var decoded markup.Node
	if err := decoded.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.String() != node.String() {
		t.Fatalf("round trip changed output:\n got: %s\nwant: %s", decoded.String(), node.String())
	}
}
