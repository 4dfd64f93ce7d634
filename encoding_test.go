package jsonsax

import "testing"

func utf16LE(s string) []byte {
	var out []byte
	for _, r := range s {
		raw, n := encodeCharacter(uint32(r), encodingUTF16LE)
		out = append(out, raw[:n]...)
	}
	return out
}

func utf16BE(s string) []byte {
	var out []byte
	for _, r := range s {
		raw, n := encodeCharacter(uint32(r), encodingUTF16BE)
		out = append(out, raw[:n]...)
	}
	return out
}

func TestBOMSniffingUTF8(t *testing.T) {
	doc := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"a":1}`)...)
	got := runToCompletion(t, doc)
	if len(got) != 4 {
		t.Fatalf("expected 4 events got %d: %+v", len(got), got)
	}
	if got[2].integer != 1 {
		t.Errorf("expected value 1 got %+v", got[2])
	}
}

func TestBOMSniffingUTF16LE(t *testing.T) {
	doc := append([]byte{0xFF, 0xFE}, utf16LE(`{"a":1}`)...)
	got := runToCompletion(t, doc)
	// Names and string values stay in the document's encoding.
	want := []observedEvent{
		{code: ObjectBegin},
		{code: Name, hasName: true, name: "a\x00"},
		{code: Value, hasName: true, name: "a\x00", valueType: TypeInteger, integer: 1},
		{code: ObjectEnd},
	}
	expectEvents(t, got, want)
}

func TestBOMSniffingUTF16BE(t *testing.T) {
	doc := append([]byte{0xFE, 0xFF}, utf16BE(`{"a":1}`)...)
	got := runToCompletion(t, doc)
	want := []observedEvent{
		{code: ObjectBegin},
		{code: Name, hasName: true, name: "\x00a"},
		{code: Value, hasName: true, name: "\x00a", valueType: TypeInteger, integer: 1},
		{code: ObjectEnd},
	}
	expectEvents(t, got, want)
}

func TestUTF16SurrogatePairInStream(t *testing.T) {
	doc := append([]byte{0xFF, 0xFE}, utf16LE(`["😀"]`)...)
	got := runToCompletion(t, doc)
	want := []observedEvent{
		{code: ArrayBegin},
		// U+1F600 as the UTF-16LE pair D83D DE00.
		{code: Value, valueType: TypeString, str: "\x3d\xd8\x00\xde"},
		{code: ArrayEnd},
	}
	expectEvents(t, got, want)
}

func TestNoBOMDefaultsToUTF8(t *testing.T) {
	got := runToCompletion(t, []byte(`{"café":true}`))
	want := []observedEvent{
		{code: ObjectBegin},
		{code: Name, hasName: true, name: "café"},
		{code: Value, hasName: true, name: "café", valueType: TypeBoolean, boolean: true},
		{code: ObjectEnd},
	}
	expectEvents(t, got, want)
}
