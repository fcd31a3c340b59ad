package toon

import (
	"math"
	"strings"
	"testing"
)

// ============================================================
// Inline Arrays
// ============================================================

func TestEncodeArray_InlineRoot(t *testing.T) {
	got, err := Encode([]any{1, 2, 3})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got != "[3]: 1,2,3" {
		t.Errorf("got %q, want %q", got, "[3]: 1,2,3")
	}
}

func TestEncodeArray_InlineKeyed(t *testing.T) {
	got, err := Encode(map[string]any{"nums": []any{1, 2, 3}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got != "nums[3]: 1,2,3" {
		t.Errorf("got %q, want %q", got, "nums[3]: 1,2,3")
	}
}

func TestEncodeArray_MixedPrimitiveKinds(t *testing.T) {
	got, err := Encode([]any{1, "two", true, nil})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got != "[4]: 1,two,true,null" {
		t.Errorf("got %q, want %q", got, "[4]: 1,two,true,null")
	}
}

func TestEncodeArray_EmptyAtKey(t *testing.T) {
	got, err := Encode(map[string]any{"tags": []any{}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got != "tags[0]" {
		t.Errorf("got %q, want %q", got, "tags[0]")
	}
}

// ============================================================
// Tabular Arrays
// ============================================================

func TestEncodeArray_Tabular(t *testing.T) {
	got, err := Encode([]any{
		map[string]any{"a": 1, "b": 2},
		map[string]any{"a": 3, "b": 4},
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expected := "[2]{a,b}:\n  1,2\n  3,4"
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestEncodeArray_TabularKeyed(t *testing.T) {
	v := Object(F("users", Array(
		Object(F("id", Number(1)), F("name", String("alice"))),
		Object(F("id", Number(2)), F("name", String("bob"))),
	)))
	got, err := EncodeValue(v, DefaultEncodeOptions())
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}
	expected := "users[2]{id,name}:\n  1,alice\n  2,bob"
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestEncodeArray_TabularColumnsFollowFirstElement(t *testing.T) {
	v := Array(
		Object(F("b", Number(1)), F("a", Number(2))),
		Object(F("a", Number(3)), F("b", Number(4))),
	)
	got, err := EncodeValue(v, DefaultEncodeOptions())
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}
	// Column order comes from the first element, not a sort.
	expected := "[2]{b,a}:\n  1,2\n  4,3"
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestEncodeArray_TabularExtraKeysDropped(t *testing.T) {
	v := Array(
		Object(F("id", Number(1)), F("name", String("alice"))),
		Object(F("id", Number(2)), F("name", String("bob")), F("extra", Number(99))),
	)
	got, err := EncodeValue(v, DefaultEncodeOptions())
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}
	expected := "[2]{id,name}:\n  1,alice\n  2,bob"
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestEncodeArray_NaNFieldKeepsTabular(t *testing.T) {
	got, err := Encode([]any{
		map[string]any{"a": 1.0, "b": math.NaN()},
		map[string]any{"a": 3.0, "b": 4.0},
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expected := "[2]{a,b}:\n  1,null\n  3,4"
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestEncodeArray_NonPrimitiveValuesNotTabular(t *testing.T) {
	v := Array(
		Object(F("a", Object(F("x", Number(1))))),
		Object(F("a", Object(F("x", Number(2))))),
	)
	got, err := EncodeValue(v, DefaultEncodeOptions())
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}
	expected := strings.Join([]string{
		"[2]:",
		"  - a:",
		"      x: 1",
		"  - a:",
		"      x: 2",
	}, "\n")
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

// ============================================================
// Mixed-List Fallback
// ============================================================

func TestEncodeArray_NoCommonKeysFallsBackToList(t *testing.T) {
	v := Array(
		Object(F("a", Number(1))),
		Object(F("b", Number(2))),
	)
	got, err := EncodeValue(v, DefaultEncodeOptions())
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}
	expected := "[2]:\n  - a: 1\n  - b: 2"
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
	if strings.Contains(got, "{}") {
		t.Errorf("output contains an empty tabular header: %s", got)
	}
}

func TestEncodeArray_MixedKinds(t *testing.T) {
	got, err := Encode([]any{1, "two", []any{3, 4}, map[string]any{"a": 5}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expected := strings.Join([]string{
		"[4]:",
		"  - 1",
		"  - two",
		"  - [2]: 3,4",
		"  - a: 5",
	}, "\n")
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestEncodeArray_EmptyObjectItem(t *testing.T) {
	got, err := Encode([]any{map[string]any{}, 1})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expected := "[2]:\n  -\n  - 1"
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestEncodeArray_NestedArrayInsideMixedList(t *testing.T) {
	// An array-of-arrays inside a mixed array renders as a nested
	// list block instead of being dropped.
	got, err := Encode([]any{1, []any{[]any{2, 3}}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expected := strings.Join([]string{
		"[2]:",
		"  - 1",
		"  - [1]:",
		"      - [2]: 2,3",
	}, "\n")
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

// ============================================================
// Nested-List Arrays
// ============================================================

func TestEncodeArray_NestedLists(t *testing.T) {
	got, err := Encode([]any{[]any{1, 2}, []any{3}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expected := "[2]:\n  - [2]: 1,2\n  - [1]: 3"
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestEncodeArray_NestedListsWithEmpty(t *testing.T) {
	got, err := Encode([]any{[]any{1}, []any{}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	expected := "[2]:\n  - [1]: 1\n  - []"
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

// ============================================================
// List-Item Objects
// ============================================================

func TestListItem_FirstValuePrimitive(t *testing.T) {
	v := Array(Object(
		F("name", String("alice")),
		F("age", Number(30)),
		F("pet", Object(F("kind", String("cat")))),
	), Number(1))
	got, err := EncodeValue(v, DefaultEncodeOptions())
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}
	expected := strings.Join([]string{
		"[2]:",
		"  - name: alice",
		"    age: 30",
		"    pet:",
		"      kind: cat",
		"  - 1",
	}, "\n")
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestListItem_FirstValueTabular(t *testing.T) {
	v := Array(Object(
		F("rows", Array(
			Object(F("a", Number(1)), F("b", Number(2))),
			Object(F("a", Number(3)), F("b", Number(4))),
		)),
		F("total", Number(2)),
	), Number(9))
	got, err := EncodeValue(v, DefaultEncodeOptions())
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}
	expected := strings.Join([]string{
		"[2]:",
		"  - rows[2]{a,b}:",
		"      1,2",
		"      3,4",
		"    total: 2",
		"  - 9",
	}, "\n")
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestListItem_FirstValueArrays(t *testing.T) {
	v := Array(
		Object(F("tags", Array(String("x"), String("y"))), F("n", Number(1))),
		Object(F("tags", Array()), F("n", Number(2))),
	)
	// Same keys but "tags" is non-primitive, so no tabular format.
	got, err := EncodeValue(v, DefaultEncodeOptions())
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}
	expected := strings.Join([]string{
		"[2]:",
		"  - tags[2]: x,y",
		"    n: 1",
		"  - tags[0]",
		"    n: 2",
	}, "\n")
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestListItem_FirstValueObject(t *testing.T) {
	v := Array(Object(
		F("meta", Object(F("v", Number(1)))),
		F("done", Bool(true)),
	))
	got, err := EncodeValue(v, DefaultEncodeOptions())
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}
	expected := strings.Join([]string{
		"[1]:",
		"  - meta:",
		"      v: 1",
		"    done: true",
	}, "\n")
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

func TestListItem_FirstValueNonTabularArray(t *testing.T) {
	v := Array(Object(
		F("items", Array(Object(F("a", Number(1))), Object(F("b", Number(2))))),
	))
	got, err := EncodeValue(v, DefaultEncodeOptions())
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}
	expected := strings.Join([]string{
		"[1]:",
		"  - items[2]:",
		"      - a: 1",
		"      - b: 2",
	}, "\n")
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}

// ============================================================
// Delimiters
// ============================================================

func TestEncodeArray_PipeDelimiter(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.Delimiter = DelimPipe
	got, err := EncodeWithOptions([]any{"a,b", "c"}, opts)
	if err != nil {
		t.Fatalf("EncodeWithOptions failed: %v", err)
	}
	// The comma needs no quoting because | is the active delimiter.
	if got != "[2|]: a,b|c" {
		t.Errorf("got %q, want %q", got, "[2|]: a,b|c")
	}
}

func TestEncodeArray_CommaRequiresQuotingByDefault(t *testing.T) {
	got, err := Encode([]any{"a,b", "c"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if got != `[2]: "a,b",c` {
		t.Errorf("got %q, want %q", got, `[2]: "a,b",c`)
	}
}

func TestEncodeArray_TabDelimiter(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.Delimiter = DelimTab
	got, err := EncodeWithOptions([]any{"a", "b"}, opts)
	if err != nil {
		t.Fatalf("EncodeWithOptions failed: %v", err)
	}
	if got != "[2\t]: a\tb" {
		t.Errorf("got %q, want %q", got, "[2\t]: a\tb")
	}
}

func TestEncodeArray_PipeDelimiterTabular(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.Delimiter = DelimPipe
	v := Array(
		Object(F("a", Number(1)), F("b", String("x|y"))),
		Object(F("a", Number(2)), F("b", String("z"))),
	)
	got, err := EncodeValue(v, opts)
	if err != nil {
		t.Fatalf("EncodeValue failed: %v", err)
	}
	expected := "[2|]{a|b}:\n  1|\"x|y\"\n  2|z"
	if got != expected {
		t.Errorf("got:\n%s\nwant:\n%s", got, expected)
	}
}
