package hyper

import "testing"

func TestMarkMap(t *testing.T) {
	marks := []InlineMark{
		{Kind: MarkPair, Start: Range{0, 2}, End: Range{5, 7}},
		{Kind: SingleMark, Start: Range{8, 12}},
		{Kind: MarkPairWithCode, Start: Range{13, 14}, End: Range{17, 18}},
		{Kind: KindNone, Start: Range{20, 21}},
	}
	m := MarkMap(marks)
	if len(m) != 5 {
		t.Fatalf("len = %d, want 5", len(m))
	}
	if e := m[0]; e.Mark != &marks[0] || e.IsEnd {
		t.Fatalf("start entry = %+v", e)
	}
	if e := m[5]; e.Mark != &marks[0] || !e.IsEnd {
		t.Fatalf("end entry = %+v", e)
	}
	if e := m[8]; e.Mark.Kind != SingleMark || e.Index != 1 {
		t.Fatalf("single entry = %+v", e)
	}
	if _, ok := m[20]; ok {
		t.Fatal("KindNone must not be indexed")
	}
}

func TestKind(t *testing.T) {
	if !MarkPair.Paired() || !MarkPairWithCode.Paired() || SingleMark.Paired() {
		t.Fatal("Paired mismatch")
	}
	if SingleMarkConnect.String() != "single-mark-connect" || KindNone.String() != "" {
		t.Fatal("String mismatch")
	}
	if None.Marks("**x**") != nil {
		t.Fatal("None must report nothing")
	}
}
