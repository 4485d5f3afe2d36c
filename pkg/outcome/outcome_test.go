package outcome

import "testing"

func TestFailed(t *testing.T) {
	o := Failed[int]()
	if !o.IsFail() {
		t.Fatal("expected Fail")
	}
	if o.IsOk() || o.IsDiscard() {
		t.Fatal("Fail must not also report Ok or Discard")
	}
}

func TestDiscarded(t *testing.T) {
	o := Discarded[string](4)
	if !o.IsDiscard() {
		t.Fatal("expected Discard")
	}
	if o.State().Used != 4 {
		t.Fatalf("Used = %d, want 4", o.State().Used)
	}
}

func TestProduced(t *testing.T) {
	o := Produced(EvalState[[]byte]{Value: []byte("ab"), Used: 2, Owned: true})
	if !o.IsOk() {
		t.Fatal("expected Ok")
	}
	st := o.State()
	if string(st.Value) != "ab" || st.Used != 2 || !st.Owned {
		t.Fatalf("unexpected state: %+v", st)
	}
}
