package behavior

import "testing"

func TestCanTake(t *testing.T) {
	cases := map[Consumption]bool{
		DirectView:      false,
		DirectClone:     false,
		StreamView:      false,
		StreamTake:      true,
		StreamTakeClone: true,
		StreamDrop:      false,
	}
	for c, want := range cases {
		if got := c.CanTake(); got != want {
			t.Errorf("%s.CanTake() = %v, want %v", c, got, want)
		}
	}
}

func TestAllocateAlways(t *testing.T) {
	cases := map[Consumption]bool{
		DirectView:      false,
		DirectClone:     true,
		StreamView:      false,
		StreamTake:      false,
		StreamTakeClone: true,
		StreamDrop:      false,
	}
	for c, want := range cases {
		if got := c.AllocateAlways(); got != want {
			t.Errorf("%s.AllocateAlways() = %v, want %v", c, got, want)
		}
	}
}

func TestDiscards(t *testing.T) {
	if !StreamDrop.Discards() {
		t.Error("StreamDrop should discard")
	}
	if StreamTake.Discards() {
		t.Error("StreamTake should not discard")
	}
}

func TestAsView(t *testing.T) {
	cases := map[Consumption]Consumption{
		DirectView:      DirectView,
		DirectClone:     DirectView,
		StreamView:      StreamView,
		StreamTake:      StreamView,
		StreamTakeClone: StreamView,
		StreamDrop:      StreamView,
	}
	for c, want := range cases {
		if got := c.AsView(); got != want {
			t.Errorf("%s.AsView() = %s, want %s", c, got, want)
		}
	}
}
