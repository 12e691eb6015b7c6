// SPDX-License-Identifier: EPL-2.0

package dca

import "testing"

func TestLayout_RemapIsBijection(t *testing.T) {
	t.Parallel()

	for c := ConfigMono; c < configCount; c++ {
		for _, lfe := range []bool{false, true} {
			l := Layout{Config: c, LFE: lfe}

			t.Run(l.String(), func(t *testing.T) {
				t.Parallel()

				remap := l.Remap()
				n := l.Channels()
				if len(remap) != n {
					t.Fatalf("len(Remap()) = %d, Channels() = %d", len(remap), n)
				}

				seen := make([]bool, n)
				for slot, src := range remap {
					if src < 0 || src >= n {
						t.Fatalf("slot %d reads channel %d, out of [0,%d)", slot, src, n)
					}
					if seen[src] {
						t.Fatalf("channel %d used twice in %v", src, remap)
					}
					seen[src] = true
				}
			})
		}
	}
}

func TestLayout_Channels(t *testing.T) {
	t.Parallel()

	base := map[ChannelConfig]int{
		ConfigMono:          1,
		ConfigDualMono:      2,
		ConfigStereo:        2,
		ConfigStereoSumDiff: 2,
		ConfigStereoTotal:   2,
		Config3F:            3,
		Config2F1R:          3,
		Config3F1R:          4,
		Config2F2R:          4,
		Config3F2R:          5,
		Config4F2R:          6,
	}

	for c, want := range base {
		if got := (Layout{Config: c}).Channels(); got != want {
			t.Errorf("%v: Channels() = %d, want %d", c, got, want)
		}
		if got := (Layout{Config: c, LFE: true}).Channels(); got != want+1 {
			t.Errorf("%v+LFE: Channels() = %d, want %d", c, got, want+1)
		}
	}
}

func TestLayout_Unknown(t *testing.T) {
	t.Parallel()

	for _, c := range []ChannelConfig{configCount, 12, 63} {
		for _, lfe := range []bool{false, true} {
			l := Layout{Config: c, LFE: lfe}
			if l.Channels() != 0 || l.Remap() != nil {
				t.Errorf("%v: Channels() = %d, want 0", l, l.Channels())
			}
		}
	}
}

func TestLayout_FiveOneOrder(t *testing.T) {
	t.Parallel()

	// core order C L R LS RS LFE, output order L R C LFE LS RS
	got := Layout{Config: Config3F2R, LFE: true}.Remap()
	want := []int{1, 2, 0, 5, 3, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Remap() = %v, want %v", got, want)
		}
	}
}

func TestLayoutOf(t *testing.T) {
	t.Parallel()

	l := LayoutOf(Flags(Config3F2R) | FlagLFE | FlagAdjustLevel)
	if l.Config != Config3F2R || !l.LFE {
		t.Errorf("LayoutOf() = %+v, want 3F2R with LFE", l)
	}
	if l.String() != "3F2R+LFE" {
		t.Errorf("String() = %q, want %q", l.String(), "3F2R+LFE")
	}
	if s := ChannelConfig(40).String(); s != "ChannelConfig(40)" {
		t.Errorf("String() = %q", s)
	}
}
