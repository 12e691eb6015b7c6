// SPDX-License-Identifier: EPL-2.0

package wav

import "testing"

func TestByteOrder_Decode(t *testing.T) {
	t.Parallel()

	b := []byte{0x01, 0x80, 0xff, 0x7f}

	if got := Uint16LE(b); got != 0x8001 {
		t.Errorf("Uint16LE() = %#x, want 0x8001", got)
	}
	if got := Int16LE(b); got != -32767 {
		t.Errorf("Int16LE() = %d, want -32767", got)
	}
	if got := Uint32LE(b); got != 0x7fff8001 {
		t.Errorf("Uint32LE() = %#x, want 0x7fff8001", got)
	}
	if got := Int32LE([]byte{0xff, 0xff, 0xff, 0xff}); got != -1 {
		t.Errorf("Int32LE() = %d, want -1", got)
	}
}

func TestByteOrder_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		put  func([]byte)
		want []byte
	}{
		{"PutUint16LE", func(b []byte) { PutUint16LE(b, 0x1234) }, []byte{0x34, 0x12, 0, 0}},
		{"PutUint32LE", func(b []byte) { PutUint32LE(b, 0x01020304) }, []byte{0x04, 0x03, 0x02, 0x01}},
		{"PutInt16LE min", func(b []byte) { PutInt16LE(b, -32768) }, []byte{0x00, 0x80, 0, 0}},
		{"PutInt16LE -1", func(b []byte) { PutInt16LE(b, -1) }, []byte{0xff, 0xff, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := make([]byte, 4)
			tt.put(b)
			for i := range b {
				if b[i] != tt.want[i] {
					t.Fatalf("bytes = % x, want % x", b, tt.want)
				}
			}
		})
	}
}

func TestByteOrder_Int16RoundTrip(t *testing.T) {
	t.Parallel()

	b := make([]byte, 2)
	for _, v := range []int16{-32768, -1, 0, 1, 0x1234, 32767} {
		PutInt16LE(b, v)
		if got := Int16LE(b); got != v {
			t.Errorf("Int16LE(PutInt16LE(%d)) = %d", v, got)
		}
	}
}
