package container

import "testing"

func TestReadUintBase128(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		want     uint32
		consumed int
		wantErr  bool
	}{
		{"zero", []byte{0x00}, 0, 1, false},
		{"single byte max", []byte{0x7F}, 127, 1, false},
		{"two bytes", []byte{0x81, 0x00}, 128, 2, false},
		{"reject leading 0x80", []byte{0x80, 0x00}, 0, 0, true},
		{"truncated", []byte{0x81}, 0, 0, true},
		{"five byte max length", []byte{0x81, 0x80, 0x80, 0x80, 0x00}, 1 << 28, 5, false},
		{"overflow at sixth byte", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, 0, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, n, err := readUintBase128(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("readUintBase128(%v) = %d, %d, nil; want error", tc.in, got, n)
				}
				return
			}
			if err != nil {
				t.Fatalf("readUintBase128(%v) unexpected error: %v", tc.in, err)
			}
			if got != tc.want || n != tc.consumed {
				t.Errorf("readUintBase128(%v) = %d, %d; want %d, %d", tc.in, got, n, tc.want, tc.consumed)
			}
		})
	}
}

func TestRead255UInt16(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		want     uint16
		consumed int
		wantErr  bool
	}{
		{"direct low", []byte{0}, 0, 1, false},
		{"direct high", []byte{252}, 252, 1, false},
		{"word code 253", []byte{253, 0x01, 0x00}, 256, 3, false},
		{"one more byte code 255", []byte{255, 0}, 253, 2, false},
		{"one more byte code 255 max", []byte{255, 255}, 253 + 255, 2, false},
		{"one more byte code 254", []byte{254, 0}, 253 * 2, 2, false},
		{"truncated code 253", []byte{253, 1}, 0, 0, true},
		{"truncated code 255", []byte{255}, 0, 0, true},
		{"empty", []byte{}, 0, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, n, err := read255UInt16(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("read255UInt16(%v) = %d, %d, nil; want error", tc.in, got, n)
				}
				return
			}
			if err != nil {
				t.Fatalf("read255UInt16(%v) unexpected error: %v", tc.in, err)
			}
			if got != tc.want || n != tc.consumed {
				t.Errorf("read255UInt16(%v) = %d, %d; want %d, %d", tc.in, got, n, tc.want, tc.consumed)
			}
		})
	}
}
