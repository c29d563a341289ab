// Copyright 2024 The goandroid authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "testing"

func TestCursorULEB128(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want uint32
	}{
		{"single byte", []byte{0x00}, 0},
		{"single byte max", []byte{0x7f}, 0x7f},
		{"two bytes", []byte{0x80, 0x01}, 0x80},
		{"three bytes", []byte{0x80, 0x80, 0x01}, 0x4000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.in)
			got, err := c.ParseULEB128()
			if err != nil {
				t.Fatalf("ParseULEB128() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseULEB128() = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestCursorULEB128Overflow(t *testing.T) {
	c := NewCursor([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80})
	if _, err := c.ParseULEB128(); err != ErrULEB128Overflow {
		t.Errorf("ParseULEB128() error = %v, want ErrULEB128Overflow", err)
	}
}

func TestCursorTakeOutOfBounds(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02})
	if _, err := c.Take(3); err != ErrOutsideBoundary {
		t.Errorf("Take() error = %v, want ErrOutsideBoundary", err)
	}
}

func TestCursorTakeUntil(t *testing.T) {
	c := NewCursor([]byte{'h', 'i', 0x00, 'x'})
	got, err := c.TakeUntil(0x00)
	if err != nil {
		t.Fatalf("TakeUntil() error: %v", err)
	}
	if string(got) != "hi" {
		t.Errorf("TakeUntil() = %q, want %q", got, "hi")
	}
	if c.Position() != 2 {
		t.Errorf("Position() = %d, want 2 (cursor stops on the delimiter)", c.Position())
	}
}

func TestCursorWithSavedPosition(t *testing.T) {
	c := NewCursor([]byte{0xaa, 0xbb, 0xcc, 0xdd})
	c.Seek(1)
	err := c.withSavedPosition(3, func() error {
		b, err := c.Next()
		if err != nil {
			return err
		}
		if b != 0xdd {
			t.Errorf("inside withSavedPosition, read %#x, want 0xdd", b)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("withSavedPosition() error: %v", err)
	}
	if c.Position() != 1 {
		t.Errorf("Position() after withSavedPosition = %d, want 1 (restored)", c.Position())
	}
}
