package position

import (
	"errors"
	"testing"
)

func TestNewPosFromNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		notation string
		want     Pos
		wantErr  error
	}{
		{
			name:     "ok 1",
			notation: "e4",
			want:     NewPos(4, 4),
			wantErr:  nil,
		},
		{
			name:     "ok 2",
			notation: "h8",
			want:     Pos(7),
			wantErr:  nil,
		},
		{
			name:     "ok 3",
			notation: "a1",
			want:     Pos(56),
			wantErr:  nil,
		},
		{
			name:     "ok 4",
			notation: "e2",
			want:     E2,
			wantErr:  nil,
		},
		{
			name:     "bad 1",
			notation: "",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 2",
			notation: "a",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 3",
			notation: "4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 4",
			notation: "m4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 5",
			notation: "e9",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 6",
			notation: "e0",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 7",
			notation: "E4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 8",
			notation: "e44",
			wantErr:  ErrInvalidNotation,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewPosFromNotation(tt.notation)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestNotationRoundTrip(t *testing.T) {
	t.Parallel()
	for p := Pos(0); p < MaxComponentScalar*MaxComponentScalar; p++ {
		got, err := NewPosFromNotation(p.Notation())
		if err != nil {
			t.Fatalf("unexpected error for %d: %v", p, err)
		}
		if got != p {
			t.Errorf("unexpected round trip: got=%d want=%d", got, p)
		}
	}
}

func TestOffset(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		from       Pos
		dRow, dCol Pos
		want       Pos
		wantOK     bool
	}{
		{name: "forward white pawn", from: E2, dRow: -1, want: E3, wantOK: true},
		{name: "knight jump", from: G1, dRow: -2, dCol: -1, want: F3, wantOK: true},
		{name: "off left edge", from: A4, dCol: -1, want: NullPos, wantOK: false},
		{name: "off top edge", from: C8, dRow: -1, want: NullPos, wantOK: false},
		{name: "off bottom edge", from: H1, dRow: 1, dCol: -1, want: NullPos, wantOK: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tt.from.Offset(tt.dRow, tt.dCol)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("unexpected offset: got=(%v,%v) want=(%v,%v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestIsLight(t *testing.T) {
	t.Parallel()
	for _, p := range []Pos{A8, H1, C6, D1} {
		if !p.IsLight() {
			t.Errorf("%s should be light", p)
		}
	}
	for _, p := range []Pos{A1, H8, C1, E1} {
		if p.IsLight() {
			t.Errorf("%s should be dark", p)
		}
	}
}
