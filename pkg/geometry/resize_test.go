package geometry

import "testing"

func TestResizeInDirection(t *testing.T) {
	const containerWidth = 300

	tests := []struct {
		name      string
		handle    Handle
		current   Box
		candidate Box
		want      Box
	}{
		{
			name:      "east grows within container",
			handle:    HandleE,
			current:   Box{Left: 100, Top: 0, Width: 100, Height: 100},
			candidate: Box{Left: 100, Top: 0, Width: 150, Height: 100},
			want:      Box{Left: 100, Top: 0, Width: 150, Height: 100},
		},
		{
			name:      "east overflow keeps current width",
			handle:    HandleE,
			current:   Box{Left: 100, Top: 0, Width: 100, Height: 100},
			candidate: Box{Left: 100, Top: 0, Width: 250, Height: 100},
			want:      Box{Left: 100, Top: 0, Width: 100, Height: 100},
		},
		{
			name:      "west grows leftward keeping east edge",
			handle:    HandleW,
			current:   Box{Left: 100, Top: 0, Width: 100, Height: 100},
			candidate: Box{Left: 100, Top: 0, Width: 150, Height: 100},
			want:      Box{Left: 50, Top: 0, Width: 150, Height: 100},
		},
		{
			name:      "west at origin is clamped",
			handle:    HandleW,
			current:   Box{Left: 0, Top: 0, Width: 100, Height: 100},
			candidate: Box{Left: 0, Top: 0, Width: 150, Height: 100},
			want:      Box{Left: 0, Top: 0, Width: 100, Height: 100},
		},
		{
			name:      "west past origin pins to left edge",
			handle:    HandleW,
			current:   Box{Left: 50, Top: 0, Width: 100, Height: 100},
			candidate: Box{Left: 50, Top: 0, Width: 200, Height: 100},
			want:      Box{Left: 0, Top: 0, Width: 150, Height: 100},
		},
		{
			name:      "north grows upward keeping south edge",
			handle:    HandleN,
			current:   Box{Left: 0, Top: 100, Width: 100, Height: 100},
			candidate: Box{Left: 0, Top: 100, Width: 100, Height: 150},
			want:      Box{Left: 0, Top: 50, Width: 100, Height: 150},
		},
		{
			name:      "north past top is rejected",
			handle:    HandleN,
			current:   Box{Left: 0, Top: 0, Width: 100, Height: 100},
			candidate: Box{Left: 0, Top: 0, Width: 100, Height: 150},
			want:      Box{Left: 0, Top: 0, Width: 100, Height: 100},
		},
		{
			name:      "south is unbounded",
			handle:    HandleS,
			current:   Box{Left: 0, Top: 10, Width: 100, Height: 100},
			candidate: Box{Left: 0, Top: 10, Width: 100, Height: 5000},
			want:      Box{Left: 0, Top: 10, Width: 100, Height: 5000},
		},
		{
			name:      "south-east combines both axes",
			handle:    HandleSE,
			current:   Box{Left: 0, Top: 0, Width: 100, Height: 100},
			candidate: Box{Left: 0, Top: 0, Width: 120, Height: 140},
			want:      Box{Left: 0, Top: 0, Width: 120, Height: 140},
		},
		{
			name:      "north-west moves both origin edges",
			handle:    HandleNW,
			current:   Box{Left: 100, Top: 100, Width: 100, Height: 100},
			candidate: Box{Left: 100, Top: 100, Width: 130, Height: 120},
			want:      Box{Left: 70, Top: 80, Width: 130, Height: 120},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResizeInDirection(tt.handle, tt.current, tt.candidate, containerWidth)
			if got != tt.want {
				t.Errorf("ResizeInDirection() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseHandle(t *testing.T) {
	tests := []struct {
		in      string
		want    Handle
		wantErr bool
	}{
		{"", HandleSE, false},
		{"nw", HandleNW, false},
		{"s", HandleS, false},
		{"north", "", true},
		{"NE", "", true},
	}
	for _, tt := range tests {
		got, err := ParseHandle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHandle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHandle(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHandleAnchors(t *testing.T) {
	for _, h := range Handles {
		west := h == HandleW || h == HandleNW || h == HandleSW
		north := h == HandleN || h == HandleNE || h == HandleNW
		if h.MovesWest() != west {
			t.Errorf("%s.MovesWest() = %v, want %v", h, h.MovesWest(), west)
		}
		if h.MovesNorth() != north {
			t.Errorf("%s.MovesNorth() = %v, want %v", h, h.MovesNorth(), north)
		}
	}
}
