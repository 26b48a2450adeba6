package mediatypes

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want MediaType
	}{
		{name: "JPEG image", id: "a.jpg", want: Image},
		{name: "uppercase suffix", id: "A.JPEG", want: Image},
		{name: "PNG under relative id", id: "/photos/b.png", want: Image},
		{name: "GIF under absolute id", id: "/srv/photos/c.gif", want: Image},
		{name: "BMP classifies but is not selectable", id: "d.bmp", want: Image},
		{name: "MP4 video", id: "clip.mp4", want: MP4Video},
		{name: "MPG4 video", id: "clip.mpg4", want: MP4Video},
		{name: "M4V video", id: "clip.m4v", want: MP4Video},
		{name: "Flash video", id: "clip.flv", want: FlashVideo},
		{name: "Ogg video", id: "clip.ogv", want: OGVVideo},
		{name: "Ogg container", id: "clip.ogg", want: OGVVideo},
		{name: "Matroska is other", id: "clip.mkv", want: Other},
		{name: "no extension", id: "README", want: Other},
		{name: "dot in directory only", id: "dir.jpg/README", want: Other},
		{name: "windows separators", id: `C:\media\e.png`, want: Image},
		{name: "empty", id: "", want: Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.id); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestClassifyFollowsRename(t *testing.T) {
	// Type is derived from the identifier alone, so a rename changes it.
	if Classify("clip.mp4") == Classify("clip.png") {
		t.Fatal("renaming the suffix should change the classification")
	}
}

func TestMimeType(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"a.jpg", "image/jpeg"},
		{"a.PNG", "image/png"},
		{"a.mp4", "video/mp4"},
		{"a.flv", "video/x-flv"},
		{"a.ogv", "video/ogg"},
		{"a.unknown", "application/octet-stream"},
		{"", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := MimeType(tt.id); got != tt.want {
				t.Errorf("MimeType(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestSuffixesClassifyAsTheirType(t *testing.T) {
	for mt, suffixes := range Suffixes {
		for _, s := range suffixes {
			if got := Classify("file." + s); got != mt {
				t.Errorf("Classify(file.%s) = %v, want %v", s, got, mt)
			}
		}
	}
}

func TestParseMediaType(t *testing.T) {
	tests := []struct {
		in      string
		want    MediaType
		wantErr bool
	}{
		{in: "image", want: Image},
		{in: "IMAGE", want: Image},
		{in: "mp4", want: MP4Video},
		{in: "mp4_video", want: MP4Video},
		{in: "flv", want: FlashVideo},
		{in: "ogv", want: OGVVideo},
		{in: " other ", want: Other},
		{in: "video", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMediaType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMediaType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMediaType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMediaTypeText(t *testing.T) {
	for _, mt := range append([]MediaType{Other}, Listable...) {
		b, err := mt.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", mt, err)
		}
		var back MediaType
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", b, err)
		}
		if back != mt {
			t.Errorf("text round trip of %v gave %v", mt, back)
		}
	}

	if got := MediaType(42).String(); got != "unknown(42)" {
		t.Errorf("MediaType(42).String() = %q", got)
	}
}
