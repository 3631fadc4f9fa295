package utils

import "testing"

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMimeRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "vcf"} {
		mime, ok := GetMimeFromFormat(format)
		if !ok {
			t.Fatalf("Format %s not recognised", format)
		}
		if ext := GetExtensionFromMime(mime); ext != format {
			t.Errorf("Expected extension %s for %s, got %s", format, mime, ext)
		}
	}
	if _, ok := GetMimeFromFormat("xml"); ok {
		t.Error("Expected xml to be rejected")
	}
	if ext := GetExtensionFromMime("application/x-unknown"); ext != "bin" {
		t.Errorf("Expected bin, got %s", ext)
	}
}

func TestNullString(t *testing.T) {
	if NullString("").Valid {
		t.Error("Empty string should be NULL")
	}
	if ns := NullString("x"); !ns.Valid || ns.String != "x" {
		t.Errorf("Expected valid x, got %+v", ns)
	}
}
