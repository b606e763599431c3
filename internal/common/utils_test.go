package common

import "testing"

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain filename", "report.pdf", "report.pdf"},
		{"strips directory", "/tmp/uploads/report.pdf", "report.pdf"},
		{"strips windows path", `C:\docs\report.pdf`, "report.pdf"},
		{"control chars become underscores", "re\x00port.pdf", "re_port.pdf"},
		{"whitespace trimmed", "  report.pdf  ", "report.pdf"},
		{"empty falls back", "", "document"},
		{"path only falls back", "/", "document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeIdentifier(tt.in); got != tt.want {
				t.Errorf("SanitizeIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUniqueIdentifier(t *testing.T) {
	used := make(map[string]int)

	if got := UniqueIdentifier("report.pdf", used); got != "report.pdf" {
		t.Errorf("first = %q, want report.pdf", got)
	}
	if got := UniqueIdentifier("report.pdf", used); got != "report.pdf (2)" {
		t.Errorf("second = %q, want report.pdf (2)", got)
	}
	if got := UniqueIdentifier("report.pdf", used); got != "report.pdf (3)" {
		t.Errorf("third = %q, want report.pdf (3)", got)
	}
	if got := UniqueIdentifier("other.pdf", used); got != "other.pdf" {
		t.Errorf("unrelated name = %q, want other.pdf", got)
	}
}

func TestUniqueIdentifierSkipsTakenSuffix(t *testing.T) {
	used := make(map[string]int)

	// A literal "report.pdf (2)" arrives before the duplicate does.
	UniqueIdentifier("report.pdf (2)", used)
	UniqueIdentifier("report.pdf", used)
	got := UniqueIdentifier("report.pdf", used)
	if got == "report.pdf (2)" {
		t.Errorf("duplicate reused an already assigned identifier: %q", got)
	}
}

func TestSheetCSVURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{
			name: "edit URL rewritten",
			in:   "https://docs.google.com/spreadsheets/d/abc123_-XYZ/edit#gid=0",
			want: "https://docs.google.com/spreadsheets/d/abc123_-XYZ/export?format=csv",
		},
		{
			name: "gid preserved",
			in:   "https://docs.google.com/spreadsheets/d/abc123/view?gid=42",
			want: "https://docs.google.com/spreadsheets/d/abc123/export?format=csv&gid=42",
		},
		{
			name: "export URL passes through",
			in:   "https://docs.google.com/spreadsheets/d/abc123/export?format=csv",
			want: "https://docs.google.com/spreadsheets/d/abc123/export?format=csv",
		},
		{
			name:    "not a sheet URL",
			in:      "https://example.com/data.csv",
			wantErr: true,
		},
		{
			name:    "non http scheme",
			in:      "ftp://docs.google.com/spreadsheets/d/abc123",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SheetCSVURL(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SheetCSVURL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("SheetCSVURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestContentHash(t *testing.T) {
	a := ContentHash([]byte("hello"))
	b := ContentHash([]byte("hello"))
	c := ContentHash([]byte("world"))
	if a != b {
		t.Error("same content produced different hashes")
	}
	if a == c {
		t.Error("different content produced the same hash")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
}
