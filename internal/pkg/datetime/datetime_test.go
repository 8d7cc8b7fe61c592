package datetime

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := map[string]bool{
		"2001-09-11T08:46:00Z":      true,
		"2001-09-11T08:46:00+02:00": true,
		"2001-09-11T08:46":          true,
		"2001-09-11":                true,
		"2001-09":                   true,
		"2001":                      true,
		"11/09/2001":                false,
		"":                          false,
	}
	for in, ok := range cases {
		if _, err := Parse(in); (err == nil) != ok {
			t.Errorf("Parse(%q): expected ok=%v, got err=%v", in, ok, err)
		}
	}

	got, _ := Parse("2001-09-11T10:46:00+02:00")
	if !got.Equal(time.Date(2001, 9, 11, 8, 46, 0, 0, time.UTC)) || got.Location() != time.UTC {
		t.Errorf("expected UTC normalization, got %v", got)
	}
}

func TestParsePtr(t *testing.T) {
	if v, err := ParsePtr(nil); v != nil || err != nil {
		t.Errorf("nil: got %v %v", v, err)
	}
	blank := "  "
	if v, err := ParsePtr(&blank); v != nil || err != nil {
		t.Errorf("blank: got %v %v", v, err)
	}
	bad := "soon"
	if _, err := ParsePtr(&bad); err == nil {
		t.Error("expected error for bad date")
	}
}
