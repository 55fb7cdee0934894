package metadata

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip(err)
	}

	tests := map[string]struct {
		value interface{}
		want  time.Time
	}{
		"date string": {
			value: "2020-01-02",
			want:  time.Date(2020, 1, 2, 0, 0, 0, 0, loc),
		},
		"underscore separator": {
			value: " 2020-01-02_10:30 ",
			want:  time.Date(2020, 1, 2, 10, 30, 0, 0, loc),
		},
		"explicit offset": {
			value: "2020-01-02T10:30:00Z",
			want:  time.Date(2020, 1, 2, 10, 30, 0, 0, time.UTC),
		},
		"time value": {
			value: time.Date(2019, 5, 6, 7, 8, 9, 0, time.UTC),
			want:  time.Date(2019, 5, 6, 7, 8, 9, 0, time.UTC),
		},
	}
	for label, test := range tests {
		t.Run(label, func(t *testing.T) {
			got, err := ParseDate(test.value, loc)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(test.want) {
				t.Errorf("got %v, want %v", got, test.want)
			}
		})
	}

	t.Run("local TOML date", func(t *testing.T) {
		raw, err := ParseTOML("date = 2021-03-04T05:06:07\n")
		if err != nil {
			t.Fatal(err)
		}
		got, err := ParseDate(raw["date"], loc)
		if err != nil {
			t.Fatal(err)
		}
		if want := time.Date(2021, 3, 4, 5, 6, 7, 0, loc); !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := ParseDate("not a date", loc); err == nil {
			t.Error("got no error, want not nil err")
		}
	})
}
