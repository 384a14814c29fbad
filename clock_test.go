package parser

import "testing"

func mustClock(t *testing.T, s string) Clock {
	t.Helper()
	c, err := ParseClock(s)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestParseClock(t *testing.T) {
	c := mustClock(t, "01:02:03")
	if c.Hour != 1 || c.Minute != 2 || c.Second != 3 || !c.Valid {
		t.Fatalf("Unexpected clock %+v", c)
	}
	if c.String() != "01:02:03" {
		t.Fatalf("Expected '01:02:03' but got '%s'", c.String())
	}

	for _, s := range []string{"", "1:02:03", "24:00:00", "12:60:00", "12:00:61", "12:00:00 ", "x12:00:00"} {
		if _, err := ParseClock(s); err == nil {
			t.Errorf("Expected an error for '%s'", s)
		}
	}
}

func TestElapsed(t *testing.T) {
	tests := map[string]struct {
		start, end string
		expected   int
	}{
		"Ten seconds":             {"01:00:00", "01:00:10", 10},
		"Same instant":            {"13:14:15", "13:14:15", 0},
		"Before the offset hour":  {"00:59:50", "01:00:05", 15},
		"Across several hours":    {"08:30:00", "11:45:30", 3*3600 + 15*60 + 30},
		"Out of order":            {"01:00:10", "01:00:00", -10},
		"Midnight is unsupported": {"23:59:59", "00:00:01", -86398},
	}

	for testName, test := range tests {
		t.Run(testName, func(t *testing.T) {
			d, ok := Elapsed(mustClock(t, test.start), mustClock(t, test.end))
			if !ok || d != test.expected {
				t.Fatalf("Expected %d but got %d (%v)", test.expected, d, ok)
			}
		})
	}
}

func TestElapsed_Unset(t *testing.T) {
	if _, ok := Elapsed(Clock{}, mustClock(t, "01:00:00")); ok {
		t.Fatal("Expected no duration with an unset start")
	}
	if _, ok := Elapsed(mustClock(t, "01:00:00"), Clock{}); ok {
		t.Fatal("Expected no duration with an unset end")
	}
	if (Clock{}).String() != "" {
		t.Fatal("Expected an unset clock to render empty")
	}
}

func TestClockIn(t *testing.T) {
	c, err := clockIn("DEBUG   02-08 01:02:11       lift:   56 something at 03:04:05")
	if err != nil {
		t.Fatal(err)
	}
	if c.String() != "01:02:11" {
		t.Fatalf("Expected the first timestamp but got '%s'", c)
	}
	if _, err := clockIn("DEBUG   02-08 99:02:11"); err == nil {
		t.Fatal("Expected an error for an out of range timestamp")
	}
}
