package handlers

import "testing"

func TestEstimateCaloriesBurned(t *testing.T) {
	cases := []struct {
		name      string
		duration  int
		intensity string
		weight    float64
		want      int
	}{
		{"moderate at reference weight", 30, "moderate", 70, 150},
		{"low at reference weight", 30, "low", 70, 90},
		{"high at reference weight", 30, "high", 70, 240},
		{"heavier burns more", 30, "moderate", 105, 225},
		{"lighter burns less", 30, "moderate", 35, 75},
		{"unknown intensity falls back to moderate", 30, "extreme", 70, 150},
		{"missing weight falls back to reference", 30, "moderate", 0, 150},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := estimateCaloriesBurned(tc.duration, tc.intensity, tc.weight); got != tc.want {
				t.Fatalf("estimateCaloriesBurned(%d, %q, %v) = %d, want %d",
					tc.duration, tc.intensity, tc.weight, got, tc.want)
			}
		})
	}
}

func TestParseDayQuery(t *testing.T) {
	day, err := parseDayQuery("2025-03-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if day.Year() != 2025 || day.Month() != 3 || day.Day() != 10 {
		t.Fatalf("unexpected day: %v", day)
	}
	if day.Hour() != 0 || day.Location().String() != "UTC" {
		t.Fatalf("expected midnight UTC, got %v", day)
	}

	if _, err := parseDayQuery("10/03/2025"); err == nil {
		t.Fatal("expected error for bad format")
	}

	today, err := parseDayQuery("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if today.Hour() != 0 || today.Minute() != 0 {
		t.Fatalf("expected start of day, got %v", today)
	}
}
