package services

import "testing"

func TestNewCatalogRejectsUnknownType(t *testing.T) {
	_, err := NewCatalog([]AchievementTemplate{
		{Type: "steps", Title: "Walker", Milestone: 10000},
	})
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestNewCatalogRejectsNonPositiveMilestone(t *testing.T) {
	_, err := NewCatalog([]AchievementTemplate{
		{Type: TypeStreak, Title: "Zero", Milestone: 0},
	})
	if err == nil {
		t.Fatal("expected error for zero milestone")
	}
}

func TestNewCatalogRejectsNegativePoints(t *testing.T) {
	_, err := NewCatalog([]AchievementTemplate{
		{Type: TypeStreak, Title: "Debt", Milestone: 7, Reward: Reward{Points: -1}},
	})
	if err == nil {
		t.Fatal("expected error for negative reward points")
	}
}

func TestNewCatalogRejectsDuplicateIdentity(t *testing.T) {
	_, err := NewCatalog([]AchievementTemplate{
		{Type: TypeStreak, Title: "A", Milestone: 7},
		{Type: TypeStreak, Title: "B", Milestone: 7},
	})
	if err == nil {
		t.Fatal("expected error for duplicate (type, milestone)")
	}
}

func TestNewCatalogAllowsSameMilestoneAcrossTypes(t *testing.T) {
	c, err := NewCatalog([]AchievementTemplate{
		{Type: TypeStreak, Title: "A", Milestone: 7},
		{Type: TypeWaterIntake, Title: "B", Milestone: 7},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 templates, got %d", c.Len())
	}
}

func TestDefaultCatalogShape(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() != 10 {
		t.Fatalf("expected 10 templates, got %d", c.Len())
	}

	byType := map[string]int{}
	for _, tmpl := range c.Templates() {
		byType[tmpl.Type]++
		if tmpl.Title == "" || tmpl.Icon == "" || tmpl.Reward.Badge == "" {
			t.Fatalf("incomplete template: %+v", tmpl)
		}
		if tmpl.Reward.Points <= 0 {
			t.Fatalf("template %q has no reward points", tmpl.Title)
		}
	}

	want := map[string]int{
		TypeStreak:         3,
		TypeCaloriesBurned: 3,
		TypeWaterIntake:    2,
		TypeFoodLogged:     2,
	}
	for typ, n := range want {
		if byType[typ] != n {
			t.Fatalf("expected %d %s templates, got %d", n, typ, byType[typ])
		}
	}
}

func TestCatalogTemplatesReturnsCopy(t *testing.T) {
	c := DefaultCatalog()
	templates := c.Templates()
	templates[0].Title = "mutated"
	if c.Templates()[0].Title == "mutated" {
		t.Fatal("Templates must not expose internal state")
	}
}
