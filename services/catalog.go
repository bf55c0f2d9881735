// services/catalog.go - Achievement catalog definitions
package services

import "fmt"

// Achievement types. Each type maps to one aggregate metric; the engine
// refuses to start with a catalog referencing a type it has no aggregate for.
const (
	TypeStreak         = "streak"
	TypeCaloriesBurned = "calories_burned"
	TypeWaterIntake    = "water_intake"
	TypeFoodLogged     = "food_logged"
)

// Reward is granted exactly once when an achievement instance completes.
type Reward struct {
	Points int
	Badge  string
}

// AchievementTemplate is an immutable catalog entry. Identity is the
// (Type, Milestone) pair.
type AchievementTemplate struct {
	Type        string
	Title       string
	Description string
	Icon        string
	Milestone   int
	Reward      Reward
}

// Catalog is a validated, immutable ordered set of achievement templates.
// It is constructed once at boot and injected into the gamification engine.
type Catalog struct {
	templates []AchievementTemplate
}

// NewCatalog validates templates and builds a catalog. Duplicate
// (type, milestone) identities and unknown types are configuration errors.
func NewCatalog(templates []AchievementTemplate) (*Catalog, error) {
	known := map[string]bool{
		TypeStreak:         true,
		TypeCaloriesBurned: true,
		TypeWaterIntake:    true,
		TypeFoodLogged:     true,
	}

	type identity struct {
		typ       string
		milestone int
	}
	seen := make(map[identity]bool, len(templates))

	for _, t := range templates {
		if !known[t.Type] {
			return nil, fmt.Errorf("achievement catalog: unknown type %q (%s)", t.Type, t.Title)
		}
		if t.Milestone <= 0 {
			return nil, fmt.Errorf("achievement catalog: milestone must be positive for %q", t.Title)
		}
		if t.Reward.Points < 0 {
			return nil, fmt.Errorf("achievement catalog: negative reward points for %q", t.Title)
		}
		id := identity{t.Type, t.Milestone}
		if seen[id] {
			return nil, fmt.Errorf("achievement catalog: duplicate entry for type %q milestone %d", t.Type, t.Milestone)
		}
		seen[id] = true
	}

	c := &Catalog{templates: make([]AchievementTemplate, len(templates))}
	copy(c.templates, templates)
	return c, nil
}

// Templates returns the catalog entries in definition order.
func (c *Catalog) Templates() []AchievementTemplate {
	out := make([]AchievementTemplate, len(c.templates))
	copy(out, c.templates)
	return out
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// DefaultCatalog returns the standard BiteCount achievement set.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog([]AchievementTemplate{
		// Streak achievements
		{Type: TypeStreak, Title: "7-Day Warrior", Description: "Maintain a 7-day streak", Icon: "🔥", Milestone: 7, Reward: Reward{Points: 100, Badge: "Week Warrior"}},
		{Type: TypeStreak, Title: "Monthly Champion", Description: "Maintain a 30-day streak", Icon: "💪", Milestone: 30, Reward: Reward{Points: 500, Badge: "Month Master"}},
		{Type: TypeStreak, Title: "Century Legend", Description: "Maintain a 100-day streak", Icon: "👑", Milestone: 100, Reward: Reward{Points: 2000, Badge: "Century King"}},

		// Calories burned achievements
		{Type: TypeCaloriesBurned, Title: "Calorie Crusher", Description: "Burn 1,000 calories in total", Icon: "🔥", Milestone: 1000, Reward: Reward{Points: 50, Badge: "Burner"}},
		{Type: TypeCaloriesBurned, Title: "Inferno Master", Description: "Burn 10,000 calories in total", Icon: "🌋", Milestone: 10000, Reward: Reward{Points: 300, Badge: "Inferno"}},
		{Type: TypeCaloriesBurned, Title: "Furnace Legend", Description: "Burn 50,000 calories in total", Icon: "⚡", Milestone: 50000, Reward: Reward{Points: 1000, Badge: "Furnace"}},

		// Water intake achievements
		{Type: TypeWaterIntake, Title: "Hydration Hero", Description: "Meet water goal for 7 days", Icon: "💧", Milestone: 7, Reward: Reward{Points: 75, Badge: "Hydrated"}},
		{Type: TypeWaterIntake, Title: "Aqua Champion", Description: "Meet water goal for 30 days", Icon: "🌊", Milestone: 30, Reward: Reward{Points: 400, Badge: "Aqua Master"}},

		// Consistency achievements
		{Type: TypeFoodLogged, Title: "Tracking Pro", Description: "Log 50 meals", Icon: "📊", Milestone: 50, Reward: Reward{Points: 100, Badge: "Tracker"}},
		{Type: TypeFoodLogged, Title: "Logging Legend", Description: "Log 200 meals", Icon: "📈", Milestone: 200, Reward: Reward{Points: 500, Badge: "Log Master"}},
	})
	if err != nil {
		// The default set is fixed at compile time; a validation failure here
		// is a programming error.
		panic(err)
	}
	return catalog
}
