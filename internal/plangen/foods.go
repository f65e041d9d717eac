package plangen

import (
	"math"
	"strings"

	"github.com/fdg312/fitcoach/internal/profile"
)

// foodDatabase — блюда по типу диеты и приёму пищи. Read-only.
var foodDatabase = map[string]map[string][]string{
	profile.DietVeg: {
		"breakfast": {"Oats with fruits", "Poha", "Upma", "Idli with sambar", "Paratha with curd", "Cereal with milk"},
		"lunch":     {"Dal rice with vegetables", "Rajma rice", "Chole with roti", "Vegetable biryani", "Khichdi", "Dal tadka with roti"},
		"dinner":    {"Vegetable curry with roti", "Dal with rice", "Stir-fried vegetables", "Soup and salad", "Paneer curry"},
		"snacks":    {"Fruits", "Nuts", "Yogurt", "Smoothie", "Roasted chana", "Tea with biscuits"},
	},
	profile.DietNonVeg: {
		"breakfast": {"Eggs with toast", "Chicken sandwich", "Omelette", "Egg curry with roti", "Scrambled eggs"},
		"lunch":     {"Chicken curry with rice", "Fish curry with rice", "Mutton biryani", "Chicken biryani", "Egg curry with roti"},
		"dinner":    {"Grilled chicken with vegetables", "Fish curry", "Chicken salad", "Egg curry", "Chicken soup"},
		"snacks":    {"Boiled eggs", "Chicken salad", "Protein shake", "Nuts", "Fruits"},
	},
	profile.DietVegan: {
		"breakfast": {"Oats with plant milk", "Smoothie bowl", "Avocado toast", "Chia pudding"},
		"lunch":     {"Lentil curry with rice", "Chickpea salad", "Vegetable stir-fry", "Quinoa bowl"},
		"dinner":    {"Tofu curry", "Lentil soup", "Vegetable curry", "Bean salad"},
		"snacks":    {"Nuts", "Fruits", "Hummus with vegetables", "Roasted chickpeas"},
	},
}

// Доли дневных калорий по приёмам пищи
const (
	breakfastShare = 0.25
	lunchShare     = 0.35
	snackShare     = 0.10
	dinnerShare    = 0.30
)

// mealSlot describes one entry of a day's menu: the food-table category, the
// displayed label, the calorie share and the rotation key.
type mealSlot struct {
	category string
	label    string
	share    float64
	pickKey  string
}

// mealSlots returns the day's menu layout. Breakfast, lunch and dinner are
// always present; a snack follows lunch from 3 meals a day, a second snack
// follows dinner from 4.
func mealSlots(mealsPerDay int) []mealSlot {
	slots := []mealSlot{
		{"breakfast", "Breakfast", breakfastShare, "breakfast"},
		{"lunch", "Lunch", lunchShare, "lunch"},
	}
	if mealsPerDay >= 3 {
		slots = append(slots, mealSlot{"snacks", "Snack", snackShare, "snack"})
	}
	slots = append(slots, mealSlot{"dinner", "Dinner", dinnerShare, "dinner"})
	if mealsPerDay >= 4 {
		slots = append(slots, mealSlot{"snacks", "Snack", snackShare, "snack2"})
	}
	return slots
}

func (g *Generator) mealPlan(p profile.Profile, targets DailyTargets) MealPlan {
	diet := p.Str(profile.FieldDietType)
	foods, ok := foodDatabase[diet]
	if !ok {
		foods = foodDatabase[profile.DietVeg]
	}

	allergies := p.Str(profile.FieldFoodAllergies)
	disliked := p.Str(profile.FieldDislikedFoods)

	filtered := make(map[string][]string, len(foods))
	for category, items := range foods {
		filtered[category] = filterFoods(filterFoods(items, allergies), disliked)
	}

	slots := mealSlots(p.Int(profile.FieldMealsPerDay))
	week := make(map[string]MealDay, len(Weekdays))
	for dayIdx, day := range Weekdays {
		meals := make([]Meal, 0, len(slots))
		total := 0
		for _, slot := range slots {
			options := filtered[slot.category]
			food := options[g.pick(dayIdx, slot.pickKey, len(options))]
			kcal := int(math.RoundToEven(float64(targets.CaloriesKcal) * slot.share))
			meals = append(meals, Meal{MealType: slot.label, Food: food, CaloriesKcal: kcal})
			total += kcal
		}
		week[day] = MealDay{Meals: meals, TotalCalories: total}
	}
	return MealPlan{Week: week, DailyTargets: targets}
}

// filterFoods drops items whose name contains any comma-separated exclusion
// keyword (case-insensitive substring). When the filter would empty the
// list, the original list survives so the day never goes without a meal.
func filterFoods(items []string, exclusions string) []string {
	exclusions = strings.TrimSpace(exclusions)
	if exclusions == "" {
		return items
	}
	var keywords []string
	for _, part := range strings.Split(strings.ToLower(exclusions), ",") {
		if part = strings.TrimSpace(part); part != "" {
			keywords = append(keywords, part)
		}
	}
	if len(keywords) == 0 {
		return items
	}

	var kept []string
	for _, item := range items {
		lower := strings.ToLower(item)
		excluded := false
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		return items
	}
	return kept
}
