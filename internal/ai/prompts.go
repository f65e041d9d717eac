package ai

import (
	"fmt"
	"strings"
)

// fieldPrompts — статические вопросы по полям. Используются mock-провайдером
// и как fallback при любой ошибке внешнего провайдера.
var fieldPrompts = map[string]string{
	"name":                  "Great! Let's get started. What's your name?",
	"age":                   "Nice to meet you, %s! How old are you?",
	"gender":                "Thanks! What's your gender - male, female, or other?",
	"height":                "Perfect! What's your height in centimeters?",
	"weight":                "Great! What's your current weight in kilograms?",
	"goal":                  "What's your fitness goal - fat loss, muscle gain, or maintenance?",
	"target_weight":         "Excellent! What's your target weight in kilograms?",
	"diet_type":             "What's your diet type - vegetarian, non-vegetarian, vegan, or pescatarian?",
	"food_allergies":        "Do you have any food allergies?",
	"disliked_foods":        "Are there any foods you dislike?",
	"medical_conditions":    "Do you have any medical conditions I should know about?",
	"meals_per_day":         "How many meals do you typically eat per day?",
	"cooking_habits":        "What are your cooking habits - home cooked, mixed, or outside food?",
	"wake_time":             "What time do you usually wake up? (e.g., 07:00)",
	"sleep_time":            "What time do you usually go to sleep? (e.g., 23:00)",
	"work_hours":            "What are your work hours? (e.g., 9-17)",
	"activity_level":        "What's your activity level - sedentary, moderate, or active?",
	"workout_experience":    "What's your workout experience level - beginner, intermediate, or advanced?",
	"workout_days_per_week": "How many days per week can you work out?",
	"workout_duration":      "How long can you work out per session in minutes?",
}

// FieldPrompt returns the static question for a field. The age prompt greets
// the user by name ("there" until the name is known).
func FieldPrompt(field, userName string) string {
	prompt, ok := fieldPrompts[field]
	if !ok {
		return fmt.Sprintf("Please provide your %s.", strings.ReplaceAll(field, "_", " "))
	}
	if field == "age" {
		name := strings.TrimSpace(userName)
		if name == "" {
			name = "there"
		}
		return fmt.Sprintf(prompt, name)
	}
	return prompt
}

// FallbackExplanation is used when the provider cannot produce one.
func FallbackExplanation(goal, dietType, workoutExperience string) string {
	return fmt.Sprintf(
		"Your personalized plan has been created based on your goal of %s, %s diet preferences, and %s workout experience level.",
		goal, dietType, workoutExperience,
	)
}
