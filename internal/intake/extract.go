package intake

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fdg312/fitcoach/internal/profile"
)

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// synonymRule maps a substring of the message to a canonical token. Rules are
// checked in declared order: the first hit wins, so more specific terms must
// come first ("female" before "male", "sedentary" before "active").
type synonymRule struct {
	substr string
	token  string
}

var synonymRules = map[string][]synonymRule{
	profile.FieldGender: {
		{"female", profile.GenderFemale},
		{"woman", profile.GenderFemale},
		{"girl", profile.GenderFemale},
		{"non-binary", profile.GenderOther},
		{"nonbinary", profile.GenderOther},
		{"other", profile.GenderOther},
		{"male", profile.GenderMale},
		{"man", profile.GenderMale},
		{"boy", profile.GenderMale},
	},
	profile.FieldGoal: {
		{"maintain", profile.GoalMaintenance},
		{"keep my weight", profile.GoalMaintenance},
		{"muscle", profile.GoalMuscleGain},
		{"bulk", profile.GoalMuscleGain},
		{"build", profile.GoalMuscleGain},
		{"gain", profile.GoalMuscleGain},
		{"lose", profile.GoalFatLoss},
		{"loss", profile.GoalFatLoss},
		{"cut", profile.GoalFatLoss},
		{"fat", profile.GoalFatLoss},
		{"slim", profile.GoalFatLoss},
	},
	profile.FieldActivityLevel: {
		{"sedentary", profile.ActivitySedentary},
		{"not active", profile.ActivitySedentary},
		{"inactive", profile.ActivitySedentary},
		{"desk", profile.ActivitySedentary},
		{"moderate", profile.ActivityModerate},
		{"active", profile.ActivityActive},
	},
	profile.FieldWorkoutExperience: {
		{"beginner", profile.ExperienceBeginner},
		{"just start", profile.ExperienceBeginner},
		{"new", profile.ExperienceBeginner},
		{"never", profile.ExperienceBeginner},
		{"intermediate", profile.ExperienceIntermediate},
		{"advanced", profile.ExperienceAdvanced},
		{"expert", profile.ExperienceAdvanced},
		{"experienced", profile.ExperienceAdvanced},
	},
	profile.FieldCookingHabits: {
		{"mix", profile.CookingMixed},
		{"both", profile.CookingMixed},
		{"sometimes", profile.CookingMixed},
		{"home", profile.CookingHomeCooked},
		{"cook", profile.CookingHomeCooked},
		{"myself", profile.CookingHomeCooked},
		{"outside", profile.CookingOutside},
		{"order", profile.CookingOutside},
		{"restaurant", profile.CookingOutside},
		{"takeout", profile.CookingOutside},
		{"eat out", profile.CookingOutside},
	},
}

// dietVocab marks a message as a diet-type utterance; such messages are never
// attributed to medical_conditions or food_allergies.
var dietVocab = []string{"vegan", "vegetarian", "pescatarian", "pesca", "non-veg", "non_veg"}

// cookingVocab blocks work_hours extraction, and work-hours shaped text
// ("9-17", "9 to 5") blocks cooking_habits extraction.
var cookingVocab = []string{"cook", "home", "outside", "restaurant", "order", "takeout", "mix"}

var workHoursShape = regexp.MustCompile(`\d{1,2}\s*(?:-|to)\s*\d{1,2}`)

var nameFillers = []string{
	"my name is", "my name's", "you can call me", "call me",
	"i am called", "i'm called", "name is", "this is",
	"i am", "i'm", "im", "it is", "it's", "its",
}

var affirmations = map[string]bool{
	"yes": true, "ok": true, "okay": true, "sure": true,
	"yeah": true, "yep": true, "fine": true,
}

// Extract attempts to pull a value for the given field out of a free-form
// message. A miss returns ("", false) and is not an error: the caller simply
// keeps the field open. Numeric extraction applies the field range up front,
// so an out-of-context number is not misattributed to the field.
func Extract(field, message string) (string, bool) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", false
	}
	lower := strings.ToLower(message)

	def, ok := profile.Lookup(field)
	if !ok {
		return "", false
	}

	switch {
	case field == profile.FieldName:
		return extractName(message)
	case field == profile.FieldDietType:
		return extractDietType(lower)
	case field == profile.FieldMedicalConditions, field == profile.FieldFoodAllergies:
		if containsAny(lower, dietVocab) {
			return "", false
		}
		return extractFreeText(message)
	case field == profile.FieldWorkHours:
		if containsAny(lower, cookingVocab) {
			return "", false
		}
		return extractFreeText(message)
	case field == profile.FieldCookingHabits:
		if workHoursShape.MatchString(lower) {
			return "", false
		}
		return extractSynonym(field, lower)
	case def.Kind == profile.KindNumber:
		return extractNumber(def, lower)
	case def.Kind == profile.KindChoice:
		return extractSynonym(field, lower)
	case def.Kind == profile.KindTime:
		return extractTime(lower)
	default:
		return extractFreeText(message)
	}
}

// extractNumber finds the first signed decimal in the message. Out-of-range
// values are a miss, not a validation failure.
func extractNumber(def profile.FieldDef, lower string) (string, bool) {
	match := numberPattern.FindString(lower)
	if match == "" {
		return "", false
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return "", false
	}
	if value < def.Min || value > def.Max {
		return "", false
	}
	return match, true
}

func extractName(message string) (string, bool) {
	candidate := strings.TrimSpace(message)
	lower := strings.ToLower(candidate)
	for _, filler := range nameFillers {
		if strings.HasPrefix(lower, filler+" ") {
			candidate = strings.TrimSpace(candidate[len(filler):])
			break
		}
	}
	candidate = strings.Trim(candidate, ".,!?\"'")
	if candidate == "" {
		return "", false
	}
	lc := strings.ToLower(candidate)
	if nameRejectTokens[lc] || affirmations[lc] || isAllDigits(candidate) {
		return "", false
	}
	tokens := strings.Fields(candidate)
	if len(tokens) > 3 {
		tokens = tokens[:3]
	}
	return strings.Join(tokens, " "), true
}

func extractDietType(lower string) (string, bool) {
	switch {
	case strings.Contains(lower, "vegan"):
		return profile.DietVegan, true
	case strings.Contains(lower, "pescatarian"), strings.Contains(lower, "pesca"), strings.Contains(lower, "fish"):
		return profile.DietPescatarian, true
	case strings.Contains(lower, "veg") && !strings.Contains(lower, "non"):
		return profile.DietVeg, true
	case strings.Contains(lower, "non"), strings.Contains(lower, "meat"), strings.Contains(lower, "chicken"):
		return profile.DietNonVeg, true
	default:
		return "", false
	}
}

func extractSynonym(field, lower string) (string, bool) {
	for _, rule := range synonymRules[field] {
		if strings.Contains(lower, rule.substr) {
			return rule.token, true
		}
	}
	return "", false
}

var (
	clockPattern = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`)
	ampmPattern  = regexp.MustCompile(`\b(\d{1,2})\s*(am|pm)\b`)
)

// extractTime accepts a 24-hour HH:MM literal or "<hour> am|pm", zero-padded
// on the way out.
func extractTime(lower string) (string, bool) {
	if m := clockPattern.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour <= 23 && minute <= 59 {
			return fmt.Sprintf("%02d:%02d", hour, minute), true
		}
		return "", false
	}
	if m := ampmPattern.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour < 1 || hour > 12 {
			return "", false
		}
		if m[2] == "pm" && hour != 12 {
			hour += 12
		}
		if m[2] == "am" && hour == 12 {
			hour = 0
		}
		return fmt.Sprintf("%02d:00", hour), true
	}
	return "", false
}

func extractFreeText(message string) (string, bool) {
	if len(strings.TrimSpace(message)) > 2 {
		return strings.TrimSpace(message), true
	}
	return "", false
}

func containsAny(s string, vocab []string) bool {
	for _, token := range vocab {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}
