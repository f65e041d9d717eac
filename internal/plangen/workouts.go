package plangen

import (
	"strings"

	"github.com/fdg312/fitcoach/internal/profile"
)

// workoutTemplates — упражнения по уровню опыта и типу сессии. Read-only.
var workoutTemplates = map[string]map[string][]string{
	profile.ExperienceBeginner: {
		"full_body": {"Squats", "Push-ups", "Plank", "Lunges", "Dumbbell rows"},
		"cardio":    {"Walking", "Light jogging", "Cycling"},
		"rest":      {"Rest day - light stretching"},
	},
	profile.ExperienceIntermediate: {
		"push":   {"Bench press", "Shoulder press", "Tricep dips", "Push-ups"},
		"pull":   {"Pull-ups", "Rows", "Bicep curls", "Lat pulldowns"},
		"legs":   {"Squats", "Deadlifts", "Leg press", "Lunges"},
		"cardio": {"Running", "HIIT", "Cycling"},
		"rest":   {"Rest day - active recovery"},
	},
	profile.ExperienceAdvanced: {
		"push":   {"Bench press", "Incline press", "Shoulder press", "Tricep extensions", "Lateral raises"},
		"pull":   {"Deadlifts", "Pull-ups", "Barbell rows", "Cable rows", "Bicep curls"},
		"legs":   {"Squats", "Romanian deadlifts", "Leg press", "Lunges", "Calf raises"},
		"cardio": {"HIIT", "Sprint intervals", "Conditioning"},
		"rest":   {"Rest day - mobility work"},
	},
}

var recoveryGuidance = map[string]string{
	profile.ExperienceBeginner:     "Focus on form over weight. Rest 48 hours between sessions.",
	profile.ExperienceIntermediate: "Maintain progressive overload. Include 1-2 rest days per week.",
	profile.ExperienceAdvanced:     "Prioritize recovery. Consider deload weeks every 4-6 weeks.",
}

// workoutSplit returns the session type for each active day. Beginners train
// full body every time; others rotate push/pull/legs with a second push day
// at exactly four days.
func workoutSplit(experience string, days int) []string {
	if experience == profile.ExperienceBeginner {
		split := make([]string, days)
		for i := range split {
			split[i] = "full_body"
		}
		return split
	}
	ppl := []string{"push", "pull", "legs"}
	switch {
	case days <= 3:
		return ppl[:days]
	case days == 4:
		return []string{"push", "pull", "legs", "push"}
	default:
		split := make([]string, days)
		for i := range split {
			split[i] = ppl[i%len(ppl)]
		}
		return split
	}
}

func (g *Generator) workoutPlan(p profile.Profile) WorkoutPlan {
	experience := p.Str(profile.FieldWorkoutExperience)
	templates, ok := workoutTemplates[experience]
	if !ok {
		experience = profile.ExperienceBeginner
		templates = workoutTemplates[experience]
	}

	days := p.Int(profile.FieldWorkoutDaysPerWeek)
	duration := p.Int(profile.FieldWorkoutDuration)
	split := workoutSplit(experience, days)

	addCardio := p.Str(profile.FieldGoal) == profile.GoalFatLoss &&
		p.Str(profile.FieldActivityLevel) != profile.ActivityActive

	week := make(map[string]WorkoutDay, len(Weekdays))
	for i, day := range Weekdays {
		if i < days {
			sessionType := split[i]
			exercises := append([]string(nil), templates[sessionType]...)
			if addCardio {
				exercises = append(exercises, templates["cardio"][0])
			}
			week[day] = WorkoutDay{
				Type:            sessionLabel(sessionType),
				Exercises:       exercises,
				DurationMinutes: duration,
				Intensity:       experience,
			}
			continue
		}
		week[day] = WorkoutDay{
			Type:      "Rest",
			Exercises: append([]string(nil), templates["rest"]...),
			Intensity: "rest",
		}
	}

	return WorkoutPlan{
		Week:             week,
		RecoveryGuidance: recoveryGuidance[experience],
		TotalWorkoutDays: days,
		SessionDuration:  duration,
	}
}

// sessionLabel turns a split key into its display form ("full_body" -> "Full Body").
func sessionLabel(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
