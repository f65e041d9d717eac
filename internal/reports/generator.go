package reports

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fdg312/fitcoach/internal/plangen"
	"github.com/fdg312/fitcoach/internal/storage"
	"github.com/jung-kurt/gofpdf"
)

// Generator renders a stored plan to PDF or CSV.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Render decodes the stored plan JSON and produces the requested format.
func (g *Generator) Render(user *storage.User, plan *storage.Plan, format string) ([]byte, error) {
	var mealPlan plangen.MealPlan
	if err := json.Unmarshal(plan.DietPlan, &mealPlan); err != nil {
		return nil, fmt.Errorf("failed to decode diet plan: %w", err)
	}
	var workoutPlan plangen.WorkoutPlan
	if err := json.Unmarshal(plan.WorkoutPlan, &workoutPlan); err != nil {
		return nil, fmt.Errorf("failed to decode workout plan: %w", err)
	}

	switch format {
	case FormatPDF:
		return g.renderPDF(user, plan, mealPlan, workoutPlan)
	case FormatCSV:
		return g.renderCSV(mealPlan, workoutPlan)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// renderCSV writes one row per meal and one row per workout day.
func (g *Generator) renderCSV(mealPlan plangen.MealPlan, workoutPlan plangen.WorkoutPlan) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"section", "day", "item", "detail", "calories_kcal"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	targets := mealPlan.DailyTargets
	targetRows := [][]string{
		{"targets", "", "calories", "", strconv.Itoa(targets.CaloriesKcal)},
		{"targets", "", "protein_g", formatGrams(targets.ProteinG), ""},
		{"targets", "", "carbs_g", formatGrams(targets.CarbsG), ""},
		{"targets", "", "fats_g", formatGrams(targets.FatsG), ""},
	}
	for _, row := range targetRows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	for _, day := range plangen.Weekdays {
		for _, meal := range mealPlan.Week[day].Meals {
			row := []string{"meals", day, meal.MealType, meal.Food, strconv.Itoa(meal.CaloriesKcal)}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	for _, day := range plangen.Weekdays {
		workout := workoutPlan.Week[day]
		detail := strings.Join(workout.Exercises, "; ")
		row := []string{"workouts", day, workout.Type, detail, ""}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) renderPDF(user *storage.User, plan *storage.Plan, mealPlan plangen.MealPlan, workoutPlan plangen.WorkoutPlan) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Personalized Fitness Plan")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Name: %s    Age: %d    Goal: %s", user.Name, user.Age, readable(user.Goal)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Diet: %s    Activity: %s    Experience: %s",
		readable(user.DietType), readable(user.ActivityLevel), readable(user.WorkoutExperience)))
	pdf.Ln(10)

	targets := mealPlan.DailyTargets
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Daily Targets")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Calories: %d kcal    Protein: %s g    Carbs: %s g    Fats: %s g",
		targets.CaloriesKcal, formatGrams(targets.ProteinG), formatGrams(targets.CarbsG), formatGrams(targets.FatsG)))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Weekly Meal Plan")
	pdf.Ln(8)
	g.drawMealTable(pdf, mealPlan)
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Weekly Workout Plan")
	pdf.Ln(8)
	g.drawWorkoutTable(pdf, workoutPlan)
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, fmt.Sprintf("Recovery: %s", workoutPlan.RecoveryGuidance), "", "L", false)
	pdf.Ln(4)
	if plan.Explanation != "" {
		pdf.MultiCell(0, 5, plan.Explanation, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) drawMealTable(pdf *gofpdf.Fpdf, mealPlan plangen.MealPlan) {
	pdf.SetFont("Arial", "", 8)

	pdf.CellFormat(25, 6, "Day", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Meal", "1", 0, "C", false, 0, "")
	pdf.CellFormat(100, 6, "Food", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Kcal", "1", 1, "C", false, 0, "")

	for _, day := range plangen.Weekdays {
		mealDay := mealPlan.Week[day]
		for i, meal := range mealDay.Meals {
			dayLabel := ""
			if i == 0 {
				dayLabel = day
			}
			pdf.CellFormat(25, 6, dayLabel, "1", 0, "C", false, 0, "")
			pdf.CellFormat(25, 6, readable(meal.MealType), "1", 0, "C", false, 0, "")
			pdf.CellFormat(100, 6, meal.Food, "1", 0, "L", false, 0, "")
			pdf.CellFormat(25, 6, strconv.Itoa(meal.CaloriesKcal), "1", 1, "C", false, 0, "")
		}
	}
}

func (g *Generator) drawWorkoutTable(pdf *gofpdf.Fpdf, workoutPlan plangen.WorkoutPlan) {
	pdf.SetFont("Arial", "", 8)

	pdf.CellFormat(25, 6, "Day", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(95, 6, "Exercises", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Minutes", "1", 1, "C", false, 0, "")

	for _, day := range plangen.Weekdays {
		workout := workoutPlan.Week[day]
		minutes := ""
		if workout.DurationMinutes > 0 {
			minutes = strconv.Itoa(workout.DurationMinutes)
		}
		pdf.CellFormat(25, 6, day, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, workout.Type, "1", 0, "C", false, 0, "")
		pdf.CellFormat(95, 6, strings.Join(workout.Exercises, ", "), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, minutes, "1", 1, "C", false, 0, "")
	}
}

func formatGrams(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// readable переводит канонический токен в печатный вид: fat_loss -> fat loss.
func readable(token string) string {
	return strings.ReplaceAll(token, "_", " ")
}
