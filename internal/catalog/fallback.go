package catalog

import "github.com/claude/liftarena/internal/models"

// fallbackDefs is the built-in catalog used when the remote source is
// unreachable. The resolver must never run against zero entries.
var fallbackDefs = []Definition{
	{ID: "bench-press", Names: map[string]string{"en": "Bench Press (Barbell)", "es": "Press Banca (Barra)"}, Category: "chest", Metric: models.MetricStrength},
	{ID: "incline-bench-press", Names: map[string]string{"en": "Incline Bench Press", "es": "Press Banca Inclinado"}, Category: "chest", Metric: models.MetricStrength},
	{ID: "squat", Names: map[string]string{"en": "Squat (Barbell)", "es": "Sentadilla (Barra)"}, Category: "legs", Metric: models.MetricStrength},
	{ID: "front-squat", Names: map[string]string{"en": "Front Squat", "es": "Sentadilla Frontal"}, Category: "legs", Metric: models.MetricStrength},
	{ID: "deadlift", Names: map[string]string{"en": "Deadlift", "es": "Peso Muerto"}, Category: "back", Metric: models.MetricStrength},
	{ID: "romanian-deadlift", Names: map[string]string{"en": "Romanian Deadlift", "es": "Peso Muerto Rumano"}, Category: "legs", Metric: models.MetricStrength},
	{ID: "overhead-press", Names: map[string]string{"en": "Overhead Press", "es": "Press Militar"}, Category: "shoulders", Metric: models.MetricStrength},
	{ID: "barbell-row", Names: map[string]string{"en": "Barbell Row", "es": "Remo con Barra"}, Category: "back", Metric: models.MetricStrength},
	{ID: "lat-pulldown", Names: map[string]string{"en": "Lat Pulldown", "es": "Jalón al Pecho"}, Category: "back", Metric: models.MetricStrength},
	{ID: "pull-up", Names: map[string]string{"en": "Pull-up", "es": "Dominadas"}, Category: "back", Metric: models.MetricStrength, Bodyweight: true},
	{ID: "chin-up", Names: map[string]string{"en": "Chin-up", "es": "Dominadas Supinas"}, Category: "back", Metric: models.MetricStrength, Bodyweight: true},
	{ID: "dip", Names: map[string]string{"en": "Dips", "es": "Fondos"}, Category: "chest", Metric: models.MetricStrength, Bodyweight: true},
	{ID: "push-up", Names: map[string]string{"en": "Push-up", "es": "Flexiones"}, Category: "chest", Metric: models.MetricStrength, Bodyweight: true},
	{ID: "biceps-curl", Names: map[string]string{"en": "Biceps Curl (Dumbbell)", "es": "Curl de Bíceps (Mancuerna)"}, Category: "arms", Metric: models.MetricStrength},
	{ID: "triceps-pushdown", Names: map[string]string{"en": "Triceps Pushdown", "es": "Extensión de Tríceps en Polea"}, Category: "arms", Metric: models.MetricStrength},
	{ID: "lateral-raise", Names: map[string]string{"en": "Lateral Raise", "es": "Elevaciones Laterales"}, Category: "shoulders", Metric: models.MetricStrength},
	{ID: "leg-press", Names: map[string]string{"en": "Leg Press", "es": "Prensa de Piernas"}, Category: "legs", Metric: models.MetricStrength},
	{ID: "leg-extension", Names: map[string]string{"en": "Leg Extension", "es": "Extensión de Cuádriceps"}, Category: "legs", Metric: models.MetricStrength},
	{ID: "leg-curl", Names: map[string]string{"en": "Leg Curl", "es": "Curl Femoral"}, Category: "legs", Metric: models.MetricStrength},
	{ID: "hip-thrust", Names: map[string]string{"en": "Hip Thrust", "es": "Hip Thrust (Barra)"}, Category: "legs", Metric: models.MetricStrength},
	{ID: "calf-raise", Names: map[string]string{"en": "Calf Raise", "es": "Elevación de Talones"}, Category: "legs", Metric: models.MetricStrength},
	{ID: "plank", Names: map[string]string{"en": "Plank", "es": "Plancha"}, Category: "core", Metric: models.MetricStrength, Bodyweight: true},
	{ID: "running", Names: map[string]string{"en": "Running", "es": "Correr"}, Category: "cardio", Metric: models.MetricCardio},
	{ID: "cycling", Names: map[string]string{"en": "Cycling", "es": "Bicicleta"}, Category: "cardio", Metric: models.MetricCardio},
	{ID: "rowing-machine", Names: map[string]string{"en": "Rowing Machine", "es": "Remo (Máquina)"}, Category: "cardio", Metric: models.MetricCardio},
	{ID: "swimming", Names: map[string]string{"en": "Swimming", "es": "Natación"}, Category: "cardio", Metric: models.MetricCardio},
	{ID: "walking", Names: map[string]string{"en": "Walking", "es": "Caminar"}, Category: "cardio", Metric: models.MetricCardio},
}

// Fallback returns a fresh Catalog built from the static definitions.
func Fallback() *Catalog {
	return New(fallbackDefs)
}
