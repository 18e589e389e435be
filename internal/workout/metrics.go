package workout

// Metrics summarizes the training volume of one workout.
type Metrics struct {
	TotalSets     int      `json:"totalSets"`
	TotalReps     int      `json:"totalReps"`
	TotalWeightKg float64  `json:"totalWeightKg"`
	ExerciseNames []string `json:"exerciseNames"`
	HasSuperset   bool     `json:"hasSuperset"`
	HasCircuit    bool     `json:"hasCircuit"`
}

// CalculateMetrics computes volume totals across the workout's groups.
//
// Single groups contribute per-exercise sets. Supersets and circuits
// contribute their round count once per group, because a round is one trip
// through all member exercises, while reps and weight accumulate per member.
// Exercise names are de-duplicated preserving first-seen order.
func CalculateMetrics(w Workout) Metrics {
	metrics := Metrics{
		TotalSets:     0,
		TotalReps:     0,
		TotalWeightKg: 0,
		ExerciseNames: []string{},
		HasSuperset:   false,
		HasCircuit:    false,
	}
	seenNames := make(map[string]bool)

	for _, group := range w.Groups {
		switch group.Kind {
		case KindSingle:
			for _, cfg := range group.Exercises {
				metrics.TotalSets += cfg.Sets
				metrics.TotalReps += cfg.Sets * cfg.Reps
				metrics.TotalWeightKg += float64(cfg.Sets*cfg.Reps) * cfg.WeightKg
			}
		case KindSuperset, KindCircuit:
			rounds := group.Rounds
			if rounds < 1 {
				rounds = 1
			}
			metrics.TotalSets += rounds
			for _, cfg := range group.Exercises {
				metrics.TotalReps += rounds * cfg.Reps
				metrics.TotalWeightKg += float64(rounds*cfg.Reps) * cfg.WeightKg
			}
			if group.Kind == KindSuperset {
				metrics.HasSuperset = true
			} else {
				metrics.HasCircuit = true
			}
		}

		for _, cfg := range group.Exercises {
			if name := cfg.Exercise.Name; name != "" && !seenNames[name] {
				seenNames[name] = true
				metrics.ExerciseNames = append(metrics.ExerciseNames, name)
			}
		}
	}

	return metrics
}
