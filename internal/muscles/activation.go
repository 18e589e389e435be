package muscles

// Policy constants for workout-level aggregation. A region worked as a
// primary mover counts double a secondary one, and the accumulated weight is
// normalized against the maximum possible (primary in every exercise) before
// grading against the thresholds.
const (
	primaryWeight   = 2.0
	secondaryWeight = 1.0
	highThreshold   = 0.6
	mediumThreshold = 0.3
)

// MuscleSet holds one exercise's primary and secondary muscle IDs.
type MuscleSet struct {
	PrimaryIDs   []int
	SecondaryIDs []int
}

// ActivationForExercise grades the regions a single exercise works. Primary
// muscles grade high and secondary muscles medium. When a region is reachable
// through both, primary wins regardless of input order.
func ActivationForExercise(primaryIDs, secondaryIDs []int) map[Region]Intensity {
	activation := make(map[Region]Intensity)
	for _, id := range primaryIDs {
		for _, region := range RegionsForMuscle(id) {
			activation[region] = IntensityHigh
		}
	}
	for _, id := range secondaryIDs {
		for _, region := range RegionsForMuscle(id) {
			if _, taken := activation[region]; !taken {
				activation[region] = IntensityMedium
			}
		}
	}
	return activation
}

// Aggregate grades the regions a whole workout works. Each exercise
// contributes primaryWeight per primary region and secondaryWeight per
// secondary region it touches, counting each region at most once per exercise
// with primary taking precedence. An empty exercise list yields an empty map.
func Aggregate(exercises []MuscleSet) map[Region]Intensity {
	if len(exercises) == 0 {
		return map[Region]Intensity{}
	}

	weights := make(map[Region]float64)
	for _, exercise := range exercises {
		primaryRegions := make(map[Region]bool)
		for _, id := range exercise.PrimaryIDs {
			for _, region := range RegionsForMuscle(id) {
				primaryRegions[region] = true
			}
		}
		for region := range primaryRegions {
			weights[region] += primaryWeight
		}

		secondaryRegions := make(map[Region]bool)
		for _, id := range exercise.SecondaryIDs {
			for _, region := range RegionsForMuscle(id) {
				if !primaryRegions[region] {
					secondaryRegions[region] = true
				}
			}
		}
		for region := range secondaryRegions {
			weights[region] += secondaryWeight
		}
	}

	maxWeight := primaryWeight * float64(len(exercises))
	activation := make(map[Region]Intensity, len(weights))
	for region, weight := range weights {
		ratio := weight / maxWeight
		switch {
		case ratio >= highThreshold:
			activation[region] = IntensityHigh
		case ratio >= mediumThreshold:
			activation[region] = IntensityMedium
		default:
			activation[region] = IntensityLow
		}
	}
	return activation
}
