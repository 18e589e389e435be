// Package muscles maps provider muscle identifiers to body regions and
// derives activation heat-map data for exercises and whole workouts.
package muscles

// Region identifies an area of the body visualization.
type Region string

const (
	RegionChest      Region = "chest"
	RegionShoulders  Region = "shoulders"
	RegionBiceps     Region = "biceps"
	RegionTriceps    Region = "triceps"
	RegionForearms   Region = "forearms"
	RegionAbs        Region = "abs"
	RegionObliques   Region = "obliques"
	RegionLats       Region = "lats"
	RegionTraps      Region = "traps"
	RegionUpperBack  Region = "upperback"
	RegionLowerBack  Region = "lowerback"
	RegionGlutes     Region = "glutes"
	RegionQuads      Region = "quads"
	RegionHamstrings Region = "hamstrings"
	RegionCalves     Region = "calves"
)

// Intensity grades how heavily a region is worked.
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Color returns the heat-map display color for the intensity.
func (i Intensity) Color() string {
	switch i {
	case IntensityHigh:
		return "#d7263d"
	case IntensityMedium:
		return "#f4845f"
	case IntensityLow:
		return "#ffd166"
	default:
		return ""
	}
}

// regionsByMuscleID maps the provider's integer muscle identifiers to
// regions. One muscle can light up several regions and several muscles can
// share a region.
var regionsByMuscleID = map[int][]Region{
	1:  {RegionBiceps},                 // biceps brachii
	2:  {RegionShoulders},              // anterior deltoid
	3:  {RegionChest},                  // serratus anterior
	4:  {RegionChest},                  // pectoralis major
	5:  {RegionTriceps},                // triceps brachii
	6:  {RegionAbs},                    // rectus abdominis
	7:  {RegionCalves},                 // gastrocnemius
	8:  {RegionGlutes},                 // gluteus maximus
	9:  {RegionTraps, RegionUpperBack}, // trapezius
	10: {RegionQuads},                  // quadriceps femoris
	11: {RegionHamstrings},             // biceps femoris
	12: {RegionLats},                   // latissimus dorsi
	13: {RegionBiceps, RegionForearms}, // brachialis
	14: {RegionObliques},               // obliquus externus abdominis
	15: {RegionCalves},                 // soleus
	16: {RegionLowerBack},              // erector spinae
	17: {RegionShoulders},              // posterior deltoid
	18: {RegionForearms},               // brachioradialis
}

// RegionsForMuscle returns the regions a provider muscle ID maps to. Unknown
// IDs yield nil so unexpected provider data never breaks activation output.
func RegionsForMuscle(muscleID int) []Region {
	return regionsByMuscleID[muscleID]
}
