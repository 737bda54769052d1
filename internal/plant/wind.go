package plant

import "math"

// StemSway returns the whole-plant rotation about X and Z at time t.
func StemSway(t float64) (x, z float64) {
	z = math.Sin(t*0.8)*0.03 + math.Sin(t*0.3)*0.02
	x = math.Cos(t*0.7) * 0.015
	return x, z
}

// BranchWind is the inclination offset of branch index at time t.
func BranchWind(t float64, index int) float64 {
	return math.Sin(t*1.5+float64(index))*0.05 + math.Sin(t*0.5)*0.02
}

// LeafWind returns the tilt and twist offsets for a leaf with the given
// wind index sitting at height y along its branch.
func LeafWind(t float64, index int, y float64) (tilt, twist float64) {
	flutter := math.Sin(t*10+float64(index)) * 0.02 * math.Max(0, math.Sin(t))
	swell := math.Sin(t*2+y) * 0.05
	return flutter + swell, flutter * 0.5
}

// BranchGrowth is the scale of a branch whose growth starts at delay.
// Branches catch up at four times the plant's rate.
func BranchGrowth(growth, delay float64) float64 {
	return clamp(math.Max(0, (growth-delay)*4), 0, 1)
}

// PetalActivation is the growth offset at which petal i of n starts to open.
func PetalActivation(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i) / float64(n) * 0.2
}

// PetalUnfolding is the open fraction of petal i of n at the given growth.
func PetalUnfolding(growth float64, i, n int) float64 {
	return clamp((growth-0.2-PetalActivation(i, n))*2, 0, 1)
}
