package app

import (
	"fmt"
	"math"

	"github.com/Faultbox/flora/internal/plant"
)

// Param names an editable numeric plant parameter.
type Param string

// Editable parameters.
const (
	ParamHeight              Param = "height"
	ParamPetalCount          Param = "petal_count"
	ParamLeafSize            Param = "leaf_size"
	ParamLeafAngleMin        Param = "leaf_angle_min"
	ParamLeafAngleMax        Param = "leaf_angle_max"
	ParamBranchAngleMin      Param = "branch_angle_min"
	ParamBranchAngleMax      Param = "branch_angle_max"
	ParamCurvature           Param = "curvature"
	ParamLeafScaleNearFlower Param = "leaf_scale_near_flower"
)

// Range is the editing domain of a parameter.
type Range struct {
	Min, Max, Step float64
}

// Clamp snaps v to the step grid and limits it to the range.
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	if r.Step > 0 {
		v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
	}
	return math.Min(r.Max, math.Max(r.Min, v))
}

// ParamRanges are the bounds offered to users.
var ParamRanges = map[Param]Range{
	ParamHeight:              {Min: 2, Max: 8, Step: 0.5},
	ParamPetalCount:          {Min: 5, Max: 100, Step: 1},
	ParamLeafSize:            {Min: 0.1, Max: 3, Step: 0.1},
	ParamLeafAngleMin:        {Min: 0, Max: 90, Step: 1},
	ParamLeafAngleMax:        {Min: 0, Max: 120, Step: 1},
	ParamBranchAngleMin:      {Min: 10, Max: 90, Step: 1},
	ParamBranchAngleMax:      {Min: 10, Max: 120, Step: 1},
	ParamCurvature:           {Min: 0, Max: 1, Step: 0.05},
	ParamLeafScaleNearFlower: {Min: 0, Max: 1, Step: 0.05},
}

// Params lists the editable parameters in display order.
var Params = []Param{
	ParamPetalCount,
	ParamHeight,
	ParamLeafSize,
	ParamLeafAngleMin,
	ParamLeafAngleMax,
	ParamBranchAngleMin,
	ParamBranchAngleMax,
	ParamCurvature,
	ParamLeafScaleNearFlower,
}

// Leaf override bounds.
var (
	LeafSizeRange  = Range{Min: 0, Max: 3, Step: 0.1}
	LeafAngleRange = Range{Min: 0, Max: 120, Step: 1}
)

func getParam(c plant.Config, p Param) (float64, error) {
	switch p {
	case ParamHeight:
		return c.Height, nil
	case ParamPetalCount:
		return float64(c.PetalCount), nil
	case ParamLeafSize:
		return c.LeafSize, nil
	case ParamLeafAngleMin:
		return c.LeafAngleMin, nil
	case ParamLeafAngleMax:
		return c.LeafAngleMax, nil
	case ParamBranchAngleMin:
		return c.BranchAngleMin, nil
	case ParamBranchAngleMax:
		return c.BranchAngleMax, nil
	case ParamCurvature:
		return c.Curvature, nil
	case ParamLeafScaleNearFlower:
		return c.LeafScaleNearFlower, nil
	}
	return 0, fmt.Errorf("unknown parameter %q", p)
}

func setParam(c *plant.Config, p Param, v float64) {
	switch p {
	case ParamHeight:
		c.Height = v
	case ParamPetalCount:
		c.PetalCount = int(v)
	case ParamLeafSize:
		c.LeafSize = v
	case ParamLeafAngleMin:
		c.LeafAngleMin = v
	case ParamLeafAngleMax:
		c.LeafAngleMax = v
	case ParamBranchAngleMin:
		c.BranchAngleMin = v
	case ParamBranchAngleMax:
		c.BranchAngleMax = v
	case ParamCurvature:
		c.Curvature = v
	case ParamLeafScaleNearFlower:
		c.LeafScaleNearFlower = v
	}
}
