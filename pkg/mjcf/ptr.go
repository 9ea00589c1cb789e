package mjcf

import v3 "github.com/deadsy/sdfx/vec/v3"

func cloneVec(v *v3.Vec) *v3.Vec {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
