package stats

import "gonum.org/v1/gonum/stat/distuv"

// NormalQuantile returns the inverse standard normal CDF at p.
func NormalQuantile(p float64) float64 {
	return distuv.UnitNormal.Quantile(p)
}

// ZScore returns the two-sided standard normal multiplier for a confidence
// level given in percent, i.e. the quantile at 0.5(1+level/100).
func ZScore(level float64) float64 {
	return NormalQuantile(0.5 * (1 + level/100))
}
