package regression

import (
	"math"
)

// VIF reports how much a predictor's variance is inflated by its linear
// relationship with the other predictors.
type VIF struct {
	Predictor string
	RSquared  float64
	Value     float64
}

// collinearEps bounds how close 1-R^2 may get to zero before the factor is
// reported as infinite.
const collinearEps = 1e-12

// VIFs computes the variance inflation factor of each predictor by
// regressing it on all the others plus an intercept. A predictor that is an
// exact linear combination of the others comes out +Inf. A constant
// predictor has no defined factor and comes out NaN.
func VIFs(predictors [][]float64, names []string) ([]VIF, error) {
	out := make([]VIF, len(predictors))
	for i := range predictors {
		others := make([][]float64, 0, len(predictors)-1)
		otherNames := make([]string, 0, len(predictors)-1)
		for j := range predictors {
			if j == i {
				continue
			}
			others = append(others, predictors[j])
			otherNames = append(otherNames, names[j])
		}

		fit, err := OLS(predictors[i], others, otherNames)
		if err != nil {
			return nil, err
		}

		value := math.NaN()
		switch {
		case math.IsNaN(fit.R2):
		case 1-fit.R2 < collinearEps:
			value = math.Inf(1)
		default:
			value = 1 / (1 - fit.R2)
		}

		out[i] = VIF{Predictor: names[i], RSquared: fit.R2, Value: value}
	}
	return out, nil
}
