// Package regression fits ordinary least squares models and reports the
// usual inference quantities. Solutions go through a singular value
// decomposition of the design matrix, so rank-deficient designs resolve to
// the minimum-norm coefficient vector instead of failing.
package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	apperrors "filmstats/internal/errors"
)

// Term holds one fitted coefficient and its inference statistics.
type Term struct {
	Name        string
	Coefficient float64
	StdErr      float64
	TStat       float64
	PValue      float64
}

// Fit is the result of an ordinary least squares fit. Terms lists the
// intercept first, then one term per predictor in input order.
type Fit struct {
	Terms   []Term
	N       int
	Rank    int
	DFResid int
	R2      float64
	AdjR2   float64
}

// OLS regresses y on the given predictor columns plus an intercept.
//
// Every predictor must have len(y) observations. The fit needs more
// observations than model terms; anything less is reported as a
// precondition failure. Standard errors, t statistics and p values come out
// NaN when the residual degrees of freedom hit zero.
func OLS(y []float64, predictors [][]float64, names []string) (*Fit, error) {
	n := len(y)
	p := len(predictors) + 1

	if len(names) != len(predictors) {
		return nil, apperrors.NewPreconditionError(
			fmt.Sprintf("regression needs one name per predictor, got %d names for %d predictors", len(names), len(predictors)))
	}
	for i, col := range predictors {
		if len(col) != n {
			return nil, apperrors.NewPreconditionError(
				fmt.Sprintf("predictor %s has %d observations, response has %d", names[i], len(col), n)).
				WithContext("predictor", names[i])
		}
	}
	if n < p {
		return nil, apperrors.NewPreconditionError(
			fmt.Sprintf("regression with %d terms needs at least %d rows, got %d", p, p, n)).
			WithContext("rows", n).
			WithContext("terms", p)
	}

	x := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j, col := range predictors {
			x.Set(i, j+1, col[i])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(x, mat.SVDThin); !ok {
		return nil, apperrors.NewPreconditionError("singular value decomposition of the design matrix did not converge")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	// Singular values below this are treated as zero when inverting.
	tol := float64(n) * s[0] * machEps
	rank := 0
	for _, sv := range s {
		if sv > tol {
			rank++
		}
	}

	// Minimum-norm solution: beta = V * S^+ * U^T * y.
	beta := make([]float64, p)
	for k := 0; k < rank; k++ {
		var uty float64
		for i := 0; i < n; i++ {
			uty += u.At(i, k) * y[i]
		}
		scale := uty / s[k]
		for j := 0; j < p; j++ {
			beta[j] += v.At(j, k) * scale
		}
	}

	var sse, tss float64
	ybar := mean(y)
	for i := 0; i < n; i++ {
		var fitted float64
		for j := 0; j < p; j++ {
			fitted += x.At(i, j) * beta[j]
		}
		resid := y[i] - fitted
		sse += resid * resid
		dev := y[i] - ybar
		tss += dev * dev
	}

	r2 := math.NaN()
	if tss > 0 {
		r2 = 1 - sse/tss
	}

	dfResid := n - rank
	adjR2 := math.NaN()
	if dfResid > 0 && !math.IsNaN(r2) {
		adjR2 = 1 - (1-r2)*float64(n-1)/float64(dfResid)
	}

	sigma2 := math.NaN()
	if dfResid > 0 {
		sigma2 = sse / float64(dfResid)
	}

	terms := make([]Term, p)
	termNames := append([]string{"intercept"}, names...)
	var tdist distuv.StudentsT
	if dfResid > 0 {
		tdist = distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dfResid)}
	}
	for j := 0; j < p; j++ {
		// Var(beta_j) = sigma2 * sum_k V[j,k]^2 / s_k^2 over retained
		// singular values.
		var vsum float64
		for k := 0; k < rank; k++ {
			vjk := v.At(j, k)
			vsum += vjk * vjk / (s[k] * s[k])
		}

		se := math.NaN()
		tstat := math.NaN()
		pval := math.NaN()
		if dfResid > 0 {
			se = math.Sqrt(sigma2 * vsum)
			tstat = beta[j] / se
			if !math.IsNaN(tstat) {
				pval = 2 * tdist.Survival(math.Abs(tstat))
			}
		}

		terms[j] = Term{
			Name:        termNames[j],
			Coefficient: beta[j],
			StdErr:      se,
			TStat:       tstat,
			PValue:      pval,
		}
	}

	return &Fit{
		Terms:   terms,
		N:       n,
		Rank:    rank,
		DFResid: dfResid,
		R2:      r2,
		AdjR2:   adjR2,
	}, nil
}

const machEps = 2.220446049250313e-16

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
