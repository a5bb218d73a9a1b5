// Package shrink estimates an optimal per-parameter shrinkage of noisy
// subject-level measurements toward the group mean.
//
// Each subject contributes four split-half estimates of the same
// multivariate statistic: X1/X2 from a half-length split and Xodd/Xeven from
// an orthogonal odd/even split. Differencing the splits isolates pure
// measurement noise from true within-subject instability, which yields a
// decomposition of the total across-subject variance into
//
//   - sampling (noise) variance varU,
//   - intrasession signal variance varW,
//   - between-subject signal variance varX,
//
// and from it an empirical-Bayes blend weight lambda = var_within/varTOT per
// parameter. The shrunk estimate for subject i is
//
//	lambda*mean + (1-lambda)*X_i
//
// a convex combination of the subject's own estimate and the group mean.
//
// The package is pure computation: inputs are never mutated, outputs are
// freshly allocated, and a call holds no state beyond its return values.
// Splitting time series, computing the statistic itself, file I/O and
// plotting all live with the caller.
package shrink
