package emath

import(
	"math"
	"sort"
)

// Eigen holds the decomposition of a symmetric 3x3 matrix. The
// eigenvectors are the columns of Vectors, and are orthonormal;
// Values[i] goes with column i. They are sorted by descending
// eigenvalue, so column 0 is the principal axis.
type Eigen struct {
	Values    Vec3
	Vectors   Mat3

	Sweeps    int     // how many full Jacobi sweeps were run
	OffNorm   float64 // sqrt of the sum of squared off-diagonal terms, at exit
	Converged bool    // false if we ran out of sweeps; the result is still the best iterate
}

// JacobiSolver finds eigenvalues & eigenvectors with cyclic Jacobi
// rotations. We use it instead of the closed-form cubic, which falls
// apart for near-degenerate covariance matrices (e.g. near-grayscale images).
type JacobiSolver struct {
	Tolerance float64 // relative: stop once OffNorm <= Tolerance * frobenius norm
	MaxSweeps int
}

func NewJacobiSolver() JacobiSolver {
	return JacobiSolver{Tolerance: 1e-12, MaxSweeps: 50}
}

// Solve never errors; a non-converged result is flagged in Eigen.Converged.
func (js JacobiSolver)Solve(m Mat3) Eigen {
	a := m
	v := Identity()

	// Force exact symmetry, trusting the upper triangle.
	if !a.IsSymmetric() {
		a[3] = a[1]
		a[6] = a[2]
		a[7] = a[5]
	}

	frob := 0.0
	for i:=0; i<9; i++ {
		frob += a[i] * a[i]
	}
	frob = math.Sqrt(frob)

	e := Eigen{}
	for e.Sweeps = 0; ; e.Sweeps++ {
		e.OffNorm = offDiagNorm(a)
		if e.OffNorm <= js.Tolerance * frob {
			e.Converged = true
			break
		}
		if e.Sweeps >= js.MaxSweeps {
			break
		}

		for p:=0; p<2; p++ {
			for q:=p+1; q<3; q++ {
				if a.At(p,q) == 0.0 {
					continue
				}
				r := rotation(a, p, q)
				a = r.Transpose().Mult(a).Mult(r)
				a.Set(p, q, 0.0) // the rotation zeroes this, up to rounding
				a.Set(q, p, 0.0)
				v = v.Mult(r)
			}
		}
	}

	e.Values = Vec3{a[0], a[4], a[8]}
	e.Vectors = v
	e.sortAndOrient()

	return e
}

// rotation builds the Jacobi rotation P (Numerical Recipes 11.1) such
// that P^T A P has a zero at (p,q).
func rotation(a Mat3, p, q int) Mat3 {
	apq := a.At(p, q)
	theta := (a.At(q, q) - a.At(p, p)) / (2.0 * apq)

	var t float64
	if math.Abs(theta) > 1e150 {
		t = 1.0 / (2.0 * theta)
	} else {
		t = 1.0 / (math.Abs(theta) + math.Sqrt(theta*theta + 1.0))
		if theta < 0 {
			t = -t
		}
	}
	c := 1.0 / math.Sqrt(t*t + 1.0)
	s := t * c

	r := Identity()
	r.Set(p, p, c)
	r.Set(q, q, c)
	r.Set(p, q, s)
	r.Set(q, p, -s)
	return r
}

func offDiagNorm(a Mat3) float64 {
	return math.Sqrt(2.0 * (a[1]*a[1] + a[2]*a[2] + a[5]*a[5]))
}

// sortAndOrient puts the eigenpairs in descending eigenvalue order, and
// flips each eigenvector so its components sum to >= 0 (ties broken on
// the first non-zero component). This keeps the output deterministic.
func (e *Eigen)sortAndOrient() {
	idx := []int{0, 1, 2}
	sort.SliceStable(idx, func(i, j int) bool { return e.Values[idx[i]] > e.Values[idx[j]] })

	vals := Vec3{}
	vecs := Mat3{}
	for i, k := range idx {
		col := e.Vectors.Column(k)
		if flipSign(col) {
			col = col.Scale(-1.0)
		}
		vals[i] = e.Values[k]
		vecs.SetColumn(i, col)
	}
	e.Values = vals
	e.Vectors = vecs
}

func flipSign(v Vec3) bool {
	if s := v.Sum(); math.Abs(s) > 1e-12 {
		return s < 0
	}
	for i:=0; i<3; i++ {
		if v[i] != 0 {
			return v[i] < 0
		}
	}
	return false
}
