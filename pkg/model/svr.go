package model

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// SVR is epsilon-insensitive support vector regression with an RBF kernel.
// The dual is solved by SMO with second order working set selection, and
// predictions are sum_j beta_j*k(x_j,x) + b with a free intercept b.
type SVR struct {
	C       float64 // box constraint
	Epsilon float64 // half-width of the insensitive tube
	Gamma   float64 // RBF width; 0 => 1/(p*Var(X))
	Tol     float64 // KKT violation at which the solver stops
	MaxIter int     // SMO steps; 0 => max(1e7, 100*n)

	sv    [][]float64
	beta  []float64
	b     float64
	gamma float64
}

// SVROption functional config for SVR
type SVROption func(*SVR)

func WithC(c float64) SVROption           { return func(s *SVR) { s.C = c } }
func WithEpsilon(e float64) SVROption     { return func(s *SVR) { s.Epsilon = e } }
func WithGamma(g float64) SVROption       { return func(s *SVR) { s.Gamma = g } }
func WithMaxIter(n int) SVROption         { return func(s *SVR) { s.MaxIter = n } }
func WithTolerance(tol float64) SVROption { return func(s *SVR) { s.Tol = tol } }

// NewSVR returns an SVR with C=1, epsilon=0.1 and the "scale" gamma.
func NewSVR(opts ...SVROption) *SVR {
	s := &SVR{C: 1, Epsilon: 0.1, Tol: 1e-3}
	for _, o := range opts {
		o(s)
	}
	return s
}

// scaleGamma is 1/(p*Var(X)) over every entry of X, or 1 when X is constant.
func scaleGamma(X [][]float64) float64 {
	p := len(X[0])
	flat := make([]float64, 0, len(X)*p)
	for _, row := range X {
		flat = append(flat, row...)
	}
	v := stat.PopVariance(flat, nil)
	if v == 0 || math.IsNaN(v) {
		return 1
	}
	return 1 / (float64(p) * v)
}

func rbf(a, b []float64, gamma float64) float64 {
	return math.Exp(-gamma * euclidSquared(a, b))
}

// tau replaces a non-positive curvature in the two-variable step.
const tau = 1e-12

// smo holds the 2n-variable dual
//
//	min 1/2 a'Qa + p'a  s.t. sum_t s_t a_t = 0, 0 <= a_t <= C
//
// where a_t (t < n) weighs the upper tube edge of row t, a_{t+n} the lower
// one, s_t = +1 for t < n and -1 otherwise, and Q_tu = s_t s_u K(t mod n, u mod n).
type smo struct {
	n     int
	k     *mat.SymDense
	c     float64
	alpha []float64
	grad  []float64
}

func (m *smo) sign(t int) float64 {
	if t < m.n {
		return 1
	}
	return -1
}

func (m *smo) q(t, u int) float64 {
	return m.sign(t) * m.sign(u) * m.k.At(t%m.n, u%m.n)
}

func (m *smo) qd(t int) float64 { return m.k.At(t%m.n, t%m.n) }

func (m *smo) atUpper(t int) bool { return m.alpha[t] >= m.c }
func (m *smo) atLower(t int) bool { return m.alpha[t] <= 0 }

// workingSet picks the maximal violating pair with the second order rule.
// ok is false once the KKT gap is below tol.
func (m *smo) workingSet(tol float64) (i, j int, ok bool) {
	gmax, gmax2 := math.Inf(-1), math.Inf(-1)
	i, j = -1, -1
	for t := range m.alpha {
		if m.sign(t) > 0 {
			if !m.atUpper(t) && -m.grad[t] >= gmax {
				gmax, i = -m.grad[t], t
			}
		} else if !m.atLower(t) && m.grad[t] >= gmax {
			gmax, i = m.grad[t], t
		}
	}
	if i < 0 {
		return -1, -1, false
	}

	objMin := math.Inf(1)
	for t := range m.alpha {
		var diff, quad float64
		if m.sign(t) > 0 {
			if m.atLower(t) {
				continue
			}
			gmax2 = math.Max(gmax2, m.grad[t])
			diff = gmax + m.grad[t]
			quad = m.qd(i) + m.qd(t) - 2*m.sign(i)*m.q(i, t)
		} else {
			if m.atUpper(t) {
				continue
			}
			gmax2 = math.Max(gmax2, -m.grad[t])
			diff = gmax - m.grad[t]
			quad = m.qd(i) + m.qd(t) + 2*m.sign(i)*m.q(i, t)
		}
		if diff <= 0 {
			continue
		}
		if quad <= 0 {
			quad = tau
		}
		if obj := -diff * diff / quad; obj <= objMin {
			objMin, j = obj, t
		}
	}
	if gmax+gmax2 < tol || j < 0 {
		return -1, -1, false
	}
	return i, j, true
}

// step optimises alpha_i and alpha_j analytically and updates the gradient.
func (m *smo) step(i, j int) {
	c := m.c
	ai, aj := m.alpha[i], m.alpha[j]
	qij := m.q(i, j)
	if m.sign(i) != m.sign(j) {
		quad := m.qd(i) + m.qd(j) + 2*qij
		if quad <= 0 {
			quad = tau
		}
		delta := (-m.grad[i] - m.grad[j]) / quad
		diff := ai - aj
		m.alpha[i] += delta
		m.alpha[j] += delta
		if diff > 0 {
			if m.alpha[j] < 0 {
				m.alpha[j], m.alpha[i] = 0, diff
			}
		} else if m.alpha[i] < 0 {
			m.alpha[i], m.alpha[j] = 0, -diff
		}
		if diff > 0 {
			if m.alpha[i] > c {
				m.alpha[i], m.alpha[j] = c, c-diff
			}
		} else if m.alpha[j] > c {
			m.alpha[j], m.alpha[i] = c, c+diff
		}
	} else {
		quad := m.qd(i) + m.qd(j) - 2*qij
		if quad <= 0 {
			quad = tau
		}
		delta := (m.grad[i] - m.grad[j]) / quad
		sum := ai + aj
		m.alpha[i] -= delta
		m.alpha[j] += delta
		if sum > c {
			if m.alpha[i] > c {
				m.alpha[i], m.alpha[j] = c, sum-c
			}
		} else if m.alpha[j] < 0 {
			m.alpha[j], m.alpha[i] = 0, sum
		}
		if sum > c {
			if m.alpha[j] > c {
				m.alpha[j], m.alpha[i] = c, sum-c
			}
		} else if m.alpha[i] < 0 {
			m.alpha[i], m.alpha[j] = 0, sum
		}
	}

	di, dj := m.alpha[i]-ai, m.alpha[j]-aj
	for t := range m.grad {
		m.grad[t] += m.q(i, t)*di + m.q(j, t)*dj
	}
}

// rho is minus the intercept: the mean of s_t*grad_t over free variables,
// or the middle of the feasible interval when none is free.
func (m *smo) rho() float64 {
	ub, lb := math.Inf(1), math.Inf(-1)
	sum, free := 0.0, 0
	for t := range m.alpha {
		yg := m.sign(t) * m.grad[t]
		switch {
		case m.atUpper(t):
			if m.sign(t) < 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		case m.atLower(t):
			if m.sign(t) > 0 {
				ub = math.Min(ub, yg)
			} else {
				lb = math.Max(lb, yg)
			}
		default:
			sum += yg
			free++
		}
	}
	if free > 0 {
		return sum / float64(free)
	}
	return (ub + lb) / 2
}

// Fit solves the dual problem.
func (s *SVR) Fit(X [][]float64, y []float64) error {
	if _, err := checkShape(X, len(y)); err != nil {
		return err
	}
	s.gamma = s.Gamma
	if s.gamma <= 0 {
		s.gamma = scaleGamma(X)
	}

	n := len(X)
	K := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			K.SetSym(i, j, rbf(X[i], X[j], s.gamma))
		}
	}

	m := &smo{n: n, k: K, c: s.C, alpha: make([]float64, 2*n), grad: make([]float64, 2*n)}
	for t := 0; t < n; t++ {
		m.grad[t] = s.Epsilon - y[t]
		m.grad[t+n] = s.Epsilon + y[t]
	}
	maxIter := s.MaxIter
	if maxIter <= 0 {
		maxIter = max(10000000, 100*n)
	}
	for iter := 0; iter < maxIter; iter++ {
		i, j, ok := m.workingSet(s.Tol)
		if !ok {
			break
		}
		m.step(i, j)
	}

	s.b = -m.rho()
	s.sv, s.beta = s.sv[:0], s.beta[:0]
	for t := 0; t < n; t++ {
		if b := m.alpha[t] - m.alpha[t+n]; b != 0 {
			s.sv = append(s.sv, X[t])
			s.beta = append(s.beta, b)
		}
	}
	if len(s.sv) == 0 {
		// every target sits inside the tube around the intercept
		s.sv = [][]float64{X[0]}
		s.beta = []float64{0}
	}
	return nil
}

// SupportVectors is the number of training rows with a non-zero coefficient.
func (s *SVR) SupportVectors() int {
	n := 0
	for _, b := range s.beta {
		if b != 0 {
			n++
		}
	}
	return n
}

// Intercept is the fitted constant term b.
func (s *SVR) Intercept() float64 { return s.b }

// Predict evaluates the kernel expansion for each row.
func (s *SVR) Predict(X [][]float64) ([]float64, error) {
	if len(s.sv) == 0 {
		return nil, ErrNotFitted
	}
	if err := checkPredict(X, len(s.sv[0])); err != nil {
		return nil, err
	}
	out := make([]float64, len(X))
	for i, x := range X {
		v := s.b
		for j, sv := range s.sv {
			v += s.beta[j] * rbf(sv, x, s.gamma)
		}
		out[i] = v
	}
	return out, nil
}
