package emath

import "math"

// A Gaussian is a normal distribution N(Mean, Std^2). The synthesis
// code uses N(0.5, 1/6^2), which puts almost all of its mass in [0,1].
type Gaussian struct {
	Mean float64
	Std  float64
}

// Erfinv is the inverse error function, via Giles' rational
// approximation ("Approximating the erfinv function", GPU Gems 4). It
// branches on w = -log(1-x^2); we keep the one copy here so CDF and
// InvCDF can't drift apart. Returns +/-Inf at +/-1, NaN outside [-1,1].
func Erfinv(x float64) float64 {
	switch {
	case math.IsNaN(x) || x < -1 || x > 1:
		return math.NaN()
	case x == 1:
		return math.Inf(1)
	case x == -1:
		return math.Inf(-1)
	}

	var p float64
	w := -math.Log((1.0 - x) * (1.0 + x))
	if w < 5.0 {
		w = w - 2.5
		p = 2.81022636e-08
		p = 3.43273939e-07 + p*w
		p = -3.5233877e-06 + p*w
		p = -4.39150654e-06 + p*w
		p = 0.00021858087 + p*w
		p = -0.00125372503 + p*w
		p = -0.00417768164 + p*w
		p = 0.246640727 + p*w
		p = 1.50140941 + p*w
	} else {
		w = math.Sqrt(w) - 3.0
		p = -0.000200214257
		p = 0.000100950558 + p*w
		p = 0.00134934322 + p*w
		p = -0.00367342844 + p*w
		p = 0.00573950773 + p*w
		p = -0.0076224613 + p*w
		p = 0.00943887047 + p*w
		p = 1.00167406 + p*w
		p = 2.83297682 + p*w
	}
	return p * x
}

// CDF maps x to a cumulative probability in [0,1].
func (g Gaussian)CDF(x float64) float64 { return CDF(x, g.Mean, g.Std) }

// InvCDF maps a cumulative probability u back to x.
func (g Gaussian)InvCDF(u float64) float64 { return InvCDF(u, g.Mean, g.Std) }

func CDF(x, mu, sigma float64) float64 {
	if sigma <= 0 {
		if x < mu { return 0.0 }
		return 1.0
	}
	return 0.5 * (1.0 + math.Erf((x-mu) / (sigma*math.Sqrt2)))
}

// InvCDF with sigma == 0 is the delta at mu, whatever u is.
func InvCDF(u, mu, sigma float64) float64 {
	if sigma <= 0 {
		return mu
	}
	return sigma*math.Sqrt2*Erfinv(2.0*u - 1.0) + mu
}
