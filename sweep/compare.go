package sweep

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/wiless/alamouti"
	"github.com/wiless/alamouti/theory"
)

// Row pairs a simulated point with the reference value and the confidence band of the
// simulated BER.
type Row struct {
	alamouti.BERPoint
	TheoryBER float64
	Lower     float64
	Upper     float64
}

// Agrees reports whether the reference value lies inside the confidence band.
func (r Row) Agrees() bool {
	return r.TheoryBER >= r.Lower && r.TheoryBER <= r.Upper
}

// Wilson is the Wilson score interval of errors out of n trials at the given confidence
// level (e.g. 0.95). No errors gives a lower bound of exactly 0, n errors an upper bound of 1.
func Wilson(errors, n int, level float64) (lower, upper float64) {
	if n <= 0 {
		return 0, 1
	}
	z := distuv.UnitNormal.Quantile(1 - (1-level)/2)
	nf := float64(n)
	p := float64(errors) / nf
	z2 := z * z
	centre := (p + z2/(2*nf)) / (1 + z2/nf)
	half := z / (1 + z2/nf) * math.Sqrt(p*(1-p)/nf+z2/(4*nf*nf))
	lower, upper = math.Max(0, centre-half), math.Min(1, centre+half)
	// the bounds are exact at the edges, the formula leaves rounding residue there
	if errors <= 0 {
		lower = 0
	}
	if errors >= n {
		upper = 1
	}
	return lower, upper
}

// Compare evaluates m on the grid of curve.
func Compare(curve alamouti.Curve, m theory.Model, level float64) []Row {
	rows := make([]Row, len(curve))
	for i, p := range curve {
		rows[i].BERPoint = p
		rows[i].TheoryBER = m.BER(p.EbN0dB)
		rows[i].Lower, rows[i].Upper = Wilson(p.Errors, p.Bits, level)
	}
	return rows
}

// LogDeviation is the mean of |log10(simulated/theory)| over the rows that observed at least
// one error; 1 means the curves are an order of magnitude apart on average.
func LogDeviation(rows []Row) float64 {
	var dev []float64
	for _, r := range rows {
		if r.Errors == 0 || r.TheoryBER <= 0 {
			continue
		}
		dev = append(dev, math.Abs(math.Log10(r.BER/r.TheoryBER)))
	}
	if len(dev) == 0 {
		return math.NaN()
	}
	return stat.Mean(dev, nil)
}
