// Package alamouti holds the value types shared by the Alamouti space-time block code
// simulation: codewords, transmit matrices, per-antenna receive branches and BER curves.
package alamouti

import (
	"math/cmplx"

	"github.com/wiless/vlib"
)

// NTx is the number of transmit antennas of the Alamouti scheme.
const NTx = 2

// Modulation selects the symbol mapping. The link simulation is BPSK, the streaming encoder
// block is QPSK.
type Modulation int

var Modulations = [...]string{
	"BPSK",
	"QPSK",
}

func (m Modulation) String() string {
	if int(m) < 0 || int(m) >= len(Modulations) {
		return "Unknown-Modulation"
	}
	return Modulations[m]
}

const (
	BPSK Modulation = iota
	QPSK
)

var constellations = [...][]complex128{
	BPSK: {-1, 1},
	QPSK: {complex(1, 1), complex(1, -1), complex(-1, 1), complex(-1, -1)},
}

// Order is the number of constellation points, 0 for an unknown modulation.
func (m Modulation) Order() int {
	if int(m) < 0 || int(m) >= len(constellations) {
		return 0
	}
	return len(constellations[m])
}

// Symbol maps the value v in 0..Order()-1 to its constellation point. BPSK maps 0 to -1 and
// 1 to +1, QPSK maps 00, 01, 10, 11 to 1+1j, 1-1j, -1+1j, -1-1j.
func (m Modulation) Symbol(v uint8) (complex128, bool) {
	if int(v) >= m.Order() {
		return 0, false
	}
	return constellations[m][v], true
}

// Codeword is the pair of symbols (s1, s2) carried by one Alamouti block.
type Codeword [2]complex128

// TxMatrix is the 2x2 Alamouti code matrix, one row per transmit antenna and one column per
// time slot:
//
//	antenna 0 : [ s1 , -conj(s2) ]
//	antenna 1 : [ s2 ,  conj(s1) ]
type TxMatrix [NTx][2]complex128

// Antenna returns the two time slot samples sent on transmit antenna i.
func (t TxMatrix) Antenna(i int) [2]complex128 {
	return t[i]
}

// Scale returns a copy of t with every entry multiplied by f.
func (t TxMatrix) Scale(f float64) TxMatrix {
	c := complex(f, 0)
	for a := range t {
		t[a][0] *= c
		t[a][1] *= c
	}
	return t
}

// InnerProduct is the sum over both time slots of row0 * conj(row1). It is zero for every
// well formed Alamouti matrix.
func (t TxMatrix) InnerProduct() complex128 {
	return t[0][0]*cmplx.Conj(t[1][0]) + t[0][1]*cmplx.Conj(t[1][1])
}

// Branch is what one receive antenna sees during one codeword. H holds the fading coefficient
// from transmit antenna 0 and 1, held constant over both slots; Y holds the received samples
// of time slot 1 and 2.
type Branch struct {
	H [NTx]complex128
	Y [2]complex128
}

// Statistic holds the combined decision statistics of s1 and s2.
type Statistic [2]complex128

// BERPoint is the error tally of one Eb/N0 value.
type BERPoint struct {
	EbN0dB     float64
	Errors     int
	Bits       int
	Degenerate int // codewords whose channel was identically zero
	BER        float64
}

// Reset clears the tally for a fresh iteration at ebn0dB.
func (p *BERPoint) Reset(ebn0dB float64) {
	*p = BERPoint{EbN0dB: ebn0dB}
}

// Finalize computes BER = Errors/Bits.
func (p *BERPoint) Finalize() {
	if p.Bits == 0 {
		p.BER = 0
		return
	}
	p.BER = float64(p.Errors) / float64(p.Bits)
}

// Curve is an ordered sequence of BER points, one per swept Eb/N0 value.
type Curve []BERPoint

func (c Curve) EbN0dB() vlib.VectorF {
	result := vlib.NewVectorF(len(c))
	for i, p := range c {
		result[i] = p.EbN0dB
	}
	return result
}

func (c Curve) BER() vlib.VectorF {
	result := vlib.NewVectorF(len(c))
	for i, p := range c {
		result[i] = p.BER
	}
	return result
}

// Equal reports whether both curves carry identical tallies.
func (c Curve) Equal(o Curve) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}
