// Package TxRx implements both ends of the Alamouti link: the transmitter draws bits, maps
// them to symbols and builds the space-time code matrix, the receiver combines the branches
// of all receive antennas and makes hard decisions.
package TxRx

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"

	"golang.org/x/exp/rand"

	"github.com/wiless/alamouti"
	"github.com/wiless/vlib"
)

// DefaultScale keeps the total energy per bit independent of the two transmit antennas.
var DefaultScale = 1 / math.Sqrt2

// ModulateInto writes the constellation point of every value of in to dst, which must be at
// least as long as in. A value outside the alphabet of mod is rejected with its index.
func ModulateInto(mod alamouti.Modulation, dst vlib.VectorC, in []uint8) error {
	if len(dst) < len(in) {
		return alamouti.NewSizeError("symbols", len(dst), "at least the input length")
	}
	for i, v := range in {
		s, ok := mod.Symbol(v)
		if !ok {
			return alamouti.NewSizeError("symbol["+strconv.Itoa(i)+"]", v,
				fmt.Sprintf("in 0..%d for %v", mod.Order()-1, mod))
		}
		dst[i] = s
	}
	return nil
}

// Modulate maps in through the constellation of mod.
func Modulate(mod alamouti.Modulation, in []uint8) (vlib.VectorC, error) {
	result := vlib.NewVectorC(len(in))
	if err := ModulateInto(mod, result, in); err != nil {
		return nil, err
	}
	return result, nil
}

// EncodePair builds the un-normalized Alamouti matrix of the codeword (s1, s2).
func EncodePair(s1, s2 complex128) alamouti.TxMatrix {
	var m alamouti.TxMatrix
	m[0][0], m[0][1] = s1, -cmplx.Conj(s2)
	m[1][0], m[1][1] = s2, cmplx.Conj(s1)
	return m
}

// Transmitter is the BPSK source and Alamouti encoder of the link.
type Transmitter struct {
	rng   *rand.Rand
	Scale float64 // amplitude applied to every transmitted sample
}

func NewTransmitter(rng *rand.Rand) *Transmitter {
	return &Transmitter{rng: rng, Scale: DefaultScale}
}

// Modulation is the symbol mapping of the source.
func (t *Transmitter) Modulation() alamouti.Modulation {
	return alamouti.BPSK
}

// SourceInto fills bits with independent equiprobable bits and symbols with their BPSK
// mapping. symbols must be at least as long as bits.
func (t *Transmitter) SourceInto(bits []uint8, symbols vlib.VectorC) error {
	for i := range bits {
		bits[i] = uint8(t.rng.Uint64() & 1)
	}
	return ModulateInto(t.Modulation(), symbols, bits)
}

// Source draws n bits and returns them with their symbols.
func (t *Transmitter) Source(n int) ([]uint8, vlib.VectorC, error) {
	bits := make([]uint8, n)
	symbols := vlib.NewVectorC(n)
	if err := t.SourceInto(bits, symbols); err != nil {
		return nil, nil, err
	}
	return bits, symbols, nil
}

// EncodeInto groups symbols in pairs and writes one scaled code matrix per pair into dst.
// An odd number of symbols is rejected, dst must hold len(symbols)/2 matrices.
func (t *Transmitter) EncodeInto(dst []alamouti.TxMatrix, symbols vlib.VectorC) error {
	if len(symbols)%2 != 0 {
		return alamouti.NewSizeError("symbols", len(symbols), "even")
	}
	if len(dst) < len(symbols)/2 {
		return alamouti.NewSizeError("codewords", len(dst), "at least half the symbol count")
	}
	for i := 0; i < len(symbols); i += 2 {
		dst[i/2] = EncodePair(symbols[i], symbols[i+1]).Scale(t.Scale)
	}
	return nil
}

func (t *Transmitter) Encode(symbols vlib.VectorC) ([]alamouti.TxMatrix, error) {
	if len(symbols)%2 != 0 {
		return nil, alamouti.NewSizeError("symbols", len(symbols), "even")
	}
	result := make([]alamouti.TxMatrix, len(symbols)/2)
	return result, t.EncodeInto(result, symbols)
}

// Antennas flattens a sequence of code matrices into the sample streams of antenna 0 and 1.
func Antennas(blocks []alamouti.TxMatrix) (ant0, ant1 vlib.VectorC) {
	ant0 = vlib.NewVectorC(2 * len(blocks))
	ant1 = vlib.NewVectorC(2 * len(blocks))
	for i, m := range blocks {
		a0, a1 := m.Antenna(0), m.Antenna(1)
		ant0[2*i], ant0[2*i+1] = a0[0], a0[1]
		ant1[2*i], ant1[2*i+1] = a1[0], a1[1]
	}
	return ant0, ant1
}
