// Flat block-fading channel between the two Alamouti transmit antennas and NRx receive
// antennas, with additive white Gaussian noise at every receive antenna.
package channel

import (
	"math"

	"golang.org/x/exp/rand"

	"github.com/wiless/alamouti"
	"github.com/wiless/vlib"
)

type FadingType int

var FadingTypes = [...]string{
	"Rayleigh",
	"Fixed",
}

func (f FadingType) String() string {
	if int(f) < 0 || int(f) >= len(FadingTypes) {
		return "Unknown-Fading"
	}
	return FadingTypes[f]
}

const (
	// Rayleigh draws i.i.d. circularly symmetric complex Gaussian coefficients per codeword.
	Rayleigh FadingType = iota
	// Fixed uses Channel.Coefficients on every receive antenna for every codeword.
	Fixed
)

// NoiseScale is the amplitude applied to unit variance noise for a per bit SNR of ebn0dB,
// i.e. 10^(-ebn0dB/20).
func NoiseScale(ebn0dB float64) float64 {
	return 1 / math.Sqrt(vlib.InvDb(ebn0dB))
}

type Channel struct {
	NRx          int
	Fading       FadingType
	Variance     float64                   // variance of every Rayleigh coefficient
	Coefficients [alamouti.NTx]complex128 // used by Fixed fading
	noiseScale   float64
	rng          *rand.Rand
}

// New returns a Rayleigh channel with unit variance coefficients towards nrx receive
// antennas, noiseless until SetEbN0 or SetNoiseScale is called.
func New(nrx int, rng *rand.Rand) (*Channel, error) {
	if nrx < 1 {
		return nil, alamouti.NewSizeError("NRx", nrx, ">= 1")
	}
	return &Channel{
		NRx:      nrx,
		Fading:   Rayleigh,
		Variance: 1,
		rng:      rng,
	}, nil
}

func (c *Channel) SetEbN0(ebn0dB float64) {
	c.noiseScale = NoiseScale(ebn0dB)
}

func (c *Channel) SetNoiseScale(scale float64) {
	c.noiseScale = scale
}

func (c *Channel) NoiseScale() float64 {
	return c.noiseScale
}

// gaussian draws a circularly symmetric complex Gaussian sample of the given variance.
func (c *Channel) gaussian(variance float64) complex128 {
	sigma := math.Sqrt(variance / 2)
	re := c.rng.NormFloat64()
	im := c.rng.NormFloat64()
	return complex(sigma*re, sigma*im)
}

// DrawFading fills the coefficients of every branch for one codeword.
func (c *Channel) DrawFading(branches []alamouti.Branch) {
	for r := range branches {
		switch c.Fading {
		case Fixed:
			branches[r].H = c.Coefficients
		default:
			for t := range branches[r].H {
				branches[r].H[t] = c.gaussian(c.Variance)
			}
		}
	}
}

// Propagate computes the received samples of every branch for the code matrix tx, using the
// coefficients already held in the branches:
//
//	y[slot] = h1*tx[0][slot] + h2*tx[1][slot] + noiseScale*n
func (c *Channel) Propagate(tx alamouti.TxMatrix, branches []alamouti.Branch) {
	for r := range branches {
		h := branches[r].H
		for slot := 0; slot < 2; slot++ {
			y := h[0]*tx[0][slot] + h[1]*tx[1][slot]
			if c.noiseScale != 0 {
				y += complex(c.noiseScale, 0) * c.gaussian(1)
			}
			branches[r].Y[slot] = y
		}
	}
}

// Transmit draws fresh fading for one codeword and propagates tx through it. branches must
// hold NRx entries.
func (c *Channel) Transmit(tx alamouti.TxMatrix, branches []alamouti.Branch) {
	c.DrawFading(branches)
	c.Propagate(tx, branches)
}
