package TxRx

import (
	"math/cmplx"

	"golang.org/x/exp/rand"

	log "github.com/sirupsen/logrus"

	"github.com/wiless/alamouti"
)

// Combine computes the decision statistics of one codeword from the branches of all receive
// antennas. Per antenna
//
//	num(s1) = conj(h1)*y1 + h2*conj(y2)
//	num(s2) = conj(h2)*y1 - h1*conj(y2)
//
// numerators and channel powers |h1|^2+|h2|^2 are summed over antennas before the division.
// When the summed power is zero the zero statistic is returned with ErrDegenerateChannel.
func Combine(branches []alamouti.Branch) (alamouti.Statistic, error) {
	var num alamouti.Statistic
	var power float64
	for _, b := range branches {
		h1, h2 := b.H[0], b.H[1]
		y1, y2 := b.Y[0], b.Y[1]
		num[0] += cmplx.Conj(h1)*y1 + h2*cmplx.Conj(y2)
		num[1] += cmplx.Conj(h2)*y1 - h1*cmplx.Conj(y2)
		power += real(h1)*real(h1) + imag(h1)*imag(h1) + real(h2)*real(h2) + imag(h2)*imag(h2)
	}
	if power == 0 {
		return alamouti.Statistic{}, alamouti.ErrDegenerateChannel
	}
	g := complex(1/power, 0)
	num[0] *= g
	num[1] *= g
	return num, nil
}

// Decide is the hard decision: 1 if the real part is positive, else 0.
func Decide(stat complex128) uint8 {
	if real(stat) > 0 {
		return 1
	}
	return 0
}

// Detect compares the hard decisions of stat with the sent bits and adds the mismatches to
// the tally.
func Detect(stat alamouti.Statistic, sent [2]uint8, tally *alamouti.BERPoint) {
	for i := range stat {
		if Decide(stat[i]) != sent[i] {
			tally.Errors++
		}
	}
	tally.Bits += len(stat)
}

// Receiver combines, detects and tallies codewords. Its generator resolves codewords lost to
// a degenerate channel by a fair coin so they count as random guesses.
type Receiver struct {
	rng *rand.Rand
}

func NewReceiver(rng *rand.Rand) *Receiver {
	return &Receiver{rng: rng}
}

// Receive processes one codeword observed on branches. It never fails: degenerate codewords
// are counted in tally.Degenerate and guessed.
func (r *Receiver) Receive(branches []alamouti.Branch, sent [2]uint8, tally *alamouti.BERPoint) alamouti.Statistic {
	stat, err := Combine(branches)
	if err != nil {
		tally.Degenerate++
		log.WithField("ebn0", tally.EbN0dB).Debug("Receiver: degenerate codeword, guessing")
		for i := range sent {
			if uint8(r.rng.Uint64()&1) != sent[i] {
				tally.Errors++
			}
		}
		tally.Bits += len(sent)
		return stat
	}
	Detect(stat, sent, tally)
	return stat
}
