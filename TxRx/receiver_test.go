package TxRx_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/wiless/alamouti"
	"github.com/wiless/alamouti/TxRx"
)

// received computes the noiseless samples of one antenna for the matrix m.
func received(h [2]complex128, m alamouti.TxMatrix) alamouti.Branch {
	b := alamouti.Branch{H: h}
	for slot := 0; slot < 2; slot++ {
		b.Y[slot] = h[0]*m[0][slot] + h[1]*m[1][slot]
	}
	return b
}

func TestCombineUnitChannel(t *testing.T) {
	h := [2]complex128{1, 0}

	stat, err := TxRx.Combine([]alamouti.Branch{received(h, TxRx.EncodePair(1, 0))})
	require.NoError(t, err)
	assert.Equal(t, complex(1, 0), stat[0])
	assert.Equal(t, complex(0, 0), stat[1])

	stat, err = TxRx.Combine([]alamouti.Branch{received(h, TxRx.EncodePair(-1, 1))})
	require.NoError(t, err)
	assert.Equal(t, complex(-1, 0), stat[0])
	assert.Equal(t, complex(1, 0), stat[1])
}

func TestCombineRecoversSymbols(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for nrx := 1; nrx <= 4; nrx++ {
		for trial := 0; trial < 50; trial++ {
			s1 := complex(rng.NormFloat64(), rng.NormFloat64())
			s2 := complex(rng.NormFloat64(), rng.NormFloat64())
			m := TxRx.EncodePair(s1, s2)
			branches := make([]alamouti.Branch, nrx)
			for r := range branches {
				h := [2]complex128{
					complex(rng.NormFloat64(), rng.NormFloat64()),
					complex(rng.NormFloat64(), rng.NormFloat64()),
				}
				branches[r] = received(h, m)
			}
			stat, err := TxRx.Combine(branches)
			require.NoError(t, err)
			assert.InDelta(t, real(s1), real(stat[0]), 1e-9)
			assert.InDelta(t, imag(s1), imag(stat[0]), 1e-9)
			assert.InDelta(t, real(s2), real(stat[1]), 1e-9)
			assert.InDelta(t, imag(s2), imag(stat[1]), 1e-9)
		}
	}
}

// A dead antenna must not disturb the others when numerators and powers are summed.
func TestCombineSumsBranches(t *testing.T) {
	m := TxRx.EncodePair(1, -1)
	live := received([2]complex128{0.3 - 0.2i, -0.7i}, m)
	dead := received([2]complex128{0, 0}, m)
	stat, err := TxRx.Combine([]alamouti.Branch{dead, live, dead})
	require.NoError(t, err)
	assert.InDelta(t, 1, real(stat[0]), 1e-12)
	assert.InDelta(t, -1, real(stat[1]), 1e-12)
}

func TestCombineDegenerate(t *testing.T) {
	b := alamouti.Branch{Y: [2]complex128{0.5, -0.1}}
	stat, err := TxRx.Combine([]alamouti.Branch{b, b})
	assert.True(t, errors.Is(err, alamouti.ErrDegenerateChannel))
	assert.Equal(t, alamouti.Statistic{}, stat)
}

func TestDetect(t *testing.T) {
	var tally alamouti.BERPoint
	TxRx.Detect(alamouti.Statistic{0.2, -0.1}, [2]uint8{1, 0}, &tally)
	assert.Equal(t, 0, tally.Errors)
	TxRx.Detect(alamouti.Statistic{0, -0.1}, [2]uint8{1, 1}, &tally)
	assert.Equal(t, 2, tally.Errors)
	assert.Equal(t, 4, tally.Bits)
	assert.Equal(t, uint8(0), TxRx.Decide(0))
}

func TestReceiverDegenerateGuesses(t *testing.T) {
	rx := TxRx.NewReceiver(rand.New(rand.NewSource(5)))
	var tally alamouti.BERPoint
	zero := []alamouti.Branch{{}}
	for i := 0; i < 5000; i++ {
		rx.Receive(zero, [2]uint8{1, 0}, &tally)
	}
	assert.Equal(t, 5000, tally.Degenerate)
	assert.Equal(t, 10000, tally.Bits)
	tally.Finalize()
	assert.InDelta(t, 0.5, tally.BER, 0.03)
}
