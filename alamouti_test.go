package alamouti_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiless/alamouti"
)

func TestSizeError(t *testing.T) {
	err := alamouti.NewSizeError("Bits", 7, "even")
	require.True(t, errors.Is(err, alamouti.ErrInvalidInputSize))
	assert.False(t, errors.Is(err, alamouti.ErrDegenerateChannel))
	assert.Contains(t, err.Error(), "Bits=7")
	assert.Contains(t, err.Error(), "must be even")

	var serr *alamouti.SizeError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "Bits", serr.Field)
}

func TestTxMatrixScale(t *testing.T) {
	m := alamouti.TxMatrix{{1, -1}, {1i, 2}}
	s := m.Scale(0.5)
	assert.Equal(t, complex(0.5, 0), s[0][0])
	assert.Equal(t, complex(0, 0.5), s[1][0])
	assert.Equal(t, complex(2, 0), m[1][1], "Scale must not modify the receiver")
}

func TestBERPointFinalize(t *testing.T) {
	var p alamouti.BERPoint
	p.Reset(3)
	p.Finalize()
	assert.Equal(t, 0.0, p.BER)

	p.Errors, p.Bits = 5, 1000
	p.Finalize()
	assert.InDelta(t, 0.005, p.BER, 1e-15)
	assert.Equal(t, 3.0, p.EbN0dB)
}

func TestCurveVectors(t *testing.T) {
	c := alamouti.Curve{{EbN0dB: 0, BER: 0.1}, {EbN0dB: 1, BER: 0.05}}
	assert.Equal(t, []float64{0, 1}, []float64(c.EbN0dB()))
	assert.Equal(t, []float64{0.1, 0.05}, []float64(c.BER()))
	assert.True(t, c.Equal(alamouti.Curve{{EbN0dB: 0, BER: 0.1}, {EbN0dB: 1, BER: 0.05}}))
	assert.False(t, c.Equal(c[:1]))
}

func TestModulationString(t *testing.T) {
	assert.Equal(t, "BPSK", alamouti.BPSK.String())
	assert.Equal(t, "QPSK", alamouti.QPSK.String())
	assert.Equal(t, "Unknown-Modulation", alamouti.Modulation(9).String())
}

func TestModulationSymbol(t *testing.T) {
	assert.Equal(t, 2, alamouti.BPSK.Order())
	assert.Equal(t, 4, alamouti.QPSK.Order())
	assert.Equal(t, 0, alamouti.Modulation(-1).Order())

	s, ok := alamouti.BPSK.Symbol(0)
	require.True(t, ok)
	assert.Equal(t, complex(-1, 0), s)
	s, ok = alamouti.QPSK.Symbol(1)
	require.True(t, ok)
	assert.Equal(t, complex(1, -1), s)
	_, ok = alamouti.QPSK.Symbol(4)
	assert.False(t, ok)
	_, ok = alamouti.Modulation(9).Symbol(0)
	assert.False(t, ok)
}

func TestTxMatrixAntenna(t *testing.T) {
	m := alamouti.TxMatrix{{1, -1}, {1i, 2}}
	assert.Equal(t, [2]complex128{1, -1}, m.Antenna(0))
	assert.Equal(t, [2]complex128{1i, 2}, m.Antenna(1))
}
