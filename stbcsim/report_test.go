package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiless/alamouti"
	"github.com/wiless/alamouti/sweep"
	"github.com/wiless/alamouti/theory"
)

func TestPrintTable(t *testing.T) {
	m, err := theory.NewModel(theory.NewModelSetting(theory.Alamouti, 1))
	require.NoError(t, err)
	curve := alamouti.Curve{
		{EbN0dB: 0, Errors: 1151, Bits: 10000, BER: 0.1151},
		{EbN0dB: 20, Errors: 0, Bits: 10000},
	}
	var buf bytes.Buffer
	PrintTable(&buf, sweep.Compare(curve, m, 0.95))
	out := buf.String()
	assert.Contains(t, out, "ERRORS")
	assert.Contains(t, out, "1151")
	assert.Contains(t, out, "1.151e-01")
	assert.Contains(t, out, "20.00")
}

func TestReferences(t *testing.T) {
	refs := references(1)
	require.Len(t, refs, 3)
	assert.Equal(t, theory.MRC, refs[0].Type)
	assert.Equal(t, 2, refs[1].NRx)
	assert.Equal(t, theory.Alamouti, refs[2].Type)

	refs = references(3)
	assert.Equal(t, 3, refs[1].NRx)
	assert.Equal(t, 3, refs[2].NRx)
	assert.Equal(t, 2, refs[2].NTx)
}

func TestWritePlot(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "alamouti_ber.m")
	curve := alamouti.Curve{
		{EbN0dB: 0, Errors: 1151, Bits: 10000, BER: 0.1151},
		{EbN0dB: 5, Errors: 210, Bits: 10000, BER: 0.021},
	}
	require.NoError(t, WritePlot(fname, curve, 1))

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	script := string(data)
	for _, want := range []string{"EbN0dB", "simBer", "theoryBer0", "theoryBer1", "theoryBer2", "semilogy", "legend("} {
		assert.Contains(t, script, want)
	}
	assert.NotContains(t, script, "theoryBer3")
}

func TestWritePlotMissingDir(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "missing", "plot.m")
	assert.Error(t, WritePlot(fname, alamouti.Curve{{EbN0dB: 0}}, 1))
}
