package sweep

import (
	"fmt"
	"math"
	"runtime"

	ms "github.com/mitchellh/mapstructure"

	"github.com/wiless/alamouti"
	"github.com/wiless/vlib"
)

// Setting is the complete configuration of one Eb/N0 sweep.
type Setting struct {
	Bits      int     `mapstructure:"bits" json:"bits"`       // bits per Eb/N0 point, even
	StartDb   float64 `mapstructure:"start" json:"start"`     // first Eb/N0 in dB
	EndDb     float64 `mapstructure:"end" json:"end"`         // last Eb/N0 in dB, inclusive
	StepDb    float64 `mapstructure:"step" json:"step"`
	NRx       int     `mapstructure:"nrx" json:"nrx"`         // receive antennas
	Seed      uint64  `mapstructure:"seed" json:"seed"`       // 0 picks a seed at Run
	Workers   int     `mapstructure:"workers" json:"workers"` // concurrent Eb/N0 points
	BatchSize int     `mapstructure:"batch" json:"batch"`     // codewords per arena batch
}

func NewSetting() *Setting {
	s := new(Setting)
	s.SetDefaults()
	return s
}

func (s *Setting) SetDefaults() {
	s.Bits = 100000
	s.StartDb = 0
	s.EndDb = 25
	s.StepDb = 1
	s.NRx = 1
	s.Seed = 1
	s.Workers = runtime.GOMAXPROCS(0)
	s.BatchSize = 4096
}

// Decode overlays the values found in m (keys are matched case insensitively, strings are
// converted where possible) on s.
func (s *Setting) Decode(m map[string]interface{}) error {
	dec, err := ms.NewDecoder(&ms.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           s,
	})
	if err != nil {
		return err
	}
	return dec.Decode(m)
}

// MaxPoints bounds the length of the Eb/N0 grid.
const MaxPoints = 10000

// Validate rejects configurations before any sampling happens. The returned error names the
// violated constraint and matches alamouti.ErrInvalidInputSize.
func (s Setting) Validate() error {
	switch {
	case s.Bits <= 0:
		return alamouti.NewSizeError("Bits", s.Bits, "> 0")
	case s.Bits%2 != 0:
		return alamouti.NewSizeError("Bits", s.Bits, "even")
	case s.NRx < 1:
		return alamouti.NewSizeError("NRx", s.NRx, ">= 1")
	case !(s.StepDb > 0) || math.IsInf(s.StepDb, 0):
		return alamouti.NewSizeError("StepDb", s.StepDb, "> 0")
	case math.IsNaN(s.StartDb) || math.IsInf(s.StartDb, 0):
		return alamouti.NewSizeError("StartDb", s.StartDb, "finite")
	case math.IsNaN(s.EndDb) || math.IsInf(s.EndDb, 0):
		return alamouti.NewSizeError("EndDb", s.EndDb, "finite")
	case s.EndDb < s.StartDb:
		return alamouti.NewSizeError("EndDb", s.EndDb, ">= StartDb (non empty range)")
	case (s.EndDb-s.StartDb)/s.StepDb >= MaxPoints:
		return alamouti.NewSizeError("StepDb", s.StepDb, fmt.Sprintf("large enough for at most %d points", MaxPoints))
	case s.Workers < 1:
		return alamouti.NewSizeError("Workers", s.Workers, ">= 1")
	case s.BatchSize < 1:
		return alamouti.NewSizeError("BatchSize", s.BatchSize, ">= 1")
	}
	return nil
}

// EbN0dB returns the inclusive grid StartDb, StartDb+StepDb, ... <= EndDb. Values are
// computed from the index so the step error does not accumulate.
func (s Setting) EbN0dB() vlib.VectorF {
	n := int(math.Floor((s.EndDb-s.StartDb)/s.StepDb+1e-9)) + 1
	if n < 1 {
		return vlib.NewVectorF(0)
	}
	result := vlib.NewVectorF(n)
	for i := range result {
		result[i] = s.StartDb + float64(i)*s.StepDb
	}
	return result
}

// Codewords is the number of Alamouti blocks sent per Eb/N0 point.
func (s Setting) Codewords() int {
	return s.Bits / 2
}
