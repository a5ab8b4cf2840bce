// Closed form bit error rates of BPSK used as references for the simulated curves.
package theory

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/wiless/vlib"
)

type Model interface {
	Set(ModelSetting)
	Get() ModelSetting
	BER(ebn0dB float64) float64
}

type ModelType int

var ModelTypes = [...]string{
	"AWGN",
	"MRC",
	"Alamouti",
}

func (m ModelType) String() string {
	if int(m) < 0 || int(m) >= len(ModelTypes) {
		return "Unknown-Model"
	}
	return ModelTypes[m]
}

const (
	// AWGN is coherent BPSK without fading.
	AWGN ModelType = iota
	// MRC is one transmit antenna and NRx receive antennas in Rayleigh fading.
	MRC
	// Alamouti is the 2 transmit antenna code with NRx receive antennas in Rayleigh fading.
	Alamouti
)

type ModelSetting struct {
	Type ModelType
	NTx  int
	NRx  int
	Name string
}

// Diversity is the number of independently faded branches the model combines.
func (m ModelSetting) Diversity() int {
	return m.NTx * m.NRx
}

// Label is the legend string used when the curve is plotted.
func (m ModelSetting) Label() string {
	if m.Name != "" {
		return m.Name
	}
	return fmt.Sprintf("theory (nTx=%d, nRx=%d, %v)", m.NTx, m.NRx, m.Type)
}

func NewModelSetting(mtype ModelType, nrx int) ModelSetting {
	s := ModelSetting{Type: mtype, NTx: 1, NRx: nrx}
	switch mtype {
	case AWGN:
		s.NRx = 1
	case Alamouti:
		s.NTx = 2
	}
	return s
}

// NewModel returns the model described by setting.
func NewModel(setting ModelSetting) (Model, error) {
	if setting.NRx < 1 {
		return nil, fmt.Errorf("theory: NRx=%d, must be >= 1", setting.NRx)
	}
	var m Model
	switch setting.Type {
	case AWGN:
		m = new(AWGNModel)
	case MRC, Alamouti:
		m = new(RayleighModel)
	default:
		return nil, fmt.Errorf("theory: unknown model type %d", int(setting.Type))
	}
	m.Set(setting)
	return m, nil
}

// Curve evaluates m at every Eb/N0 value.
func Curve(m Model, ebn0dB vlib.VectorF) vlib.VectorF {
	result := vlib.NewVectorF(len(ebn0dB))
	for i, v := range ebn0dB {
		result[i] = m.BER(v)
	}
	return result
}

type AWGNModel struct {
	setting ModelSetting
}

func (a *AWGNModel) Set(s ModelSetting) {
	a.setting = s
}

func (a AWGNModel) Get() ModelSetting {
	return a.setting
}

// BER = Q(sqrt(2 Eb/N0)) = erfc(sqrt(Eb/N0))/2
func (a AWGNModel) BER(ebn0dB float64) float64 {
	return 0.5 * math.Erfc(math.Sqrt(vlib.InvDb(ebn0dB)))
}

// RayleighModel covers maximum ratio combining over L = NTx*NRx i.i.d. Rayleigh branches,
// where the transmit power is split over NTx antennas. NTx=1 gives receive MRC, NTx=2 the
// Alamouti code.
type RayleighModel struct {
	setting ModelSetting
}

func (r *RayleighModel) Set(s ModelSetting) {
	if s.NTx < 1 {
		s.NTx = 1
	}
	r.setting = s
}

func (r RayleighModel) Get() ModelSetting {
	return r.setting
}

func (r RayleighModel) BER(ebn0dB float64) float64 {
	snr := vlib.InvDb(ebn0dB) / float64(r.setting.NTx)
	return DiversityBER(snr, r.setting.Diversity())
}

// DiversityBER is the BPSK error rate of L-branch maximum ratio combining with average SNR
// snr per branch:
//
//	p   = 1/2 - 1/2 (1 + 1/snr)^(-1/2)
//	BER = p^L * sum_{k=0}^{L-1} C(L-1+k, k) (1-p)^k
func DiversityBER(snr float64, L int) float64 {
	if snr <= 0 {
		return 0.5
	}
	p := 0.5 - 0.5/math.Sqrt(1+1/snr)
	sum := 0.0
	for k := 0; k < L; k++ {
		sum += float64(combin.Binomial(L-1+k, k)) * math.Pow(1-p, float64(k))
	}
	return math.Pow(p, float64(L)) * sum
}
