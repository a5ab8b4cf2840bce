package TxRx

import (
	"github.com/wiless/alamouti"
	"github.com/wiless/vlib"
)

// StreamModulation is the symbol mapping of the streaming encoder block.
const StreamModulation = alamouti.QPSK

// EncodeStream maps a stream of packed 2 bit symbols (values 0..3) through the QPSK
// constellation and returns the un-normalized Alamouti sample streams of antenna 0 and 1. Each
// pair of input symbols produces two samples per antenna.
func EncodeStream(in []byte) (ant0, ant1 vlib.VectorC, err error) {
	if len(in)%2 != 0 {
		return nil, nil, alamouti.NewSizeError("stream", len(in), "even")
	}
	symbols, err := Modulate(StreamModulation, in)
	if err != nil {
		return nil, nil, err
	}
	blocks := make([]alamouti.TxMatrix, len(in)/2)
	for i := 0; i < len(symbols); i += 2 {
		blocks[i/2] = EncodePair(symbols[i], symbols[i+1])
	}
	ant0, ant1 = Antennas(blocks)
	return ant0, ant1, nil
}
