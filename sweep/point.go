package sweep

import (
	"context"

	"golang.org/x/exp/rand"

	"github.com/wiless/alamouti"
	"github.com/wiless/alamouti/TxRx"
	"github.com/wiless/alamouti/channel"
	"github.com/wiless/vlib"
)

// arena holds the per codeword state of one batch. Buffers are allocated once per point and
// resliced for the last, shorter batch.
type arena struct {
	nrx      int
	bits     []uint8
	symbols  vlib.VectorC
	blocks   []alamouti.TxMatrix
	branches []alamouti.Branch // nrx consecutive entries per codeword
}

func newArena(codewords, nrx int) *arena {
	return &arena{
		nrx:      nrx,
		bits:     make([]uint8, 2*codewords),
		symbols:  vlib.NewVectorC(2 * codewords),
		blocks:   make([]alamouti.TxMatrix, codewords),
		branches: make([]alamouti.Branch, codewords*nrx),
	}
}

// batch returns the arena restricted to the first n codewords.
func (a *arena) batch(n int) *arena {
	return &arena{
		nrx:      a.nrx,
		bits:     a.bits[:2*n],
		symbols:  a.symbols[:2*n],
		blocks:   a.blocks[:n],
		branches: a.branches[:n*a.nrx],
	}
}

func (a *arena) trial(i int) []alamouti.Branch {
	return a.branches[i*a.nrx : (i+1)*a.nrx]
}

func (a *arena) sent(i int) [2]uint8 {
	return [2]uint8{a.bits[2*i], a.bits[2*i+1]}
}

// pointSeed derives the generator seed of stream idx from seed. The sweep uses it per Eb/N0
// point so every point is reproducible no matter which worker runs it.
func pointSeed(seed uint64, idx int) uint64 {
	// splitmix64
	z := seed + uint64(idx+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// RunPoint simulates s.Bits bits at ebn0dB with a generator seeded by seed. The context is
// checked between batches; a cancelled point is discarded and ctx.Err() returned.
func RunPoint(ctx context.Context, s Setting, ebn0dB float64, seed uint64) (alamouti.BERPoint, error) {
	if err := s.Validate(); err != nil {
		return alamouti.BERPoint{}, err
	}
	return runPoint(ctx, s, ebn0dB, channel.NoiseScale(ebn0dB), seed)
}

func runPoint(ctx context.Context, s Setting, ebn0dB, noiseScale float64, seed uint64) (alamouti.BERPoint, error) {
	var tally alamouti.BERPoint
	tally.Reset(ebn0dB)

	// one stream per stage keeps the draws independent of the batch size
	tx := TxRx.NewTransmitter(rand.New(rand.NewSource(pointSeed(seed, 0))))
	ch, err := channel.New(s.NRx, rand.New(rand.NewSource(pointSeed(seed, 1))))
	rx := TxRx.NewReceiver(rand.New(rand.NewSource(pointSeed(seed, 2))))
	if err != nil {
		return tally, err
	}
	ch.SetNoiseScale(noiseScale)

	total := s.Codewords()
	size := s.BatchSize
	if size > total {
		size = total
	}
	mem := newArena(size, s.NRx)

	for done := 0; done < total; done += size {
		if err := ctx.Err(); err != nil {
			return tally, err
		}
		n := size
		if total-done < n {
			n = total - done
		}
		b := mem.batch(n)
		if err := tx.SourceInto(b.bits, b.symbols); err != nil {
			return tally, err
		}
		if err := tx.EncodeInto(b.blocks, b.symbols); err != nil {
			return tally, err
		}
		for i := range b.blocks {
			branches := b.trial(i)
			ch.Transmit(b.blocks[i], branches)
			rx.Receive(branches, b.sent(i), &tally)
		}
	}
	tally.Finalize()
	return tally, nil
}
