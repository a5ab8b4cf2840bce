package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/wiless/alamouti"
	"github.com/wiless/alamouti/sweep"
	"github.com/wiless/alamouti/theory"
	"github.com/wiless/vlib"
)

// PrintTable writes one line per Eb/N0 point; the theory column is green when it lies in
// the confidence band of the simulated value and red otherwise.
func PrintTable(w io.Writer, rows []sweep.Row) {
	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Eb/N0 (dB)", "Errors", "Bits", "Degenerate", "BER", "95% band", "Theory"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range rows {
		theoryStr := fmt.Sprintf("%.3e", r.TheoryBER)
		if r.Errors > 0 && r.Agrees() {
			theoryStr = ok(theoryStr)
		} else if r.Errors > 0 {
			theoryStr = bad(theoryStr)
		}
		table.Append([]string{
			fmt.Sprintf("%.2f", r.EbN0dB),
			fmt.Sprint(r.Errors),
			fmt.Sprint(r.Bits),
			fmt.Sprint(r.Degenerate),
			fmt.Sprintf("%.3e", r.BER),
			fmt.Sprintf("[%.2e, %.2e]", r.Lower, r.Upper),
			theoryStr,
		})
	}
	table.Render()
}

// references are the closed form curves drawn next to the simulation: the single antenna
// link, receive MRC with the same number of antennas and Alamouti with nrx antennas.
func references(nrx int) []theory.ModelSetting {
	settings := []theory.ModelSetting{theory.NewModelSetting(theory.MRC, 1)}
	if nrx > 1 {
		settings = append(settings, theory.NewModelSetting(theory.MRC, nrx))
	} else {
		settings = append(settings, theory.NewModelSetting(theory.MRC, 2))
	}
	return append(settings, theory.NewModelSetting(theory.Alamouti, nrx))
}

// WritePlot writes a MATLAB/Octave script that draws the simulated curve over the
// references with semilogy. The file is created in the working directory.
func WritePlot(fname string, curve alamouti.Curve, nrx int) error {
	matlab := vlib.NewMatlab(fname)
	matlab.Silent = true
	matlab.Json = false

	grid := curve.EbN0dB()
	matlab.Export("EbN0dB", grid)
	matlab.Export("simBer", curve.BER())

	markers := []string{"^", "d", "s", "v"}
	var legend []string
	matlab.Command("figure;")
	for i, s := range references(nrx) {
		m, err := theory.NewModel(s)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("theoryBer%d", i)
		matlab.Export(name, theory.Curve(m, grid))
		matlab.Command(fmt.Sprintf("semilogy(EbN0dB, %s, '-%s'); hold on;", name, markers[i%len(markers)]))
		legend = append(legend, "'"+s.Label()+"'")
	}
	matlab.Command("semilogy(EbN0dB, simBer, 'o', 'LineWidth', 2);")
	legend = append(legend, fmt.Sprintf("'sim (nTx=2, nRx=%d, Alamouti)'", nrx))
	matlab.Command("legend(" + strings.Join(legend, ", ") + ", 'Location', 'southwest');")
	matlab.Command("title('BER for BPSK and Alamouti in Rayleigh Fading Environment');")
	matlab.Command("xlabel('Eb / N0 (dB)'); ylabel('BER'); grid on;")
	if err := matlab.Close(); err != nil {
		return err
	}
	// NewMatlab only logs a failed create
	_, err := os.Stat(matlab.Name())
	return err
}
