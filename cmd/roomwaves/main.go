package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jero-scafati/roomwaves/internal/acoustic"
	"github.com/jero-scafati/roomwaves/internal/acoustic/bank"
	"github.com/jero-scafati/roomwaves/internal/acoustic/pipeline"
	"github.com/jero-scafati/roomwaves/internal/acoustic/snr"
	"github.com/jero-scafati/roomwaves/internal/acoustic/sweep"
	"github.com/jero-scafati/roomwaves/internal/cli"
	"github.com/jero-scafati/roomwaves/internal/logging"
	"github.com/jero-scafati/roomwaves/internal/ui"
	"github.com/jero-scafati/roomwaves/internal/wavio"
)

// version is set via ldflags at build time.
// Local dev builds: "dev"
// Release builds: git tag (e.g. "0.1.0")
var version = "dev"

// CLI defines the command-line interface.
type CLI struct {
	Version bool `short:"v" help:"Show version information"`

	Analyze    AnalyzeCmd    `cmd:"" help:"Compute ISO 3382 room-acoustic parameters from an impulse response WAV file."`
	Sweep      SweepCmd      `cmd:"" help:"Generate a Farina exponential sine sweep and its inverse filter."`
	Deconvolve DeconvolveCmd `cmd:"" help:"Deconvolve a recorded sweep against its inverse filter to recover an impulse response."`
	SNR        SNRCmd        `cmd:"" help:"Estimate the signal-to-noise ratio of an impulse response."`
}

// AnalyzeCmd runs the full acoustic analysis pipeline over one or more
// impulse response WAV files.
type AnalyzeCmd struct {
	Files      []string `arg:"" name:"files" help:"Impulse response WAV files" type:"existingfile"`
	FilterType string   `help:"Filter bank type" enum:"octave,third-octave" default:"third-octave"`
	WindowMS   float64  `help:"Envelope smoothing window, milliseconds" default:"5.0"`
	BlockMS    float64  `help:"Decay-curve block size, milliseconds" default:"20.0"`
	NoSNR      bool     `help:"Skip per-band SNR estimation"`
	MainsHumHz float64  `help:"Mains-hum advisory tolerance, Hz" default:"2.0"`
}

func (a *AnalyzeCmd) Run() error {
	cfg := acoustic.DefaultConfig()
	if a.FilterType == "octave" {
		cfg.FilterType = bank.Octave
	}
	cfg.SmoothingWindowMS = a.WindowMS
	cfg.BlockMS = a.BlockMS

	model := ui.NewModel(a.Files)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		for i, path := range a.Files {
			p.Send(ui.FileStartMsg{FileIndex: i, FileName: path})

			samples, fs, err := wavio.Load(path)
			if err != nil {
				p.Send(ui.FileCompleteMsg{FileIndex: i, Error: err})
				continue
			}

			stageIdx := 0
			onProgress := func(stage string) {
				stageIdx++
				p.Send(ui.ProgressMsg{
					StageIndex: stageIdx - 1,
					StageName:  stage,
					Progress:   float64(stageIdx) / 4.0,
				})
			}

			result, err := pipeline.Run(samples, float64(fs), cfg, onProgress)
			if err != nil {
				p.Send(ui.FileCompleteMsg{FileIndex: i, Error: err})
				continue
			}

			snrByBand := map[string]float64{}
			if !a.NoSNR {
				bk, err := bank.New(float64(fs), cfg.FilterType)
				if err == nil {
					filtered := bk.Apply(samples)
					for fc, band := range filtered {
						if db, ok, err := snr.Estimate(band, snr.DefaultTailFraction); err == nil && ok {
							snrByBand[acoustic.FcKey(fc)] = db
						}
					}
				}
			}

			advisory := logging.BuildMainsHumAdvisory(result.Bands, a.MainsHumHz)
			report := logging.NewReport(result, snrByBand)
			report.MainsHumAdvisory = advisory

			fmt.Fprintln(os.Stderr, report.String())

			p.Send(ui.FileCompleteMsg{FileIndex: i, BandCount: len(result.Bands)})
		}
		p.Send(ui.AllCompleteMsg{})
	}()

	_, err := p.Run()
	return err
}

// SweepCmd generates a Farina exponential sine sweep and its matched inverse
// filter and reports their lengths; it does not write them to disk.
type SweepCmd struct {
	Duration float64 `help:"Sweep duration, seconds" default:"5.0"`
	Fs       float64 `help:"Sample rate, Hz" default:"48000"`
	FLo      float64 `help:"Sweep start frequency, Hz" default:"20.0"`
	FHi      float64 `help:"Sweep end frequency, Hz" default:"20000.0"`
}

func (s *SweepCmd) Run() error {
	sweepOut, inverseOut, err := sweep.Generate(s.Duration, s.Fs, s.FLo, s.FHi)
	if err != nil {
		return fmt.Errorf("generate sweep: %w", err)
	}
	cli.PrintInfo("Sweep samples", fmt.Sprintf("%d", len(sweepOut)))
	cli.PrintInfo("Inverse filter samples", fmt.Sprintf("%d", len(inverseOut)))
	cli.PrintSuccess("Sweep and inverse filter generated")
	return nil
}

// DeconvolveCmd recovers an impulse response from a recorded sweep and its
// inverse filter via FFT-based linear deconvolution.
type DeconvolveCmd struct {
	Recording string `arg:"" help:"Recorded sweep WAV file" type:"existingfile"`
	Inverse   string `arg:"" help:"Inverse filter WAV file" type:"existingfile"`
}

func (d *DeconvolveCmd) Run() error {
	r, fsR, err := wavio.Load(d.Recording)
	if err != nil {
		return fmt.Errorf("load recording: %w", err)
	}
	g, _, err := wavio.Load(d.Inverse)
	if err != nil {
		return fmt.Errorf("load inverse filter: %w", err)
	}

	result, ok, err := sweep.Deconvolve(r, g, float64(fsR))
	if err != nil {
		return fmt.Errorf("deconvolve: %w", err)
	}
	if !ok {
		cli.PrintWarning("deconvolution result is not computable (zero-energy recording)")
		return nil
	}
	cli.PrintInfo("Impulse response samples", fmt.Sprintf("%d", len(result.AudioData)))
	cli.PrintSuccess("Impulse response recovered")
	return nil
}

// SNRCmd estimates the peak-to-tail-noise signal-to-noise ratio of an
// impulse response WAV file.
type SNRCmd struct {
	File         string  `arg:"" help:"Impulse response WAV file" type:"existingfile"`
	TailFraction float64 `help:"Fraction of the tail treated as noise" default:"0.2"`
}

func (s *SNRCmd) Run() error {
	samples, _, err := wavio.Load(s.File)
	if err != nil {
		return fmt.Errorf("load file: %w", err)
	}

	db, ok, err := snr.Estimate(samples, s.TailFraction)
	if err != nil {
		return fmt.Errorf("estimate SNR: %w", err)
	}
	if !ok {
		cli.PrintWarning("SNR not computable for this signal")
		return nil
	}
	cli.PrintInfo("SNR", fmt.Sprintf("%.1f dB", db))
	return nil
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("roomwaves"),
		kong.Description("ISO 3382 room-acoustic descriptor analysis"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	if err := ctx.Run(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}
}
