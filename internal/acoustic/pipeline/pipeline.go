// Package pipeline composes the acoustic analysis stages (band filter,
// envelope smoother, decay analyzer, parameter calculator) over a typed
// state record.
//
// This replaces two anti-patterns spec §9 calls out in the source this was
// distilled from: an untyped keyed dict threaded between stages (here,
// State's fields are named and typed), and stages sharing a single
// polymorphic process() method (here, Stage is a narrow Apply(State)
// capability, and the orchestrator holds an ordered list of them — nothing
// about the interface presumes a particular stage's internals, so per-band
// work inside any one stage is free to run concurrently).
package pipeline

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jero-scafati/roomwaves/internal/acoustic"
	"github.com/jero-scafati/roomwaves/internal/acoustic/bank"
	"github.com/jero-scafati/roomwaves/internal/acoustic/decay"
	"github.com/jero-scafati/roomwaves/internal/acoustic/envelope"
	"github.com/jero-scafati/roomwaves/internal/acoustic/params"
)

// State is the typed record threaded between pipeline stages. Each stage
// populates the fields it owns and leaves the rest untouched; no
// string-keyed map survives past ingest.
type State struct {
	IR     []float64
	Fs     float64
	Config acoustic.Config

	FilteredSignals map[int][]float64
	Envelopes       map[int][]float64
	LundebyData     map[int]decay.Result
	AcousticParams  map[int]params.BandParameters
}

// Stage is one step of the pipeline: a pure State -> State' transform.
type Stage interface {
	Apply(State) (State, error)
}

// Orchestrator runs a fixed, ordered list of stages over a State, exposing
// the final AnalysisResult. It owns no mutable process-wide state, so two
// Orchestrator values (or the same one, called twice) never interfere —
// spec §5's re-entrancy requirement.
type Orchestrator struct {
	stages []Stage
}

// New builds the standard four-stage orchestrator: band filter -> envelope
// smoother -> decay analyzer -> parameter calculator (spec §4.6).
func New() *Orchestrator {
	return &Orchestrator{
		stages: []Stage{
			bandFilterStage{},
			envelopeStage{},
			decayStage{},
			paramStage{},
		},
	}
}

// ProgressFunc is called after each stage completes, naming the stage that
// just ran — the progress-callback idiom carried from the teacher's
// top-level ProcessAudio(..., progressCallback) into this orchestrator.
type ProgressFunc func(stageName string)

// Run executes the pipeline over ir/fs with the given configuration,
// returning the final AnalysisResult. Idempotent: two Run calls on
// identical inputs produce a bitwise-equal AnalysisResult (spec §4.6, §8.5).
func Run(ir []float64, fs float64, cfg acoustic.Config, onProgress ProgressFunc) (acoustic.AnalysisResult, error) {
	o := New()
	return o.Run(ir, fs, cfg, onProgress)
}

// Run executes o's stages in order over ir/fs.
func (o *Orchestrator) Run(ir []float64, fs float64, cfg acoustic.Config, onProgress ProgressFunc) (acoustic.AnalysisResult, error) {
	if err := cfg.Validate(); err != nil {
		return acoustic.AnalysisResult{}, err
	}
	if fs <= 0 {
		return acoustic.AnalysisResult{}, fmt.Errorf("fs must be positive, got %v: %w", fs, acoustic.ErrInvalidArgument)
	}

	state := State{IR: ir, Fs: fs, Config: cfg}

	stageNames := []string{"band-filter", "envelope", "decay", "parameters"}
	for i, stage := range o.stages {
		var err error
		state, err = stage.Apply(state)
		if err != nil {
			return acoustic.AnalysisResult{}, fmt.Errorf("stage %s: %w", stageNames[i], err)
		}
		if onProgress != nil {
			onProgress(stageNames[i])
		}
	}

	result := acoustic.AnalysisResult{Bands: make(map[string]acoustic.BandParameters, len(state.AcousticParams))}
	for fc, p := range state.AcousticParams {
		result.Bands[acoustic.FcKey(fc)] = p
	}
	return result, nil
}

// --- stages ---

type bandFilterStage struct{}

func (bandFilterStage) Apply(s State) (State, error) {
	if len(s.IR) == 0 {
		return State{}, fmt.Errorf("impulse response is empty: %w", acoustic.ErrDegenerateInput)
	}
	allZero := true
	for _, v := range s.IR {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return State{}, fmt.Errorf("impulse response is all-zero: %w", acoustic.ErrDegenerateInput)
	}

	bk, err := bank.New(s.Fs, s.Config.FilterType)
	if err != nil {
		return State{}, fmt.Errorf("%v: %w", err, acoustic.ErrInvalidArgument)
	}

	s.FilteredSignals = bk.Apply(s.IR)
	return s, nil
}

type envelopeStage struct{}

func (envelopeStage) Apply(s State) (State, error) {
	fcs := sortedKeys(s.FilteredSignals)
	envelopes := make(map[int][]float64, len(fcs))

	var mu sync.Mutex
	var wg sync.WaitGroup
	errs := make([]error, len(fcs))

	for i, fc := range fcs {
		wg.Add(1)
		go func(i, fc int) {
			defer wg.Done()
			env, err := envelope.Smooth(s.FilteredSignals[fc], s.Fs, s.Config.SmoothingWindowMS)
			if err != nil {
				errs[i] = err
				return
			}
			mu.Lock()
			envelopes[fc] = env
			mu.Unlock()
		}(i, fc)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return State{}, err
		}
	}

	s.Envelopes = envelopes
	return s, nil
}

type decayStage struct{}

func (decayStage) Apply(s State) (State, error) {
	fcs := sortedKeys(s.Envelopes)
	lundeby := make(map[int]decay.Result, len(fcs))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, fc := range fcs {
		wg.Add(1)
		go func(fc int) {
			defer wg.Done()
			res := decay.Analyze(s.Envelopes[fc], s.Fs, s.Config.BlockMS)
			mu.Lock()
			lundeby[fc] = res
			mu.Unlock()
		}(fc)
	}
	wg.Wait()

	s.LundebyData = lundeby
	return s, nil
}

type paramStage struct{}

func (paramStage) Apply(s State) (State, error) {
	fcs := sortedKeys(s.LundebyData)
	result := make(map[int]params.BandParameters, len(fcs))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, fc := range fcs {
		wg.Add(1)
		go func(fc int) {
			defer wg.Done()
			lundeby := s.LundebyData[fc]
			p := params.Calculate(lundeby.SchroederCurveDB, s.FilteredSignals[fc], lundeby.NoiseStartIndex, s.Fs)
			mu.Lock()
			result[fc] = p
			mu.Unlock()
		}(fc)
	}
	wg.Wait()

	s.AcousticParams = result
	return s, nil
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
