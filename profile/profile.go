// Package profile controls optional pprof profiling for a generator run.
package profile

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Profiler controls the lifecycle of runtime profiling sessions.
//
// Call Profiler.Start to begin profiling and Profiler.Stop to write all
// enabled profiles.
//
// Create instances with Config.NewProfiler.
type Profiler struct {
	cpuFile *os.File
	Config
}

// Start configures runtime profiling rates and starts CPU profiling if
// enabled. Call Profiler.Stop when profiling is complete to write
// snapshot profiles.
func (p *Profiler) Start() error {
	runtime.MemProfileRate = p.MemProfileRate
	runtime.SetBlockProfileRate(p.BlockProfileRate)
	runtime.SetMutexProfileFraction(p.MutexProfileFraction)

	if p.CPUProfile != "" {
		f, err := os.Create(p.CPUProfile) //nolint:gosec
		if err != nil {
			return fmt.Errorf("creating CPU profile: %w", err)
		}

		p.cpuFile = f

		err = pprof.StartCPUProfile(f)
		if err != nil {
			must(p.cpuFile.Close())

			p.cpuFile = nil

			return fmt.Errorf("starting CPU profile: %w", err)
		}
	}

	return nil
}

// Stop stops CPU profiling and writes all enabled snapshot profiles.
func (p *Profiler) Stop() error {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()

		err := p.cpuFile.Close()
		if err != nil {
			return fmt.Errorf("closing CPU profile: %w", err)
		}
	}

	return p.writeSnapshots()
}

func (p *Profiler) writeSnapshots() error {
	profiles := []struct {
		name string
		path string
	}{
		{"heap", p.HeapProfile},
		{"allocs", p.AllocsProfile},
		{"goroutine", p.GoroutineProfile},
		{"threadcreate", p.ThreadcreateProfile},
		{"block", p.BlockProfile},
		{"mutex", p.MutexProfile},
	}

	for _, pr := range profiles {
		if pr.path == "" {
			continue
		}

		if err := p.writeProfile(pr.name, pr.path); err != nil {
			return fmt.Errorf("write %s profile: %w", pr.name, err)
		}
	}

	return nil
}

func (p *Profiler) writeProfile(name, path string) error {
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("create %s profile: %w", name, err)
	}

	prof := pprof.Lookup(name)
	if prof == nil {
		must(f.Close())

		return fmt.Errorf("unknown profile: %s", name)
	}

	err = prof.WriteTo(f, 0)
	if err != nil {
		must(f.Close())

		return fmt.Errorf("write %s profile: %w", name, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s profile: %w", name, err)
	}

	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
