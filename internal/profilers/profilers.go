// Package profilers sets up optional CPU and memory profiling for the mazeGo programs.
//
// Linking it installs the flags -prof (HTTP pprof server port), -cpu_profile and -mem_profile.
package profilers

import (
	"context"
	"flag"
	"fmt"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
)

var (
	flagProfiler   = flag.Int("prof", -1, "If set, serves pprof on localhost at the given port, and keeps the program alive at the end.")
	flagCPUProfile = flag.String("cpu_profile", "", "Write CPU profile to `file`.")
	flagMemProfile = flag.String("mem_profile", "", "Write a heap profile to `file` at the end of the program.")
)

// Profilers started by Setup. Call OnQuit before exiting.
type Profilers struct {
	ctx          context.Context
	cpuFile      *os.File
	profilerAddr string
}

// Setup starts the HTTP (flag -prof) and CPU profilers (flag -cpu_profile), if they were configured.
// ctx is used to interrupt the wait of the HTTP profiler in OnQuit.
func Setup(ctx context.Context) (*Profilers, error) {
	p := &Profilers{ctx: ctx}
	if *flagProfiler >= 0 {
		p.profilerAddr = fmt.Sprintf("localhost:%d", *flagProfiler)
		klog.Infof("Serving profiler on http://%s/debug/pprof", p.profilerAddr)
		go func() {
			klog.Errorf("Profiler server stopped: %v", http.ListenAndServe(p.profilerAddr, nil))
		}()
	}
	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create CPU profile file %q", *flagCPUProfile)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, errors.Wrap(err, "failed to start CPU profile")
		}
		p.cpuFile = f
	}
	return p, nil
}

// OnQuit stops the CPU profile, writes the memory profile, and if the HTTP profiler is running,
// waits for ctx to be done (ctrl+C) so it can still be inspected.
func (p *Profilers) OnQuit() {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := p.cpuFile.Close(); err != nil {
			klog.Errorf("Failed to close CPU profile %q: %v", *flagCPUProfile, err)
		}
		p.cpuFile = nil
	}
	if *flagMemProfile != "" {
		if err := writeHeapProfile(*flagMemProfile); err != nil {
			klog.Errorf("%+v", err)
		}
	}
	if p.profilerAddr == "" || p.ctx.Err() != nil {
		return
	}
	runtime.GC()
	fmt.Printf("- Program finished: kept alive with profiler at http://%s/debug/pprof\n", p.profilerAddr)
	fmt.Printf("- Interrupt (Ctrl+C) to exit\n")
	<-p.ctx.Done()
}

func writeHeapProfile(fileName string) error {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrapf(err, "failed to create heap profile file %q", fileName)
	}
	defer func() { _ = f.Close() }()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return errors.Wrapf(err, "failed to write heap profile to %q", fileName)
	}
	return nil
}
