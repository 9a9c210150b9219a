package telemetry

import (
	"runtime"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"

	"github.com/tradelink/backend/internal/infrastructure/config"
)

// Profiler owns the continuous profiling session.
type Profiler struct {
	session *pyroscope.Profiler
	logger  *zap.Logger
}

// StartProfiler begins continuous profiling against the configured
// Pyroscope server. Disabled configuration returns an inert profiler
// whose Stop is a no-op.
func StartProfiler(cfg config.ProfilingConfig, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger}
	if !cfg.Enabled {
		logger.Info("profiling disabled")
		return p, nil
	}

	// Mutex and block profiles record nothing until the runtime sampling
	// rates are set
	runtime.SetMutexProfileFraction(cfg.MutexProfileFraction)
	runtime.SetBlockProfileRate(cfg.BlockProfileRate)

	session, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockCount,
			pyroscope.ProfileBlockDuration,
		},
	})
	if err != nil {
		return nil, err
	}
	p.session = session

	logger.Info("profiler started",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application_name", cfg.ApplicationName),
	)
	return p, nil
}

// Stop flushes and ends the profiling session.
func (p *Profiler) Stop() {
	if p.session == nil {
		return
	}
	if err := p.session.Stop(); err != nil {
		p.logger.Error("profiler stop failed", zap.Error(err))
	}
}

// IsEnabled reports whether profiling is active.
func (p *Profiler) IsEnabled() bool {
	return p.session != nil
}
