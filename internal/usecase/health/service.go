package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the engine answers but the index is not there yet.
	Degraded Status = "degraded"
	// Unhealthy indicates the engine is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckMissing indicates the probed object does not exist.
	CheckMissing CheckResult = "missing"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	indexes IndexProber
	index   string
}

// New creates a Service. indexes can be nil, which skips the index probe.
func New(db DBPinger, indexes IndexProber, index string) *Service {
	return &Service{db: db, indexes: indexes, index: index}
}

// Check runs health checks against the engine and the catalog index.
// A missing index is expected before the first /index call and only degrades the report.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["database"] = CheckOK

	status := Healthy
	if s.indexes != nil {
		ok, err := s.indexes.IndexExists(ctx, s.index)
		switch {
		case err != nil:
			checks["index"] = CheckError
			status = Unhealthy
		case !ok:
			checks["index"] = CheckMissing
			status = Degraded
		default:
			checks["index"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
