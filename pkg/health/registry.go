package health

import (
	"context"
	"sync"
)

type entry struct {
	checker  Checker
	optional bool
}

// Registry holds the readiness checkers. A failing optional checker degrades
// readiness without failing it.
type Registry struct {
	entries []entry
}

// NewRegistry creates a registry whose checkers are all required.
func NewRegistry(checkers ...Checker) *Registry {
	r := &Registry{}
	for _, c := range checkers {
		r.Add(c)
	}
	return r
}

func (r *Registry) Add(c Checker) {
	r.entries = append(r.entries, entry{checker: c})
}

// AddOptional registers a checker for a component the service can run without,
// such as a step event sink.
func (r *Registry) AddOptional(c Checker) {
	r.entries = append(r.entries, entry{checker: c, optional: true})
}

// CheckResult is the result of a single named check.
type CheckResult struct {
	Name     string `json:"name"`
	Status   Status `json:"status"`
	Optional bool   `json:"optional,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ReadinessResponse is the aggregated readiness check response.
type ReadinessResponse struct {
	Status Status        `json:"status"`
	Checks []CheckResult `json:"checks,omitempty"`
}

// CheckAll runs all registered checkers in parallel.
func (r *Registry) CheckAll(ctx context.Context) ReadinessResponse {
	if len(r.entries) == 0 {
		return ReadinessResponse{Status: StatusUp}
	}

	results := make([]CheckResult, len(r.entries))
	var wg sync.WaitGroup

	for i, e := range r.entries {
		wg.Add(1)
		go func(idx int, e entry) {
			defer wg.Done()
			res := e.checker.Check(ctx)
			results[idx] = CheckResult{
				Name:     e.checker.Name(),
				Status:   res.Status,
				Optional: e.optional,
				Message:  res.Message,
			}
		}(i, e)
	}

	wg.Wait()

	overall := StatusUp
	for _, res := range results {
		if res.Status != StatusDown {
			continue
		}
		if !res.Optional {
			overall = StatusDown
			break
		}
		overall = StatusDegraded
	}

	return ReadinessResponse{Status: overall, Checks: results}
}
