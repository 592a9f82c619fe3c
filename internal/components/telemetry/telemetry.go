package telemetry

// API is where components send logs and metrics. Tests swap in a Recorder
// to assert on what was reported.
//
// Ids name the component and method that reported, lowercase, for example
// `client.profile` or `collector.refresh-history`. Each package declares
// its ids as `report_<component>_<method>` constants. Details go in params,
// never in the id.
type API interface {
	// ReportBroken reports a failure someone should look at.
	ReportBroken(id string, params ...any)
	// ReportWarning reports something unusual that did not stop the run.
	ReportWarning(id string, params ...any)
	// ReportDebug is dropped unless verbose logging is on.
	ReportDebug(msg string, params ...any)
	// ReportCount records a point-in-time count, not a running total.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id with a namespace, usually the package name.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) scope(id string) string {
	return s.namespace + ": " + id
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.scope(id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.scope(id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.scope(msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.scope(id), count)
}
