// Package health provides HTTP handlers for health probes.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs a set of named [Checks] in parallel and answers
// 503 when any of them fails or exceeds the timeout.
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "providers": providersConfigured,
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log)))
//
// Responses are plain text ("OK" / "Service Unavailable") unless the client
// sends Accept: application/json or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "providers": {"status": "unhealthy", "error": "no provider credentials configured"}
//	  }
//	}
package health
