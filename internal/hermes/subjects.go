package hermes

const (
	SubjectCatalogReload = "advisor.catalog.reload"
	SubjectCatalogLoaded = "advisor.catalog.loaded"

	StreamName   = "ADVISOR_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectSessionStarted(sessionID string) string   { return "advisor.session." + sessionID + ".started" }
func SubjectSessionRestarted(sessionID string) string { return "advisor.session." + sessionID + ".restarted" }
func SubjectSessionExpired(sessionID string) string   { return "advisor.session." + sessionID + ".expired" }

func SubjectRecommendationServed(requestID string) string {
	return "advisor.recommendation." + requestID + ".served"
}
