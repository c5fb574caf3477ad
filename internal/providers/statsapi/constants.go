package statsapi

const (
	upstreamName   = "statsapi"
	defaultBaseURL = "https://statsapi.mlb.com"
	sportIDMLB     = "1"

	schedulePath = "/api/v1/schedule"
	boxscorePath = "/api/v1/game/%d/boxscore"
	liveFeedPath = "/api/v1.1/game/%d/feed/live"
	peoplePath   = "/api/v1/people/search"
)
