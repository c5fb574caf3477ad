package statsapi

type scheduleResponse struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePk   int            `json:"gamePk"`
	GameDate string         `json:"gameDate"`
	Status   statusResponse `json:"status"`
	Teams    struct {
		Away scheduleTeam `json:"away"`
		Home scheduleTeam `json:"home"`
	} `json:"teams"`
}

type statusResponse struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
}

type scheduleTeam struct {
	Team            namedRef   `json:"team"`
	ProbablePitcher *personRef `json:"probablePitcher"`
}

type namedRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type personRef struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
}

type boxscoreResponse struct {
	Teams struct {
		Away boxscoreTeam `json:"away"`
		Home boxscoreTeam `json:"home"`
	} `json:"teams"`
}

type boxscoreTeam struct {
	Team    namedRef                  `json:"team"`
	Players map[string]boxscorePlayer `json:"players"`
}

type boxscorePlayer struct {
	Person   personRef `json:"person"`
	Position struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"position"`
	BattingOrder string `json:"battingOrder"`
}

type liveFeedResponse struct {
	GameData struct {
		Status statusResponse `json:"status"`
	} `json:"gameData"`
	LiveData struct {
		Linescore linescore `json:"linescore"`
	} `json:"liveData"`
}

type linescore struct {
	CurrentInning int    `json:"currentInning"`
	InningHalf    string `json:"inningHalf"`
	Balls         int    `json:"balls"`
	Strikes       int    `json:"strikes"`
	Outs          int    `json:"outs"`
	Offense       struct {
		First  *personRef `json:"first"`
		Second *personRef `json:"second"`
		Third  *personRef `json:"third"`
	} `json:"offense"`
	Teams struct {
		Home teamLine `json:"home"`
		Away teamLine `json:"away"`
	} `json:"teams"`
}

type teamLine struct {
	Runs int `json:"runs"`
	Hits int `json:"hits"`
}

type peopleResponse struct {
	People []personRef `json:"people"`
}
