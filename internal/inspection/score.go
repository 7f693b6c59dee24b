// internal/inspection/score.go
package inspection

// Weight tables for the compliance score. An unrecognized category maps to
// weight 0, so the score fails open to the lowest value rather than
// panicking on bad input; Create validates the enums before scoring, so
// this fallback is only reachable through direct use of Score.
var useWeights = map[string]int{
	UseActive:  60,
	UsePartial: 30,
	UseNotUsed: 0,
}

var upkeepWeights = map[string]int{
	UpkeepGood: 40,
	UpkeepFair: 20,
	UpkeepPoor: 0,
}

// Score computes the compliance score for a plot visit. It is pure: the
// result depends only on the two category inputs and always lands in
// [0, 100].
func Score(useStatus, upkeep string) int {
	return useWeights[useStatus] + upkeepWeights[upkeep]
}
