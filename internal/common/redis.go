package common

import "fmt"

func RedisKeyLeaderBoard(day int64) string {
	return fmt.Sprintf("mintpad:leaderboard:%d", day)
}
