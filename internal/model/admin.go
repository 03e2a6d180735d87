package model

type StartRollOverRequest struct{}

type StartRollOverResponse struct{}

type FinishRollOverRequest struct{}

type FinishRollOverResponse struct{}

type PointGrant struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
}

type GrantPointsRequest struct {
	Grants []PointGrant `json:"grants"`
}

type GrantPointsResponse struct {
	Granted int `json:"granted"`
}

type SetDailyRewardPoolRequest struct {
	Amount uint64 `json:"amount"`
}

type SetDailyRewardPoolResponse struct{}
