package model

type ActivatePointsRequest struct {
	Day       int64  `json:"day"`
	Amount    uint64 `json:"amount"`
	Signature string `json:"signature"`
}

type ActivatePointsResponse struct {
	Day       int64  `json:"day"`
	Activated uint64 `json:"activated"`
	Remaining uint64 `json:"remaining"`
}

type GetMyPointsRequest struct {
	Day int64 `json:"day" form:"day"`
}

type GetMyPointsResponse struct {
	Day       int64  `json:"day"`
	Activated uint64 `json:"activated"`
	Remaining uint64 `json:"remaining"`
	Nonce     uint64 `json:"nonce"`
}
