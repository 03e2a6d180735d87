package model

// AccessToken is the object embedded into JWT access tokens.
type AccessToken struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type WalletLoginRequest struct {
	Address string `json:"address" form:"address"`
}

type WalletLoginResponse struct {
	Address string `json:"address"`
	Nonce   string `json:"nonce"`
}

type WalletVerifyRequest struct {
	SessionNonce   string `json:"session_nonce" form:"session_nonce"`
	SessionAddress string `json:"session_address" form:"session_address"`
	Signature      string `json:"signature" form:"signature"`
}

type WalletVerifyResponse struct {
	AccessToken string `json:"access_token"`
}
