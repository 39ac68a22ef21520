package checkout

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RemoteConfig バックエンドの/configから取得するチェックアウト設定
type RemoteConfig struct {
	PublishableKey string `json:"publishableKey"`
	Profile        string `json:"profile"`
}

// DefaultRemoteConfig 取得に失敗した場合に使う空の設定
func DefaultRemoteConfig() RemoteConfig {
	return RemoteConfig{PublishableKey: "", Profile: ""}
}

// ParseRemoteConfig レスポンスボディをRemoteConfigとして解釈する
// JSONオブジェクト以外（null、配列、型違いのフィールド）はErrConfigMalformed
func ParseRemoteConfig(data []byte) (RemoteConfig, error) {
	var cfg *RemoteConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultRemoteConfig(), fmt.Errorf("%w: %v", ErrConfigMalformed, err)
	}
	if cfg == nil {
		return DefaultRemoteConfig(), fmt.Errorf("%w: empty document", ErrConfigMalformed)
	}
	return *cfg, nil
}

// HasProfile 空白を除いたprofileが存在するか
func (c RemoteConfig) HasProfile() bool {
	return strings.TrimSpace(c.Profile) != ""
}

// Validate 初期化を続行できる設定か検証
func (c RemoteConfig) Validate() error {
	if !c.HasProfile() {
		return ErrProfileMissing
	}
	return nil
}
