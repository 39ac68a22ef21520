package openapi

import _ "embed"

// Spec チェックアウトAPIのOpenAPI定義
//
//go:embed openapi.yaml
var Spec []byte
