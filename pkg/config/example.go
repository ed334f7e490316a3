package config

import (
	_ "embed"
)

// ExampleYAML 带注释的示例配置，内容与 DefaultConfig() 一致
//
//go:embed example.yaml
var ExampleYAML []byte
