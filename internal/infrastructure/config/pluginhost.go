package config

import "time"

// PluginHostConfig addresses an optional remote plugin host: a gRPC
// service implementing the Construct/Init/Destruct contract spec.md §6
// describes for out-of-process facility/market kinds. An empty Address
// means no remote host is configured — the run uses the in-process
// kind registry (internal/infrastructure/pluginregistry) exclusively.
type PluginHostConfig struct {
	Address string        `mapstructure:"address"`
	Timeout time.Duration `mapstructure:"timeout"`
}
