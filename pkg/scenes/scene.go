// Package scenes 定义仪表盘的各个页面
package scenes

import (
	"github.com/decker502/botdash/pkg/game"
	"github.com/decker502/botdash/pkg/stats"
)

// Scene is a type alias for game.Scene.
// All page implementations should implement the game.Scene interface.
type Scene = game.Scene

// 页面 ID
const (
	OverviewID = "overview"
	ClusterID  = "cluster"
	PlayerID   = "player"
)

// All 返回全部页面，顺序即标签顺序
func All() []game.Scene {
	return []game.Scene{
		OverviewScene{},
		ClusterScene{},
		PlayerScene{},
	}
}

// OverviewScene 总览页：用户、服务器、分片与延迟
type OverviewScene struct{}

func (OverviewScene) ID() string    { return OverviewID }
func (OverviewScene) Title() string { return "Overview" }

// Lines 返回总览页的行
func (OverviewScene) Lines(v stats.View) []game.Line {
	return []game.Line{
		{Label: "Users", Value: v.Users},
		{Label: "Servers", Value: v.Servers},
		{Label: "Clusters", Value: v.Clusters},
		{Label: "Shards", Value: v.Shards},
		{Label: "Playing / Voice", Value: v.Playing},
		{Label: "Latency", Value: v.Latency},
	}
}

// ClusterScene 集群页：只显示第一个集群
type ClusterScene struct{}

func (ClusterScene) ID() string    { return ClusterID }
func (ClusterScene) Title() string { return "Cluster" }

// Lines 返回集群页的行，没有集群数据时给出占位提示
func (ClusterScene) Lines(v stats.View) []game.Line {
	if !v.HasCluster {
		return []game.Line{{Label: "Cluster #0", Value: "no data"}}
	}
	return []game.Line{
		{Label: "Cluster #0", Value: v.ClusterInfo},
		{Label: "Latency", Value: v.ClusterLatency},
	}
}

// PlayerScene 播放节点页：只显示第一个节点
type PlayerScene struct{}

func (PlayerScene) ID() string    { return PlayerID }
func (PlayerScene) Title() string { return "Player" }

// Lines 返回播放节点页的行
func (PlayerScene) Lines(v stats.View) []game.Line {
	if !v.HasPlayer {
		return []game.Line{{Label: "Node", Value: "no data"}}
	}
	return []game.Line{
		{Label: "Node", Value: v.PlayerName},
		{Label: "Connections", Value: v.PlayerConnections},
		{Label: "Playing", Value: v.PlayerPlaying},
		{Label: "Uptime", Value: v.PlayerUptime},
	}
}
