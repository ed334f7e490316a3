// Package stats 负责获取并格式化机器人统计数据
//
// Poller 定时从静态 JSON 资源拉取数据并保留最后一次成功的结果；
// View 将原始数据转换为仪表盘上显示的文本。
package stats

import "time"

// BotStats 是统计 JSON 的结构
//
// 所有字段都是可选的，缺省值在 NewView 中处理。
type BotStats struct {
	Users            int64         `json:"users"`
	Servers          int64         `json:"servers"`
	Clusters         int           `json:"clusters"`
	Shards           int           `json:"shards"`
	Playing          int           `json:"playing"`
	VoiceConnections int           `json:"voice_connections"`
	Latency          int           `json:"latency"`
	ClustersList     []ClusterInfo `json:"clusters_list"`
	Players          []PlayerInfo  `json:"players"`
}

// ClusterInfo 单个集群的统计
type ClusterInfo struct {
	Shards  int   `json:"shards"`
	Servers int64 `json:"servers"`
	Users   int64 `json:"users"`
	Latency int   `json:"latency"`
}

// PlayerInfo 单个音频播放节点的统计
type PlayerInfo struct {
	Name        string `json:"name"`
	Connections int    `json:"connections"`
	Playing     int    `json:"playing"`
	Uptime      string `json:"uptime"`
}

// Status 数据源连接状态
type Status int

const (
	// StatusConnecting 尚未得到任何结果
	StatusConnecting Status = iota
	// StatusOnline 至少成功获取过一次数据
	StatusOnline
	// StatusOffline 从未成功获取过数据且最近一次请求失败
	StatusOffline
)

// String 返回状态名称
func (s Status) String() string {
	switch s {
	case StatusOnline:
		return "online"
	case StatusOffline:
		return "offline"
	default:
		return "connecting"
	}
}

// Snapshot 是某一时刻轮询器状态的一致副本
type Snapshot struct {
	// Stats 最后一次成功获取的数据，从未成功时为 nil
	Stats *BotStats
	// Status 连接状态
	Status Status
	// UpdatedAt 最后一次成功获取的时间
	UpdatedAt time.Time
	// LastError 最近一次请求的错误，成功后清空
	LastError error
}
