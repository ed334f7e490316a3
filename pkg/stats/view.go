package stats

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer 按英文习惯输出千位分隔符（1,234,567）
var printer = message.NewPrinter(language.English)

// View 仪表盘上显示的文本
type View struct {
	Status Status
	Badge  string

	Users    string
	Servers  string
	Clusters string
	Shards   string
	Playing  string
	Latency  string

	HasCluster     bool
	ClusterInfo    string
	ClusterLatency string

	HasPlayer         bool
	PlayerName        string
	PlayerConnections string
	PlayerPlaying     string
	PlayerUptime      string
}

// NewView 由快照生成显示文本
//
// 缺省规则：用户数/服务器数缺省为 "0"，集群数/分片数缺省为 "1"。
// 只显示第一个集群和第一个播放节点。
func NewView(snap Snapshot) View {
	v := View{
		Status: snap.Status,
		Badge:  Badge(snap.Status),
	}

	var s BotStats
	if snap.Stats != nil {
		s = *snap.Stats
	}

	v.Users = grouped(s.Users)
	v.Servers = grouped(s.Servers)
	v.Clusters = orDefault(s.Clusters, "1")
	v.Shards = orDefault(s.Shards, "1")
	v.Playing = fmt.Sprintf("%d / %d", s.Playing, s.VoiceConnections)
	v.Latency = fmt.Sprintf("%d ms", s.Latency)

	if len(s.ClustersList) > 0 {
		c := s.ClustersList[0]
		v.HasCluster = true
		v.ClusterInfo = fmt.Sprintf("%d shards • %d servers • %s users • %d ms",
			c.Shards, c.Servers, grouped(c.Users), c.Latency)
		v.ClusterLatency = fmt.Sprintf("%d ms", c.Latency)
	}

	if len(s.Players) > 0 {
		p := s.Players[0]
		v.HasPlayer = true
		v.PlayerName = p.Name
		v.PlayerConnections = fmt.Sprintf("%d rooms", p.Connections)
		v.PlayerPlaying = fmt.Sprintf("%d rooms", p.Playing)
		v.PlayerUptime = p.Uptime
	}

	return v
}

// Badge 返回状态徽标文本
func Badge(s Status) string {
	switch s {
	case StatusOnline:
		return "● Online"
	case StatusOffline:
		return "● Offline"
	default:
		return "● Connecting"
	}
}

func grouped(n int64) string {
	return printer.Sprintf("%d", n)
}

func orDefault(n int, def string) string {
	if n == 0 {
		return def
	}
	return strconv.Itoa(n)
}
