package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pfrederiksen/daily60s/internal/feed"
)

func sampleDigest() *feed.Digest {
	return &feed.Digest{
		Date:      "2026-10-19",
		DayOfWeek: "星期一",
		LunarDate: "九月初九",
		News:      []string{"第一条新闻", "第二条新闻"},
		Tip:       "早睡早起。",
	}
}

func TestBuildMain(t *testing.T) {
	games := []feed.GamePromotion{
		{
			Title:         "Hollow Realms",
			Cover:         "https://example.com/hollow.jpg",
			Description:   "An underground adventure.",
			OriginalPrice: "¥99.00",
			FreeEnd:       "2026/10/23 23:00:00",
			Link:          "https://store.example.com/hollow",
			IsFreeNow:     true,
		},
		{Title: "Not Yet Free", IsFreeNow: false},
	}

	got := BuildMain(sampleDigest(), games)

	tests := []struct {
		name string
		want string
	}{
		{"header", "# 🗞️ 每日资讯汇总 - 2026-10-19 星期一\n\n**农历九月初九**\n\n## 📰 60秒读懂世界\n"},
		{"numbered news", "1. 第一条新闻\n2. 第二条新闻\n"},
		{"games section", "\n## 🎮 Epic免费游戏\n"},
		{"game block", "\n### Hollow Realms\n![游戏封面](https://example.com/hollow.jpg)\n**描述**: An underground adventure.\n**原价**: ¥99.00 - 免费至 2026/10/23 23:00:00\n[游戏详情](https://store.example.com/hollow)\n"},
		{"tip", "\n## 💡 小贴士\n> 早睡早起。\n"},
		{"footer", "\n---\n*数据来源: 60s.viki.moe* | *生成时间: 2026-10-19*\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, got, tt.want)
		})
	}

	assert.NotContains(t, got, "Not Yet Free")
	assert.NotContains(t, got, "暂无免费游戏")
	assert.True(t, strings.HasSuffix(got, "*生成时间: 2026-10-19*\n"))
}

func TestBuildMain_NoFreeGames(t *testing.T) {
	got := BuildMain(sampleDigest(), []feed.GamePromotion{{Title: "Later"}})

	assert.Contains(t, got, "## 🎮 Epic免费游戏\n暂无免费游戏\n")
	assert.NotContains(t, got, "### Later")
}

func TestBuildMain_NoGamesOmitsSection(t *testing.T) {
	got := BuildMain(sampleDigest(), nil)
	assert.NotContains(t, got, "Epic免费游戏")
}

func TestBuildMain_GameWithoutCover(t *testing.T) {
	got := BuildMain(sampleDigest(), []feed.GamePromotion{{Title: "Bare", Description: "d", IsFreeNow: true}})

	assert.Contains(t, got, "### Bare\n\n**描述**: d\n")
	assert.NotContains(t, got, "![游戏封面]")
}

func TestBuildMain_EmptyDigest(t *testing.T) {
	got := BuildMain(&feed.Digest{}, nil)

	assert.Equal(t, "# 🗞️ 每日资讯汇总 -  \n\n**农历**\n\n## 📰 60秒读懂世界\n"+
		"\n---\n*数据来源: 60s.viki.moe* | *生成时间: *\n", got)
	assert.NotContains(t, got, "小贴士", "empty tip omits the section")
}

func TestBuildHistory(t *testing.T) {
	events := []feed.HistoryEvent{
		{Year: "1936", Title: "鲁迅在上海逝世"},
		{Year: "1959", Title: "第一届全国运动会开幕"},
	}

	got := BuildHistory(sampleDigest(), events)

	assert.True(t, strings.HasPrefix(got, "# 📅 历史上的今天 - 2026-10-19 星期一\n\n**农历九月初九**\n\n## 历史事件\n"))
	assert.Contains(t, got, "1. 1936 - 鲁迅在上海逝世\n2. 1959 - 第一届全国运动会开幕\n")
	assert.Contains(t, got, "*数据来源: 60s.viki.moe* | *生成时间: 2026-10-19*")
	assert.NotContains(t, got, "暂无历史事件数据")
}

func TestBuildHistory_NoEvents(t *testing.T) {
	got := BuildHistory(sampleDigest(), nil)
	assert.Contains(t, got, "## 历史事件\n暂无历史事件数据\n")
}

func TestCombined(t *testing.T) {
	assert.Equal(t, "a\n\n\nb", Combined("a\n", "b"))
}
