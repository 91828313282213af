// Package message renders the feeds as WeCom markdown and keeps the result
// inside the webhook's length budget.
package message

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/daily60s/internal/feed"
)

// SourceName is credited in every message footer.
const SourceName = "60s.viki.moe"

const (
	coverAlt          = "游戏封面"
	descriptionPrefix = "**描述**:"
)

// BuildMain renders the digest headlines, the currently free Epic games and
// the daily tip.
func BuildMain(d *feed.Digest, games []feed.GamePromotion) string {
	var msg strings.Builder

	fmt.Fprintf(&msg, "# 🗞️ 每日资讯汇总 - %s %s\n\n", d.Date, d.DayOfWeek)
	fmt.Fprintf(&msg, "**农历%s**\n\n", d.LunarDate)
	msg.WriteString("## 📰 60秒读懂世界\n")
	for i, item := range d.News {
		fmt.Fprintf(&msg, "%d. %s\n", i+1, item)
	}

	// the section is omitted entirely when the feed had no games at all
	if len(games) > 0 {
		msg.WriteString("\n## 🎮 Epic免费游戏\n")
		free := feed.FreeNow(games)
		if len(free) == 0 {
			msg.WriteString("暂无免费游戏\n")
		}
		for _, g := range free {
			writeGame(&msg, g)
		}
	}

	if d.Tip != "" {
		fmt.Fprintf(&msg, "\n## 💡 小贴士\n> %s\n", d.Tip)
	}

	writeFooter(&msg, d.Date)

	return msg.String()
}

func writeGame(msg *strings.Builder, g feed.GamePromotion) {
	fmt.Fprintf(msg, "\n### %s\n", g.Title)
	if g.Cover != "" {
		fmt.Fprintf(msg, "![%s](%s)", coverAlt, g.Cover)
	}
	msg.WriteString("\n")
	fmt.Fprintf(msg, "%s %s\n", descriptionPrefix, g.Description)
	fmt.Fprintf(msg, "**原价**: %s - 免费至 %s\n", g.OriginalPrice, g.FreeEnd)
	fmt.Fprintf(msg, "[游戏详情](%s)\n", g.Link)
}

// BuildHistory renders today's historical events.
func BuildHistory(d *feed.Digest, events []feed.HistoryEvent) string {
	var msg strings.Builder

	fmt.Fprintf(&msg, "# 📅 历史上的今天 - %s %s\n\n", d.Date, d.DayOfWeek)
	fmt.Fprintf(&msg, "**农历%s**\n\n", d.LunarDate)
	msg.WriteString("## 历史事件\n")

	if len(events) == 0 {
		msg.WriteString("暂无历史事件数据\n")
	}
	for i, evt := range events {
		fmt.Fprintf(&msg, "%d. %s\n", i+1, evt)
	}

	writeFooter(&msg, d.Date)

	return msg.String()
}

// Combined joins both messages into a single document.
func Combined(main, history string) string {
	return main + "\n\n" + history
}

func writeFooter(msg *strings.Builder, date string) {
	fmt.Fprintf(msg, "\n---\n*数据来源: %s* | *生成时间: %s*\n", SourceName, date)
}
