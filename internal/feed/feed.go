package feed

import "fmt"

// Placeholders used when a game promotion omits a field.
const (
	UnknownGameTitle   = "未知游戏"
	NoDescription      = "暂无描述"
	UnknownPrice       = "未知价格"
	UnknownFreeEndTime = "未知时间"

	// UnknownAPIError is the message reported when a failed envelope has none.
	UnknownAPIError = "未知错误"
)

// Digest is the daily "read the world in 60 seconds" payload.
type Digest struct {
	Date       string   `json:"date"`
	DayOfWeek  string   `json:"day_of_week"`
	LunarDate  string   `json:"lunar_date"`
	News       []string `json:"news"`
	Tip        string   `json:"tip"`
	Cover      string   `json:"cover"`
	Image      string   `json:"image"`
	Link       string   `json:"link"`
	AudioMusic string   `json:"audio_music"`
	AudioNews  string   `json:"audio_news"`
}

// HistoryEvent is one "on this day" entry.
type HistoryEvent struct {
	Year  string `json:"year"`
	Title string `json:"title"`
}

// String renders the event as "{year} - {title}".
func (e HistoryEvent) String() string {
	return fmt.Sprintf("%s - %s", e.Year, e.Title)
}

// GamePromotion is one entry of the Epic free-games feed.
type GamePromotion struct {
	Title         string `json:"title"`
	Cover         string `json:"cover"`
	Description   string `json:"description"`
	OriginalPrice string `json:"original_price_desc"`
	FreeEnd       string `json:"free_end"`
	Link          string `json:"link"`
	IsFreeNow     bool   `json:"is_free_now"`
}

// FreeNow filters games down to the ones currently free, keeping order.
func FreeNow(games []GamePromotion) []GamePromotion {
	free := make([]GamePromotion, 0, len(games))
	for _, g := range games {
		if g.IsFreeNow {
			free = append(free, g)
		}
	}
	return free
}
