package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const successCode = 200

type envelope struct {
	Code    json.RawMessage `json:"code"`
	Message *text           `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeEnvelope validates the {code, message, data} wrapper and returns data.
// A nil result means data was absent or null.
func decodeEnvelope(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if !isSuccess(env.Code) {
		msg := UnknownAPIError
		if env.Message != nil {
			msg = string(*env.Message)
		}
		code := ""
		if !isNull(env.Code) {
			code = string(bytes.TrimSpace(env.Code))
		}
		return nil, &APIError{Code: code, Message: msg}
	}

	if isNull(env.Data) {
		return nil, nil
	}
	return env.Data, nil
}

// isSuccess reports whether code is the JSON number 200. The string "200"
// does not count.
func isSuccess(code json.RawMessage) bool {
	var n float64
	if isNull(code) || json.Unmarshal(code, &n) != nil {
		return false
	}
	return n == successCode
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// text accepts any JSON value and keeps a textual form: strings as they
// are, numbers as written, null as "" and anything else as compact JSON.
// Upstream sends history years both as "1949" and 1949.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
	default:
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err != nil {
			return err
		}
		*t = text(buf.String())
	}
	return nil
}

func texts(in []text) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		out = append(out, string(t))
	}
	return out
}

type rawDigest struct {
	Date      text   `json:"date"`
	DayOfWeek text   `json:"day_of_week"`
	LunarDate text   `json:"lunar_date"`
	News      []text `json:"news"`
	Tip       text   `json:"tip"`
	Cover     text   `json:"cover"`
	Image     text   `json:"image"`
	Link      text   `json:"link"`
	Audio     *struct {
		Music text `json:"music"`
		News  text `json:"news"`
	} `json:"audio"`
}

// ParseDigest extracts the daily digest from a raw /60s response body.
func ParseDigest(body []byte) (*Digest, error) {
	data, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	var raw rawDigest
	if data != nil {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: digest data: %v", ErrMalformed, err)
		}
	}

	d := &Digest{
		Date:      string(raw.Date),
		DayOfWeek: string(raw.DayOfWeek),
		LunarDate: string(raw.LunarDate),
		News:      texts(raw.News),
		Tip:       string(raw.Tip),
		Cover:     string(raw.Cover),
		Image:     string(raw.Image),
		Link:      string(raw.Link),
	}
	if raw.Audio != nil {
		d.AudioMusic = string(raw.Audio.Music)
		d.AudioNews = string(raw.Audio.News)
	}

	return d, nil
}

type rawHistory struct {
	Items []struct {
		Year  text `json:"year"`
		Title text `json:"title"`
	} `json:"items"`
}

// ParseHistory extracts "on this day" events from a raw /today_in_history body.
func ParseHistory(body []byte) ([]HistoryEvent, error) {
	data, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	var raw rawHistory
	if data != nil {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: history data: %v", ErrMalformed, err)
		}
	}

	events := make([]HistoryEvent, 0, len(raw.Items))
	for _, item := range raw.Items {
		events = append(events, HistoryEvent{
			Year:  string(item.Year),
			Title: string(item.Title),
		})
	}

	return events, nil
}

type rawGame struct {
	Title         *text           `json:"title"`
	Cover         *text           `json:"cover"`
	Description   *text           `json:"description"`
	OriginalPrice *text           `json:"original_price_desc"`
	FreeEnd       *text           `json:"free_end"`
	Link          *text           `json:"link"`
	IsFreeNow     json.RawMessage `json:"is_free_now"`
}

// ParseGames extracts free-game promotions from a raw /epic body.
func ParseGames(body []byte) ([]GamePromotion, error) {
	data, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	var raw []rawGame
	if data != nil {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: epic data: %v", ErrMalformed, err)
		}
	}

	games := make([]GamePromotion, 0, len(raw))
	for _, g := range raw {
		games = append(games, GamePromotion{
			Title:         orDefault(g.Title, UnknownGameTitle),
			Cover:         orDefault(g.Cover, ""),
			Description:   PlainText(orDefault(g.Description, NoDescription)),
			OriginalPrice: orDefault(g.OriginalPrice, UnknownPrice),
			FreeEnd:       orDefault(g.FreeEnd, UnknownFreeEndTime),
			Link:          orDefault(g.Link, ""),
			// only the literal true counts; "true" or 1 do not
			IsFreeNow: bytes.Equal(bytes.TrimSpace(g.IsFreeNow), []byte("true")),
		})
	}

	return games, nil
}

func orDefault(t *text, def string) string {
	if t == nil {
		return def
	}
	return string(*t)
}
