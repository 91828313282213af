package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lines builds content of exactly n code points from short multibyte lines.
func lines(n int) string {
	var b strings.Builder
	written := 0
	for written < n {
		if written > 0 && written%50 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString("字")
		}
		written++
	}
	return b.String()
}

func TestLength(t *testing.T) {
	assert.Equal(t, 0, Length(""))
	assert.Equal(t, 3, Length("abc"))
	assert.Equal(t, 4, Length("历史上的"))
	assert.Equal(t, 2, Length("🗞️"), "emoji plus variation selector")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "历史", Clip("历史上的今天", 2))
	assert.Equal(t, "ab", Clip("ab", 5))
	assert.Equal(t, "", Clip("abc", 0))
}

func TestFit_SoftThreshold(t *testing.T) {
	atLimit := lines(SoftLimit)
	require.Equal(t, SoftLimit, Length(atLimit))

	got, optimized := Fit(atLimit)
	assert.False(t, optimized)
	assert.Equal(t, atLimit, got)

	over := lines(SoftLimit + 1)
	_, optimized = Fit(over)
	assert.True(t, optimized)
}

func TestFit_DropsCoversOnlyWhenOverSoftLimit(t *testing.T) {
	small := "### Game\n![游戏封面](https://example.com/c.jpg)\n**描述**: short\n"

	got, optimized := Fit(small)
	assert.False(t, optimized)
	assert.Contains(t, got, "![游戏封面]")

	big := small + lines(SoftLimit)
	got, optimized = Fit(big)
	assert.True(t, optimized)
	assert.NotContains(t, got, "![游戏封面]")
}

func TestOptimize_HardThreshold(t *testing.T) {
	atLimit := lines(HardLimit)
	require.Equal(t, HardLimit, Length(atLimit))
	assert.Equal(t, atLimit, Optimize(atLimit), "content at the hard limit is kept whole")

	over := lines(HardLimit + 1)
	got := Optimize(over)

	assert.True(t, strings.HasSuffix(got, "\n...\n*消息过长已截断*"))
	assert.Equal(t, HardCut+Length(truncatedNotice), Length(got))
	assert.Equal(t, Clip(over, HardCut), strings.TrimSuffix(got, truncatedNotice))
}

func TestOptimize_LineLimit(t *testing.T) {
	exact := strings.Repeat("新", LineLimit)
	assert.Equal(t, exact, Optimize(exact))

	long := strings.Repeat("新", LineLimit+1)
	assert.Equal(t, exact+"...", Optimize(long))
}

func TestOptimize_DescriptionLimit(t *testing.T) {
	exact := "**描述**: " + strings.Repeat("述", DescriptionLimit)
	assert.Equal(t, exact, Optimize(exact))

	long := "**描述**:   " + strings.Repeat("述", DescriptionLimit+20) + "  "
	assert.Equal(t, "**描述**: "+strings.Repeat("述", DescriptionLimit)+"...", Optimize(long))
}

func TestOptimize_CoverLines(t *testing.T) {
	in := strings.Join([]string{
		"### Game",
		"![游戏封面](https://example.com/c.jpg)",
		"![other](https://example.com/o.jpg)",
		"text ![游戏封面](x) inline",
	}, "\n")

	want := strings.Join([]string{
		"### Game",
		"![other](https://example.com/o.jpg)",
		"text ![游戏封面](x) inline",
	}, "\n")

	assert.Equal(t, want, Optimize(in))
}

func TestOptimize_PreservesTrailingNewline(t *testing.T) {
	assert.Equal(t, "a\nb\n", Optimize("a\nb\n"))
}
