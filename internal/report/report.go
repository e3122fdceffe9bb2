// Package report renders mine forecasts as aligned, localized text tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/valleycast/internal/calendar"
	"github.com/louisbranch/valleycast/internal/forecast"
)

var supportedTags = []language.Tag{
	language.English,
	language.MustParse("pt-BR"),
}

var tagMatcher = language.NewMatcher(supportedTags)

// Options control rendering.
type Options struct {
	Locale  language.Tag
	NoColor bool
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// ResolveLocale matches a BCP 47 string to the closest supported tag,
// falling back to English.
func ResolveLocale(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.English
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.English
	}
	_, index, confidence := tagMatcher.Match(tag)
	if confidence == language.No {
		return language.English
	}
	return supportedTags[index]
}

// Render writes a month as a table with one row per day.
func Render(w io.Writer, month forecast.Month, opts Options) error {
	p := message.NewPrinter(opts.Locale)
	palette := newPalette(opts.NoColor)

	if _, err := fmt.Fprintln(w, palette.title.Sprint(p.Sprintf("report.title", month.GameID.String()))); err != nil {
		return fmt.Errorf("write title: %w", err)
	}
	if len(month.Days) > 0 {
		first, last := month.Days[0].Date, month.Days[len(month.Days)-1].Date
		if _, err := fmt.Fprintln(w, p.Sprintf("report.range", formatDate(p, first), formatDate(p, last))); err != nil {
			return fmt.Errorf("write range: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("write title: %w", err)
	}

	// Every cell in a colored column carries the same escape overhead, so
	// tabwriter alignment survives coloring.
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		p.Sprintf("col.day"),
		p.Sprintf("col.weekday"),
		palette.monster.Sprint(p.Sprintf("col.monster")),
		palette.slime.Sprint(p.Sprintf("col.slime")),
		palette.rainbow.Sprint(p.Sprintf("col.rainbow")),
	)

	var monsters, slimes, rainbows int
	for _, day := range month.Days {
		monsters += len(day.MonsterLevels)
		slimes += len(day.SlimeLevels)
		rainbows += len(day.RainbowLevels)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			formatDate(p, day.Date),
			p.Sprintf(fmt.Sprintf("weekday.%d", int(day.Date.Weekday()))),
			palette.monster.Sprint(formatLevels(day.MonsterLevels)),
			palette.slime.Sprint(formatLevels(day.SlimeLevels)),
			palette.rainbow.Sprint(formatLevels(day.RainbowLevels)),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}
	if _, err := fmt.Fprintln(w, p.Sprintf("report.totals", monsters, slimes, rainbows)); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}
	return nil
}

func formatDate(p *message.Printer, d calendar.Date) string {
	season := p.Sprintf(fmt.Sprintf("season.%d", int(d.Season)))
	return p.Sprintf("report.date", season, d.Day, d.Year)
}

func formatLevels(levels []int) string {
	if len(levels) == 0 {
		return "-"
	}
	parts := make([]string, len(levels))
	for i, level := range levels {
		parts[i] = strconv.Itoa(level)
	}
	return strings.Join(parts, ", ")
}

type palette struct {
	title   *color.Color
	monster *color.Color
	slime   *color.Color
	rainbow *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		title:   color.New(color.Bold),
		monster: color.New(color.FgRed),
		slime:   color.New(color.FgGreen),
		rainbow: color.New(color.FgMagenta, color.Bold),
	}
	for _, c := range []*color.Color{p.title, p.monster, p.slime, p.rainbow} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}
