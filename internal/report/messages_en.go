package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	// Title
	message.SetString(lang, "report.title", "Mine forecast for game %s")
	message.SetString(lang, "report.range", "%s through %s")
	message.SetString(lang, "report.date", "%[1]s %[2]d, Year %[3]d")
	message.SetString(lang, "report.totals", "Infested floors: %d monster, %d slime. Rainbow floors: %d.")

	// Columns
	message.SetString(lang, "col.day", "Day")
	message.SetString(lang, "col.weekday", "Weekday")
	message.SetString(lang, "col.monster", "Monsters")
	message.SetString(lang, "col.slime", "Slimes")
	message.SetString(lang, "col.rainbow", "Rainbow lights")

	// Seasons
	message.SetString(lang, "season.0", "Spring")
	message.SetString(lang, "season.1", "Summer")
	message.SetString(lang, "season.2", "Fall")
	message.SetString(lang, "season.3", "Winter")

	// Weekdays
	message.SetString(lang, "weekday.0", "Mon")
	message.SetString(lang, "weekday.1", "Tue")
	message.SetString(lang, "weekday.2", "Wed")
	message.SetString(lang, "weekday.3", "Thu")
	message.SetString(lang, "weekday.4", "Fri")
	message.SetString(lang, "weekday.5", "Sat")
	message.SetString(lang, "weekday.6", "Sun")
}
