package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")

	message.SetString(lang, "report.title", "Previsão das minas para o jogo %s")
	message.SetString(lang, "report.range", "%s até %s")
	message.SetString(lang, "report.date", "%[2]d de %[1]s, Ano %[3]d")
	message.SetString(lang, "report.totals", "Andares infestados: %d de monstros, %d de gosmas. Andares arco-íris: %d.")

	message.SetString(lang, "col.day", "Dia")
	message.SetString(lang, "col.weekday", "Semana")
	message.SetString(lang, "col.monster", "Monstros")
	message.SetString(lang, "col.slime", "Gosmas")
	message.SetString(lang, "col.rainbow", "Luzes arco-íris")

	message.SetString(lang, "season.0", "Primavera")
	message.SetString(lang, "season.1", "Verão")
	message.SetString(lang, "season.2", "Outono")
	message.SetString(lang, "season.3", "Inverno")

	message.SetString(lang, "weekday.0", "Seg")
	message.SetString(lang, "weekday.1", "Ter")
	message.SetString(lang, "weekday.2", "Qua")
	message.SetString(lang, "weekday.3", "Qui")
	message.SetString(lang, "weekday.4", "Sex")
	message.SetString(lang, "weekday.5", "Sáb")
	message.SetString(lang, "weekday.6", "Dom")
}
