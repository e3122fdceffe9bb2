package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeRequestInvalid          = "REQUEST_INVALID"
	CodeGameIDInvalid           = "GAME_ID_INVALID"
	CodeGameIDMissing           = "GAME_ID_MISSING"
	CodeSaveInvalid             = "SAVE_INVALID"
	CodeYearInvalid             = "YEAR_INVALID"
	CodeForecastInvalidFirstDay = "FORECAST_INVALID_FIRST_DAY"
	CodeForecastInvalidDayCount = "FORECAST_INVALID_DAY_COUNT"
	CodeRandomInvalidRange      = "RANDOM_INVALID_RANGE"
	CodeNotFound                = "NOT_FOUND"
	CodePageTokenInvalid        = "PAGE_TOKEN_INVALID"
	CodeCacheCorrupt            = "CACHE_CORRUPT"
)

var enUS = map[Code]string{
	CodeRequestInvalid:          "The request could not be read.",
	CodeGameIDInvalid:           "Game id {{.GameID}} must be a whole number.",
	CodeGameIDMissing:           "A game id is required.",
	CodeSaveInvalid:             "The save file could not be read.",
	CodeYearInvalid:             "The year must be 1 or later.",
	CodeForecastInvalidFirstDay: "The first day must be 1 or later.",
	CodeForecastInvalidDayCount: "A forecast covers between 1 and {{.MaxDays}} days.",
	CodeRandomInvalidRange:      "The draw count must be between 1 and {{.MaxDraws}}.",
	CodeNotFound:                "No cached forecast was found.",
	CodePageTokenInvalid:        "The page token is not valid.",
	CodeCacheCorrupt:            "A cached forecast failed its integrity check.",
}

var ptBR = map[Code]string{
	CodeRequestInvalid:          "Não foi possível ler a requisição.",
	CodeGameIDInvalid:           "O id de jogo {{.GameID}} deve ser um número inteiro.",
	CodeGameIDMissing:           "Um id de jogo é obrigatório.",
	CodeSaveInvalid:             "Não foi possível ler o arquivo salvo.",
	CodeYearInvalid:             "O ano deve ser 1 ou posterior.",
	CodeForecastInvalidFirstDay: "O primeiro dia deve ser 1 ou posterior.",
	CodeForecastInvalidDayCount: "Uma previsão cobre entre 1 e {{.MaxDays}} dias.",
	CodeRandomInvalidRange:      "O número de sorteios deve estar entre 1 e {{.MaxDraws}}.",
	CodeNotFound:                "Nenhuma previsão em cache foi encontrada.",
	CodePageTokenInvalid:        "O token de página não é válido.",
	CodeCacheCorrupt:            "Uma previsão em cache falhou na verificação de integridade.",
}
