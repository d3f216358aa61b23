// Package i18n translates the messages of API responses. English and
// German are supported; the locale comes from Accept-Language.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const (
	// DefaultLocale is used when nothing else is configured.
	DefaultLocale = "en"
	// AcceptLanguageHeader is the request header naming preferred languages.
	AcceptLanguageHeader = "Accept-Language"
)

// supported is in the order of getDefaultMessages' locales; the matcher
// returns an index into it.
var (
	supported = []language.Tag{language.English, language.German}
	matcher   = language.NewMatcher(supported)
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once

	fallbackMu     sync.RWMutex
	fallbackLocale = DefaultLocale
)

// SetFallbackLocale sets the locale used when a request names no supported
// language. Unsupported values are ignored.
func SetFallbackLocale(locale string) {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if _, ok := getDefaultMessages()[locale]; !ok {
		return
	}
	fallbackMu.Lock()
	fallbackLocale = locale
	fallbackMu.Unlock()
}

// FallbackLocale returns the locale used when a request names none.
func FallbackLocale() string {
	fallbackMu.RLock()
	defer fallbackMu.RUnlock()
	return fallbackLocale
}

// Translator looks up messages by key and locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a translator with the built-in messages.
func NewTranslator() *Translator {
	return &Translator{messages: getDefaultMessages()}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale. An empty locale means
// the fallback locale. Keys missing in locale fall back to English, and
// unknown keys are returned unchanged.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = FallbackLocale()
	}
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// MatchLocale picks the supported locale best matching an Accept-Language
// value, honoring quality weights. It returns the fallback locale when
// header is empty, malformed or names only unsupported languages.
func MatchLocale(header string) string {
	if strings.TrimSpace(header) == "" {
		return FallbackLocale()
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return FallbackLocale()
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return FallbackLocale()
	}
	base, _ := supported[index].Base()
	return base.String()
}

// GetLocale returns the locale for the request in c.
func GetLocale(c *gin.Context) string {
	return MatchLocale(c.GetHeader(AcceptLanguageHeader))
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			// Error messages
			"error.invalid_request":      "Invalid request",
			"error.invalid_request_body": "Invalid request body",
			"error.internal_error":       "An unexpected error occurred",
			"error.unauthorized":         "Unauthorized",
			"error.invalid_credentials":  "Invalid household name or password",
			"error.forbidden":            "Forbidden",
			"error.not_found":            "Not found",
			"error.rate_limit_exceeded":  "Too many requests, please try again later",
			"error.conflict":             "Conflict",
			"error.invalid_token":        "Invalid or expired token",
			"error.token_required":       "Authentication token is required",
			"error.timeout":              "Request timed out",
			"error.household_exists":     "A household with this name already exists",
			"error.household_not_found":  "Household not found",
			"error.lot_not_found":        "Lot not found",
			"error.recipe_not_found":     "Recipe not found",
			"error.shopping_index":       "No shopping list entry at this position",
			"error.not_cookable":         "Not enough stock to cook this recipe",
			"error.insufficient_stock":   "Ingredients share the same stock and together need more than is available",
			"error.version_conflict":     "The pantry was changed by someone else, please retry",
			"error.store_unavailable":    "Storage is temporarily unavailable, please retry",
			"error.report_unavailable":   "The report could not be exported",

			"error.idempotency_key_reused":  "This Idempotency-Key was already used for a different request",
			"error.idempotency_in_progress": "A request with this Idempotency-Key is still being processed",

			// Success messages
			"success.lot_added":       "Lot added",
			"success.cooked":          "Recipe cooked, stock updated",
			"success.shopping_added":  "Added to shopping list",
			"success.shopping_exists": "Already on the shopping list",
			"success.report_exported": "Report exported",

			"report.shopping_title": "Shopping list",
		},
		"de": {
			// Error messages
			"error.invalid_request":      "Ungültige Anfrage",
			"error.invalid_request_body": "Ungültiger Anfrageinhalt",
			"error.internal_error":       "Ein unerwarteter Fehler ist aufgetreten",
			"error.unauthorized":         "Nicht angemeldet",
			"error.invalid_credentials":  "Haushaltsname oder Passwort falsch",
			"error.forbidden":            "Keine Berechtigung",
			"error.not_found":            "Nicht gefunden",
			"error.rate_limit_exceeded":  "Zu viele Anfragen, bitte später erneut versuchen",
			"error.conflict":             "Konflikt",
			"error.invalid_token":        "Ungültiges oder abgelaufenes Token",
			"error.token_required":       "Anmeldetoken erforderlich",
			"error.timeout":              "Zeitüberschreitung der Anfrage",
			"error.household_exists":     "Ein Haushalt mit diesem Namen existiert bereits",
			"error.household_not_found":  "Haushalt nicht gefunden",
			"error.lot_not_found":        "Artikel nicht gefunden",
			"error.recipe_not_found":     "Rezept nicht gefunden",
			"error.shopping_index":       "Kein Eintrag an dieser Position der Einkaufsliste",
			"error.not_cookable":         "Nicht genug Vorrat für dieses Rezept",
			"error.insufficient_stock":   "Zutaten teilen sich denselben Vorrat und brauchen zusammen mehr als vorhanden",
			"error.version_conflict":     "Der Vorrat wurde zwischenzeitlich geändert, bitte erneut versuchen",
			"error.store_unavailable":    "Speicher vorübergehend nicht erreichbar, bitte erneut versuchen",
			"error.report_unavailable":   "Der Bericht konnte nicht exportiert werden",

			"error.idempotency_key_reused":  "Dieser Idempotency-Key wurde bereits für eine andere Anfrage verwendet",
			"error.idempotency_in_progress": "Eine Anfrage mit diesem Idempotency-Key wird noch bearbeitet",

			// Success messages
			"success.lot_added":       "Artikel hinzugefügt",
			"success.cooked":          "Rezept gekocht, Vorrat aktualisiert",
			"success.shopping_added":  "Zur Einkaufsliste hinzugefügt",
			"success.shopping_exists": "Steht bereits auf der Einkaufsliste",
			"success.report_exported": "Bericht exportiert",

			"report.shopping_title": "Einkaufsliste",
		},
	}
}
