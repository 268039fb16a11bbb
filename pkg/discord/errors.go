package discord

import "valuelife/internal/domain"

// DomainErrorKey maps a domain error to the i18n message key used for
// the user-facing reply. Unknown errors fall back to the generic key.
func DomainErrorKey(err error) string {
	code := domain.Code(err)
	if code == "" {
		return "error.generic"
	}
	return "error." + code
}
