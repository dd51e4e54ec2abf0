// Package i18n resolves the API's user-facing strings from an embedded YAML
// catalog. Spanish is the default language; Accept-Language negotiation can
// switch a response to any other catalog language without touching handler
// code. Keys are dot-separated paths into the nested catalog.
package i18n
