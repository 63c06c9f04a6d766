// Package submit delivers contact form submissions to a configured endpoint:
// a local store, a URL-encoded mail relay, or a spreadsheet form backend with
// a field-name mapping. Endpoints are always configured, never hardcoded.
package submit
