// Package domain defines core data models, error kinds and interfaces shared
// across the app. It contains plain types (wire/state), contracts (interfaces)
// and sentinel errors only.
package domain
