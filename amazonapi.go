// Package amazonapi turns raw marketplace listing, review, and product
// detail documents into structured, typed records. It combines a
// fallback-driven extraction engine (markup drifts; every field has an
// ordered list of strategies), a bounded-concurrency collection
// orchestrator for paginated scrapes, and a result normalization layer.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., extract/, collect/,
// sqlite/, http/).
package amazonapi
