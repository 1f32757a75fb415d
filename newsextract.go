// Package newsextract extracts structured article data from news web
// pages and RSS/Atom feeds. It recovers an article's title, body text and
// metadata from HTML of unknown layout by running a cascade of content
// extraction strategies behind a content-quality gate.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, trafilatura/, sqlite/).
package newsextract
