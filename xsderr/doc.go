// Package xsderr defines the errors and warnings raised while
// converting an XML Schema into leaf tables.
//
// Errors of SeverityError abort the conversion. Errors of
// SeverityWarning are collected and returned next to the output.
package xsderr
