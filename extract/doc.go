// Package extract converts uploaded document bytes into plain text.
//
// Supported formats: plain text (.txt, .md), PDF via UniPDF, and HTML via
// golang.org/x/net/html. PDF extraction requires a UniDoc license key
// registered with SetPDFLicenseKey.
package extract
