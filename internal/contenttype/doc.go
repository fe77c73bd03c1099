// Package contenttype classifies files into content type identifiers
// (public.png, com.adobe.pdf, ...) and maps identifiers to display icons.
// The table ships embedded as types.yaml and can be overlaid by a user file,
// which is validated against an embedded JSON schema and a semver range
// before use.
package contenttype
