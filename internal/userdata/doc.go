// Package userdata manages the ~/.docshelf directory layout: path resolution
// with DOCSHELF_* overrides, first-run initialization, and the layout health
// checks behind the doctor command.
package userdata
