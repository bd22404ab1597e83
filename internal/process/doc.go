// Package process manages external process groups for the typesetting
// engine and the headless browser.
package process
